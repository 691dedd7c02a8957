package tokenizer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/temirov/dirsnap/internal/tokenizer"
)

// fieldCounter counts whitespace-separated fields, standing in for a real
// encoder so tests stay offline.
type fieldCounter struct {
	countError error
}

func (fieldCounter) Name() string { return "fields" }

func (counter fieldCounter) CountString(input string) (int, error) {
	if counter.countError != nil {
		return 0, counter.countError
	}
	return len(strings.Fields(input)), nil
}

func TestCountBytes(t *testing.T) {
	testCases := []struct {
		name            string
		data            []byte
		expectedTokens  int
		expectedCounted bool
	}{
		{name: "plain text", data: []byte("one two three"), expectedTokens: 3, expectedCounted: true},
		{name: "empty data", data: nil, expectedTokens: 0, expectedCounted: true},
		{name: "multibyte text", data: []byte("héllo wörld"), expectedTokens: 2, expectedCounted: true},
		{name: "invalid utf8 not counted", data: []byte{0xFF, 0xFE, 0x20, 0x41}, expectedCounted: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			countResult, countError := tokenizer.CountBytes(fieldCounter{}, testCase.data)
			if countError != nil {
				t.Fatalf("unexpected count error: %v", countError)
			}
			if countResult.Counted != testCase.expectedCounted {
				t.Fatalf("expected counted=%v, got %v", testCase.expectedCounted, countResult.Counted)
			}
			if countResult.Tokens != testCase.expectedTokens {
				t.Errorf("expected %d tokens, got %d", testCase.expectedTokens, countResult.Tokens)
			}
		})
	}
}

func TestCountBytesNilCounter(t *testing.T) {
	if _, countError := tokenizer.CountBytes(nil, []byte("text")); countError == nil {
		t.Fatal("expected error for nil counter")
	}
}

func TestCountBytesPropagatesCounterError(t *testing.T) {
	expectedError := errors.New("encoder exploded")
	_, countError := tokenizer.CountBytes(fieldCounter{countError: expectedError}, []byte("text"))
	if !errors.Is(countError, expectedError) {
		t.Fatalf("expected wrapped counter error, got %v", countError)
	}
}
