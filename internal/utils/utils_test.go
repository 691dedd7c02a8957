package utils_test

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/temirov/dirsnap/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "negative clamps", bytes: -5, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "kilobytes fractional", bytes: 1536, expected: "1.5kb"},
		{name: "kilobytes trims trailing zero", bytes: 2048, expected: "2kb"},
		{name: "kilobytes rounded", bytes: 20 * 1024, expected: "20kb"},
		{name: "megabytes", bytes: 5 * 1024 * 1024, expected: "5mb"},
		{name: "gigabytes", bytes: 3 * 1024 * 1024 * 1024, expected: "3gb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			formatted := utils.FormatFileSize(testCase.bytes)
			if formatted != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, formatted)
			}
		})
	}
}

func TestContainsNullByte(t *testing.T) {
	if utils.ContainsNullByte([]byte("plain text content")) {
		t.Error("plain text must not report a NUL byte")
	}
	if !utils.ContainsNullByte([]byte{0x41, 0x00, 0x42}) {
		t.Error("embedded NUL byte must be detected")
	}

	// A NUL byte beyond the sniff window is outside the heuristic's scope.
	lateNull := append(bytes.Repeat([]byte{'a'}, utils.SniffLength), 0x00)
	if utils.ContainsNullByte(lateNull) {
		t.Error("NUL byte past the sniff window must not be detected")
	}
}

func TestWarningPrinter(t *testing.T) {
	var destination bytes.Buffer
	printer := utils.NewWarningPrinter(&destination)
	printer.Warnf("skipping %s: %v", "a.txt", "permission denied")

	expectedLine := "Warning: skipping a.txt: permission denied\n"
	if destination.String() != expectedLine {
		t.Errorf("expected %q, got %q", expectedLine, destination.String())
	}
}

func TestDeduplicatePatterns(t *testing.T) {
	deduplicated := utils.DeduplicatePatterns([]string{"*.md", ".venv", "*.md", "bin", ".venv"})
	expected := []string{"*.md", ".venv", "bin"}
	if !reflect.DeepEqual(deduplicated, expected) {
		t.Errorf("expected %v, got %v", expected, deduplicated)
	}
}

func TestFormatTimestamp(t *testing.T) {
	if utils.FormatTimestamp(time.Time{}) != "" {
		t.Error("zero time must format as empty string")
	}
	value := time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)
	if formatted := utils.FormatTimestamp(value); formatted != "2025-06-01 09:30" {
		t.Errorf("unexpected timestamp %q", formatted)
	}
}
