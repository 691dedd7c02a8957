package render_test

import (
	"testing"

	"github.com/temirov/dirsnap/internal/render"
)

// TestMimeClassifier verifies MIME sniffing verdicts, including that NUL
// bytes force a binary verdict regardless of extension.
func TestMimeClassifier(t *testing.T) {
	testCases := []struct {
		testName string
		path     string
		sample   []byte
		expected render.Classification
	}{
		{testName: "plain ascii is text", path: "notes.txt", sample: []byte("hello world"), expected: render.ClassificationText},
		{testName: "html is text", path: "index.html", sample: []byte("<!DOCTYPE html><html></html>"), expected: render.ClassificationText},
		{testName: "nul bytes are binary despite txt extension", path: "fake.txt", sample: []byte("abc\x00def"), expected: render.ClassificationBinary},
		{testName: "png magic is binary", path: "logo.png", sample: []byte("\x89PNG\r\n\x1a\n rest"), expected: render.ClassificationBinary},
		{testName: "pdf magic is binary", path: "doc.pdf", sample: []byte("%PDF-1.4 rest"), expected: render.ClassificationBinary},
	}

	classifier := render.MimeClassifier{}
	for _, testCase := range testCases {
		t.Run(testCase.testName, func(t *testing.T) {
			verdict, decided := classifier.Classify(testCase.path, testCase.sample)
			if !decided {
				t.Fatal("MimeClassifier must always decide")
			}
			if verdict != testCase.expected {
				t.Errorf("expected %v, got %v", testCase.expected, verdict)
			}
		})
	}
}

// TestExtensionClassifier verifies the allow-list decides for known
// extensions and declines otherwise.
func TestExtensionClassifier(t *testing.T) {
	classifier := render.ExtensionClassifier{}

	verdict, decided := classifier.Classify("src/main.go", nil)
	if !decided || verdict != render.ClassificationText {
		t.Errorf("expected text verdict for .go, got decided=%v verdict=%v", decided, verdict)
	}

	if _, decided := classifier.Classify("blob.bin", nil); decided {
		t.Error("expected the extension classifier to decline for .bin")
	}
}

// TestHeuristicClassifier verifies the NUL-byte rule.
func TestHeuristicClassifier(t *testing.T) {
	classifier := render.HeuristicClassifier{}

	verdict, decided := classifier.Classify("anything", []byte("text only"))
	if !decided || verdict != render.ClassificationText {
		t.Errorf("expected text verdict, got decided=%v verdict=%v", decided, verdict)
	}

	verdict, decided = classifier.Classify("anything", []byte{0x01, 0x00, 0x02})
	if !decided || verdict != render.ClassificationBinary {
		t.Errorf("expected binary verdict, got decided=%v verdict=%v", decided, verdict)
	}
}

// TestClassifyChainOrder verifies the first verdict in the chain wins and an
// undecided chain defaults to binary.
func TestClassifyChainOrder(t *testing.T) {
	chain := []render.Classifier{
		render.ExtensionClassifier{},
		render.HeuristicClassifier{},
	}

	if verdict := render.Classify("main.go", []byte{0x00}, chain); verdict != render.ClassificationText {
		t.Errorf("extension verdict should win over heuristic, got %v", verdict)
	}
	if verdict := render.Classify("blob.bin", []byte("texty"), chain); verdict != render.ClassificationText {
		t.Errorf("heuristic should decide when extension declines, got %v", verdict)
	}
	if verdict := render.Classify("anything", []byte("texty"), nil); verdict != render.ClassificationBinary {
		t.Errorf("empty chain must default to binary, got %v", verdict)
	}
}
