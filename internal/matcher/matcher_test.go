package matcher_test

import (
	"testing"

	"github.com/temirov/dirsnap/internal/matcher"
)

// TestPatternMatch verifies the three-rule match policy: exact glob, directory
// prefix, and bare-name-anywhere.
func TestPatternMatch(t *testing.T) {
	testCases := []struct {
		testName string
		pattern  string
		path     string
		expected bool
	}{
		{testName: "exact name", pattern: "a.txt", path: "a.txt", expected: true},
		{testName: "exact glob", pattern: "*.md", path: "README.md", expected: true},
		{testName: "glob miss", pattern: "*.md", path: "main.go", expected: false},
		{testName: "question mark", pattern: "a?c.txt", path: "abc.txt", expected: true},
		{testName: "character class", pattern: "[ab].txt", path: "a.txt", expected: true},
		{testName: "character class miss", pattern: "[ab].txt", path: "c.txt", expected: false},
		{testName: "directory prefix", pattern: ".venv", path: ".venv/lib/python/site.py", expected: true},
		{testName: "bare name at depth", pattern: ".venv", path: "services/api/.venv", expected: true},
		{testName: "bare name anywhere subtree", pattern: ".venv", path: "services/.venv/lib/a.py", expected: true},
		{testName: "bare name matches plain file", pattern: "bin", path: "bin", expected: true},
		{testName: "bare name matches top-level dir contents", pattern: "bin", path: "bin/tool", expected: true},
		{testName: "bare name matches nested dir", pattern: "bin", path: "src/bin/tool", expected: true},
		{testName: "bare name no partial component", pattern: "bin", path: "cabinet/file", expected: false},
		{testName: "slashed pattern not applied anywhere", pattern: "src/bin", path: "other/src/bin", expected: false},
		{testName: "slashed pattern prefix", pattern: "src/bin", path: "src/bin/tool", expected: true},
		{testName: "star crosses separators", pattern: "src/*.js", path: "src/a/b.js", expected: true},
		{testName: "trailing slash treated as directory name", pattern: "dist/", path: "dist/bundle.js", expected: true},
		{testName: "glob bare name anywhere", pattern: "*.pyc", path: "pkg/__pycache__/mod.pyc", expected: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.testName, func(t *testing.T) {
			compiledPattern := matcher.Compile(testCase.pattern)
			if actual := compiledPattern.Match(testCase.path); actual != testCase.expected {
				t.Errorf("pattern %q against %q: expected %v, got %v", testCase.pattern, testCase.path, testCase.expected, actual)
			}
		})
	}
}

// TestInvalidPatternDegradesToLiteral verifies that a pattern failing glob
// compilation still matches literally instead of aborting.
func TestInvalidPatternDegradesToLiteral(t *testing.T) {
	compiledPattern := matcher.Compile("[")
	if !compiledPattern.Match("[") {
		t.Error("expected literal match for unparseable pattern")
	}
	if compiledPattern.Match("a") {
		t.Error("expected no match for unrelated path")
	}
}

// TestMatchesShortCircuits verifies any-match semantics over a pattern set.
func TestMatchesShortCircuits(t *testing.T) {
	patterns := matcher.CompileAll([]string{"*.md", "*.js"})
	testCases := []struct {
		path     string
		expected bool
	}{
		{path: "a.md", expected: true},
		{path: "b.js", expected: true},
		{path: "c.go", expected: false},
	}
	for _, testCase := range testCases {
		if actual := matcher.Matches(testCase.path, patterns); actual != testCase.expected {
			t.Errorf("Matches(%q): expected %v, got %v", testCase.path, testCase.expected, actual)
		}
	}
	if matcher.Matches("anything", nil) {
		t.Error("empty pattern set must match nothing")
	}
}
