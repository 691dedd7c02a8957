// Package matcher evaluates root-relative paths against shell-style glob patterns.
//
// A path matches a pattern when any of three rules holds:
//
//  1. the whole path glob-matches the pattern;
//  2. the pattern acts as a directory prefix, i.e. the path glob-matches
//     "pattern/" followed by anything;
//  3. the pattern contains no path separator and the path glob-matches
//     "*/pattern" or "*/pattern/*", letting a bare name like "node_modules"
//     match at any depth.
//
// Globs are compiled without a separator rune, so "*" matches any run of
// characters including "/". This is a known limitation inherited from
// whole-string matching: "src/*.js" also matches "src/a/b.js". The rules are
// intentionally broad; a bare pattern like "bin" matches a top-level bin
// directory, a nested src/bin directory, and a file literally named "bin".
// There is no negation operator.
package matcher

import (
	"strings"

	"github.com/gobwas/glob"
)

const pathSeparator = "/"

// Pattern is a user or built-in glob pattern compiled for the three-rule match policy.
type Pattern struct {
	raw           string
	wholeGlob     glob.Glob
	prefixGlob    glob.Glob
	anywhereGlob  glob.Glob
	anywhereTree  glob.Glob
	literalOnly   bool
	bareComponent bool
}

// Raw returns the original pattern text.
func (pattern Pattern) Raw() string {
	return pattern.raw
}

// Compile prepares a pattern for matching. A pattern that fails to compile as
// a glob (for example an unterminated character class) degrades to literal
// string comparison instead of failing the run.
func Compile(rawPattern string) Pattern {
	trimmedPattern := strings.TrimSuffix(rawPattern, pathSeparator)
	compiled := Pattern{
		raw:           trimmedPattern,
		bareComponent: !strings.Contains(trimmedPattern, pathSeparator),
	}

	wholeGlob, wholeError := glob.Compile(trimmedPattern)
	prefixGlob, prefixError := glob.Compile(trimmedPattern + pathSeparator + "*")
	if wholeError != nil || prefixError != nil {
		compiled.literalOnly = true
		return compiled
	}
	compiled.wholeGlob = wholeGlob
	compiled.prefixGlob = prefixGlob

	if compiled.bareComponent {
		anywhereGlob, anywhereError := glob.Compile("*" + pathSeparator + trimmedPattern)
		anywhereTree, treeError := glob.Compile("*" + pathSeparator + trimmedPattern + pathSeparator + "*")
		if anywhereError != nil || treeError != nil {
			compiled.literalOnly = true
			return compiled
		}
		compiled.anywhereGlob = anywhereGlob
		compiled.anywhereTree = anywhereTree
	}
	return compiled
}

// CompileAll compiles every pattern in rawPatterns, preserving order.
func CompileAll(rawPatterns []string) []Pattern {
	if len(rawPatterns) == 0 {
		return nil
	}
	compiledPatterns := make([]Pattern, 0, len(rawPatterns))
	for _, rawPattern := range rawPatterns {
		compiledPatterns = append(compiledPatterns, Compile(rawPattern))
	}
	return compiledPatterns
}

// Match reports whether the relative path satisfies any of the three match rules.
func (pattern Pattern) Match(relativePath string) bool {
	if pattern.literalOnly {
		return pattern.matchLiteral(relativePath)
	}
	if pattern.wholeGlob.Match(relativePath) {
		return true
	}
	if pattern.prefixGlob.Match(relativePath) {
		return true
	}
	if pattern.bareComponent {
		if pattern.anywhereGlob.Match(relativePath) {
			return true
		}
		if pattern.anywhereTree.Match(relativePath) {
			return true
		}
	}
	return false
}

// matchLiteral applies the three rules with plain string comparison.
func (pattern Pattern) matchLiteral(relativePath string) bool {
	if relativePath == pattern.raw {
		return true
	}
	if strings.HasPrefix(relativePath, pattern.raw+pathSeparator) {
		return true
	}
	if pattern.bareComponent {
		if strings.HasSuffix(relativePath, pathSeparator+pattern.raw) {
			return true
		}
		if strings.Contains(relativePath, pathSeparator+pattern.raw+pathSeparator) {
			return true
		}
	}
	return false
}

// Matches reports whether relativePath matches any pattern in patterns.
// Evaluation short-circuits on the first match; the result is independent of
// pattern order within the set.
func Matches(relativePath string, patterns []Pattern) bool {
	for _, pattern := range patterns {
		if pattern.Match(relativePath) {
			return true
		}
	}
	return false
}
