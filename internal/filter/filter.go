// Package filter applies the bloat, exclude, and include pattern sets to a
// discovered file list.
package filter

import (
	"github.com/temirov/dirsnap/internal/matcher"
)

// Apply filters files in a fixed precedence order: a file matching any bloat
// pattern is dropped; otherwise a file matching any user exclude pattern is
// dropped; otherwise, when the include set is non-empty, a file must match at
// least one include pattern to survive. Excludes always win over includes —
// an explicit include cannot resurrect a bloat- or exclude-matched file.
//
// Apply is a pure function of its inputs: the surviving set depends only on
// the file list and the three pattern sets, and filtering an already-filtered
// list with the same patterns yields the same list.
func Apply(files []string, bloatPatterns, excludePatterns, includePatterns []matcher.Pattern) []string {
	surviving := make([]string, 0, len(files))
	for _, filePath := range files {
		if matcher.Matches(filePath, bloatPatterns) {
			continue
		}
		if matcher.Matches(filePath, excludePatterns) {
			continue
		}
		if len(includePatterns) > 0 && !matcher.Matches(filePath, includePatterns) {
			continue
		}
		surviving = append(surviving, filePath)
	}
	return surviving
}
