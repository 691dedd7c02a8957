package discover

import (
	"sort"
)

// Order returns the file list in emission order. When sorted is true the list
// is ordered lexicographically by raw byte value of the path string, which is
// locale-independent and guarantees identical output across environments.
// When false the discovery order is preserved as-is; that order comes from
// git listing or the filesystem walk and is not guaranteed stable across
// operating systems or filesystem implementations.
func Order(files []string, sorted bool) []string {
	ordered := make([]string, len(files))
	copy(ordered, files)
	if sorted {
		sort.Strings(ordered)
	}
	return ordered
}
