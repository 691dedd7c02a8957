package utils

import (
	"bytes"
)

// SniffLength is the number of leading bytes inspected when classifying content.
// A NUL byte inside this window implies binary data; its absence implies text.
// This is a heuristic, not a guarantee.
const SniffLength = 512

// ContainsNullByte reports whether the leading SniffLength bytes of data contain a NUL byte.
func ContainsNullByte(data []byte) bool {
	sample := data
	if len(sample) > SniffLength {
		sample = sample[:SniffLength]
	}
	return bytes.IndexByte(sample, 0) >= 0
}
