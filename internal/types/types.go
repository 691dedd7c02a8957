// Package types defines cross-package constants and data structures used by the dirsnap CLI.
package types

// Binary rendering modes accepted by the --binary flag.
const (
	BinaryModeSkip   = "skip"
	BinaryModeHex    = "hex"
	BinaryModeBase64 = "base64"
)

// TreeMode selects whether a directory-tree section is emitted before the
// content section, instead of it, or not at all.
type TreeMode int

const (
	// TreeModeOff emits no tree section.
	TreeModeOff TreeMode = iota
	// TreeModeBefore emits the tree section followed by file contents.
	TreeModeBefore
	// TreeModeOnly emits the tree section and stops.
	TreeModeOnly
)

// IsValidBinaryMode reports whether mode is one of the supported binary rendering modes.
func IsValidBinaryMode(mode string) bool {
	switch mode {
	case BinaryModeSkip, BinaryModeHex, BinaryModeBase64:
		return true
	default:
		return false
	}
}
