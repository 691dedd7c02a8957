// Package config resolves command line flags and configuration files into the
// immutable RunConfig consumed by every pipeline stage.
package config

import (
	"fmt"

	"github.com/temirov/dirsnap/internal/types"
)

// invalidBinaryModeMessageFormat reports an unsupported --binary value.
const invalidBinaryModeMessageFormat = "invalid binary mode '%s': must be one of skip, hex, base64"

// RunConfig is an immutable snapshot of every resolved option for one run.
// It is built once from parsed arguments and configuration files and passed
// explicitly to each pipeline stage; no stage mutates it.
type RunConfig struct {
	// Roots are the search roots, defaulting to the current directory.
	Roots []string
	// TreeMode controls the directory-tree section.
	TreeMode types.TreeMode
	// ExcludeBloat activates the built-in bloat pattern set as a unit.
	ExcludeBloat bool
	// IncludePatterns is a positive allow-list; when non-empty a file must
	// match at least one pattern to survive filtering.
	IncludePatterns []string
	// ExcludePatterns drop matching files before includes are consulted.
	ExcludePatterns []string
	// Headers toggles the BEGIN/END marker lines.
	Headers bool
	// OutputPath redirects output into a file truncated at start; empty means stdout.
	OutputPath string
	// MaxBytes truncates text content to this many leading bytes when positive.
	// A positive MaxBytes takes priority over MaxLines.
	MaxBytes int64
	// MaxLines truncates text content to this many leading lines when positive.
	MaxLines int
	// BinaryMode is one of skip, hex, or base64.
	BinaryMode string
	// FollowSymlinks descends through symbolic links to directories.
	FollowSymlinks bool
	// UseGit prefers git-tracked file listing over the filesystem walk.
	UseGit bool
	// Sort enables byte-wise lexicographic ordering of the file list.
	Sort bool
	// Tokens enables the token count in the summary line.
	Tokens bool
	// TokenModel selects the tokenizer model for token counting.
	TokenModel string
	// CopyToClipboard places the rendered snapshot on the system clipboard.
	CopyToClipboard bool
}

// Validate checks the configuration for fatal errors. An unsupported binary
// mode is the one condition that aborts the whole run before any work starts.
func (runConfiguration RunConfig) Validate() error {
	if !types.IsValidBinaryMode(runConfiguration.BinaryMode) {
		return fmt.Errorf(invalidBinaryModeMessageFormat, runConfiguration.BinaryMode)
	}
	return nil
}
