// Package treeview renders a textual diagram of the directory hierarchy.
// The renderer is a replaceable collaborator of the snapshot pipeline: the
// native implementation below walks the filesystem itself, but anything
// satisfying Renderer (including an external tree tool adapter) can stand in.
package treeview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/temirov/dirsnap/internal/discover"
	"github.com/temirov/dirsnap/internal/matcher"
)

const (
	middleConnector = "├── "
	lastConnector   = "└── "
	middlePrefix    = "│   "
	lastPrefix      = "    "
)

// Renderer produces a tree diagram for the given roots, omitting entries that
// match the ignore pattern set.
type Renderer interface {
	Render(out io.Writer, roots []string, ignorePatterns []matcher.Pattern) error
}

// NativeRenderer draws the hierarchy with box-drawing connectors, one root
// per block. Entries keep directory-listing order (name-sorted by os.ReadDir).
type NativeRenderer struct {
	// WorkingDirectory anchors ignore-pattern evaluation; empty means the process CWD.
	WorkingDirectory string
}

// Render writes the diagram for every root. A root that cannot be read is
// skipped; rendering the remaining roots continues.
func (renderer NativeRenderer) Render(out io.Writer, roots []string, ignorePatterns []matcher.Pattern) error {
	workingDirectory := renderer.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return workingDirectoryError
		}
		workingDirectory = currentDirectory
	}

	for rootIndex, rootPath := range roots {
		if rootIndex > 0 {
			if _, writeError := fmt.Fprintln(out); writeError != nil {
				return writeError
			}
		}
		if _, writeError := fmt.Fprintln(out, rootPath); writeError != nil {
			return writeError
		}
		if renderError := renderer.renderDirectory(out, rootPath, "", workingDirectory, ignorePatterns); renderError != nil {
			return renderError
		}
	}
	return nil
}

// renderDirectory draws one directory level and recurses into visible subdirectories.
func (renderer NativeRenderer) renderDirectory(out io.Writer, directoryPath string, linePrefix string, workingDirectory string, ignorePatterns []matcher.Pattern) error {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil
	}

	visibleEntries := directoryEntries[:0:0]
	for _, directoryEntry := range directoryEntries {
		relativePath := discover.NormalizePath(filepath.Join(directoryPath, directoryEntry.Name()), workingDirectory)
		if matcher.Matches(relativePath, ignorePatterns) {
			continue
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}

	for entryIndex, directoryEntry := range visibleEntries {
		isLastEntry := entryIndex == len(visibleEntries)-1
		connector := middleConnector
		childPrefix := linePrefix + middlePrefix
		if isLastEntry {
			connector = lastConnector
			childPrefix = linePrefix + lastPrefix
		}
		if _, writeError := fmt.Fprintf(out, "%s%s%s\n", linePrefix, connector, directoryEntry.Name()); writeError != nil {
			return writeError
		}
		if directoryEntry.IsDir() {
			childPath := filepath.Join(directoryPath, directoryEntry.Name())
			if renderError := renderer.renderDirectory(out, childPath, childPrefix, workingDirectory, ignorePatterns); renderError != nil {
				return renderError
			}
		}
	}
	return nil
}

var _ Renderer = NativeRenderer{}
