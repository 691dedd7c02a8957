// Package discover enumerates candidate files under one or more roots, either
// through a version-control file lister or a recursive filesystem walk, and
// normalizes every result to a forward-slash path relative to the working
// directory.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/dirsnap/internal/matcher"
)

const currentDirectoryPrefix = "./"

// Options configures one discovery pass.
type Options struct {
	// Roots are the search roots; a root that does not exist contributes
	// nothing and is not an error.
	Roots []string
	// UseGit prefers the Lister over the filesystem walk. Any Lister failure
	// silently falls back to the walk.
	UseGit bool
	// FollowSymlinks descends through symbolic links to directories. A
	// symlink to a regular file is always a candidate regardless of this
	// setting; broken links are deferred to content reading, which skips them.
	FollowSymlinks bool
	// BloatPatterns, when non-empty, prune matching subtrees during the walk
	// before recursing into them. Pruning is an optimization only; the filter
	// pipeline re-applies bloat exclusion to the discovered list.
	BloatPatterns []matcher.Pattern
	// Lister provides version-controlled file listing; nil disables git discovery.
	Lister FileLister
	// WorkingDirectory anchors path normalization; empty means the process CWD.
	WorkingDirectory string
	// Warn receives recoverable discovery diagnostics.
	Warn func(format string, arguments ...any)
}

// Discover enumerates candidate regular files under the configured roots.
// Results use forward slashes, carry no leading "./", and are relative to the
// working directory when possible. No roots yields an empty list, not an error.
func Discover(options Options) ([]string, error) {
	warn := options.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return nil, workingDirectoryError
		}
		workingDirectory = currentDirectory
	}

	if options.UseGit && options.Lister != nil {
		trackedPaths, listError := options.Lister.ListTracked(options.Roots)
		if listError == nil {
			normalizedPaths := make([]string, 0, len(trackedPaths))
			for _, trackedPath := range trackedPaths {
				normalizedPaths = append(normalizedPaths, NormalizePath(trackedPath, workingDirectory))
			}
			return normalizedPaths, nil
		}
		warn("git file listing unavailable, falling back to filesystem walk: %v", listError)
	}

	walker := &filesystemWalker{
		options:          options,
		workingDirectory: workingDirectory,
		warn:             warn,
		visitedTargets:   make(map[string]struct{}),
	}

	for _, rootPath := range options.Roots {
		rootInformation, statError := os.Stat(rootPath)
		if statError != nil {
			warn("skipping root %s: %v", rootPath, statError)
			continue
		}
		if !rootInformation.IsDir() {
			walker.files = append(walker.files, NormalizePath(rootPath, workingDirectory))
			continue
		}
		if resolvedRoot, resolveError := filepath.EvalSymlinks(rootPath); resolveError == nil {
			walker.visitedTargets[resolvedRoot] = struct{}{}
		}
		walker.walkDirectory(rootPath)
	}
	return walker.files, nil
}

// filesystemWalker performs the recursive walk for one discovery pass.
type filesystemWalker struct {
	options          Options
	workingDirectory string
	warn             func(format string, arguments ...any)
	visitedTargets   map[string]struct{}
	files            []string
}

// walkDirectory enumerates directoryPath recursively. Directory read failures
// are recoverable: the subtree contributes nothing and the walk continues.
func (walker *filesystemWalker) walkDirectory(directoryPath string) {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		walker.warn("reading directory %s: %v", directoryPath, readError)
		return
	}

	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		relativePath := NormalizePath(childPath, walker.workingDirectory)

		if directoryEntry.IsDir() {
			if matcher.Matches(relativePath, walker.options.BloatPatterns) {
				continue
			}
			walker.walkDirectory(childPath)
			continue
		}

		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			walker.walkSymlink(childPath, relativePath)
			continue
		}

		if directoryEntry.Type().IsRegular() {
			walker.files = append(walker.files, relativePath)
		}
	}
}

// walkSymlink handles a symbolic link entry. Links to directories are
// descended only when FollowSymlinks is set and the target has not been
// visited (cycle guard on resolved paths); links to files, including broken
// ones, are listed as candidates.
func (walker *filesystemWalker) walkSymlink(linkPath string, relativePath string) {
	targetInformation, statError := os.Stat(linkPath)
	if statError != nil {
		// Broken link: keep it as a candidate; content reading skips it.
		walker.files = append(walker.files, relativePath)
		return
	}

	if !targetInformation.IsDir() {
		walker.files = append(walker.files, relativePath)
		return
	}

	if !walker.options.FollowSymlinks {
		return
	}
	if matcher.Matches(relativePath, walker.options.BloatPatterns) {
		return
	}
	resolvedTarget, resolveError := filepath.EvalSymlinks(linkPath)
	if resolveError != nil {
		walker.warn("resolving symlink %s: %v", linkPath, resolveError)
		return
	}
	if _, alreadyVisited := walker.visitedTargets[resolvedTarget]; alreadyVisited {
		return
	}
	walker.visitedTargets[resolvedTarget] = struct{}{}
	walker.walkDirectory(linkPath)
}

// NormalizePath converts path to forward-slash form relative to
// workingDirectory when the path lies below it, stripping any leading "./".
// Paths outside the working directory keep their cleaned original form.
func NormalizePath(path string, workingDirectory string) string {
	cleanedPath := filepath.Clean(path)
	if filepath.IsAbs(cleanedPath) && workingDirectory != "" {
		if relativePath, relativeError := filepath.Rel(workingDirectory, cleanedPath); relativeError == nil && !strings.HasPrefix(relativePath, "..") {
			cleanedPath = relativePath
		}
	}
	normalizedPath := filepath.ToSlash(cleanedPath)
	normalizedPath = strings.TrimPrefix(normalizedPath, currentDirectoryPrefix)
	return normalizedPath
}
