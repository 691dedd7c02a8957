package discover

import (
	"fmt"
	"os/exec"
	"strings"
)

// FileLister enumerates version-controlled files under the given roots.
// Implementations return repository-tracked paths relative to the invocation
// directory; failure of any kind triggers the filesystem-walk fallback and is
// never fatal to the run.
type FileLister interface {
	ListTracked(roots []string) ([]string, error)
}

// GitLister lists tracked files by invoking the git executable. The listing
// honors the repository's own ignore rules and includes files inside nested
// repositories via --recurse-submodules.
type GitLister struct {
	// WorkingDirectory is where git is invoked; empty means the process CWD.
	WorkingDirectory string
}

// ListTracked runs git ls-files restricted to roots. Paths are returned
// NUL-separated by git and split here, so names containing newlines survive.
func (lister GitLister) ListTracked(roots []string) ([]string, error) {
	arguments := []string{"ls-files", "-z", "--recurse-submodules", "--"}
	arguments = append(arguments, roots...)
	// #nosec G204
	listCommand := exec.Command("git", arguments...)
	if lister.WorkingDirectory != "" {
		listCommand.Dir = lister.WorkingDirectory
	}
	commandOutput, commandError := listCommand.Output()
	if commandError != nil {
		return nil, fmt.Errorf("git ls-files failed: %w", commandError)
	}

	var trackedPaths []string
	for _, rawPath := range strings.Split(string(commandOutput), "\x00") {
		if rawPath == "" {
			continue
		}
		trackedPaths = append(trackedPaths, rawPath)
	}
	return trackedPaths, nil
}

var _ FileLister = GitLister{}
