package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"

	"github.com/temirov/dirsnap/internal/config"
	"github.com/temirov/dirsnap/internal/types"
)

// changeDirectory switches the working directory for the duration of the test,
// restoring the previous one on cleanup (stand-in for t.Chdir on older Go).
func changeDirectory(t *testing.T, directory string) {
	t.Helper()
	previousDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		t.Fatalf("getting working directory: %v", workingDirectoryError)
	}
	if chdirError := os.Chdir(directory); chdirError != nil {
		t.Fatalf("changing directory to %q: %v", directory, chdirError)
	}
	t.Cleanup(func() {
		if chdirError := os.Chdir(previousDirectory); chdirError != nil {
			t.Errorf("restoring working directory: %v", chdirError)
		}
	})
}

// resolveWithArguments parses the provided command line and resolves the run
// configuration the way the root command's RunE would.
func resolveWithArguments(t *testing.T, commandLine []string) (config.RunConfig, error) {
	t.Helper()
	// Keep a developer's real global configuration out of the resolution.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var options runOptions
	command := &cobra.Command{Use: rootUse, Args: cobra.ArbitraryArgs}
	addRunFlags(command, &options)
	if parseError := command.ParseFlags(commandLine); parseError != nil {
		t.Fatalf("parsing flags %v: %v", commandLine, parseError)
	}
	return resolveRunConfig(command, options, command.Flags().Args())
}

func TestResolveRunConfigDefaults(t *testing.T) {
	changeDirectory(t, t.TempDir())

	runConfiguration, resolveError := resolveWithArguments(t, nil)
	if resolveError != nil {
		t.Fatalf("unexpected resolve error: %v", resolveError)
	}

	if !reflect.DeepEqual(runConfiguration.Roots, []string{"."}) {
		t.Errorf("expected default root, got %v", runConfiguration.Roots)
	}
	if runConfiguration.TreeMode != types.TreeModeOff {
		t.Errorf("expected tree off by default, got %v", runConfiguration.TreeMode)
	}
	if !runConfiguration.Headers || !runConfiguration.Sort {
		t.Error("headers and sorting must default to enabled")
	}
	if runConfiguration.ExcludeBloat {
		t.Error("bloat exclusion must default to disabled")
	}
	if runConfiguration.BinaryMode != types.BinaryModeSkip {
		t.Errorf("expected skip binary mode, got %q", runConfiguration.BinaryMode)
	}
}

func TestResolveRunConfigFlags(t *testing.T) {
	changeDirectory(t, t.TempDir())

	runConfiguration, resolveError := resolveWithArguments(t, []string{
		"--tree-only", "-b", "-i", "*.md", "-i", "*.go", "-x", ".venv",
		"--no-headers", "--max-lines", "40", "--binary", "HEX", "--no-sort",
		"src", "docs",
	})
	if resolveError != nil {
		t.Fatalf("unexpected resolve error: %v", resolveError)
	}

	if !reflect.DeepEqual(runConfiguration.Roots, []string{"src", "docs"}) {
		t.Errorf("expected positional roots, got %v", runConfiguration.Roots)
	}
	if runConfiguration.TreeMode != types.TreeModeOnly {
		t.Errorf("expected tree-only mode, got %v", runConfiguration.TreeMode)
	}
	if !runConfiguration.ExcludeBloat {
		t.Error("expected bloat exclusion enabled")
	}
	if !reflect.DeepEqual(runConfiguration.IncludePatterns, []string{"*.md", "*.go"}) {
		t.Errorf("expected include union, got %v", runConfiguration.IncludePatterns)
	}
	if !reflect.DeepEqual(runConfiguration.ExcludePatterns, []string{".venv"}) {
		t.Errorf("expected exclude list, got %v", runConfiguration.ExcludePatterns)
	}
	if runConfiguration.Headers {
		t.Error("expected headers disabled by --no-headers")
	}
	if runConfiguration.MaxLines != 40 {
		t.Errorf("expected max lines 40, got %d", runConfiguration.MaxLines)
	}
	if runConfiguration.BinaryMode != types.BinaryModeHex {
		t.Errorf("expected binary mode normalized to hex, got %q", runConfiguration.BinaryMode)
	}
	if runConfiguration.Sort {
		t.Error("expected sorting disabled by --no-sort")
	}
}

func TestResolveRunConfigInvalidBinaryMode(t *testing.T) {
	changeDirectory(t, t.TempDir())

	if _, resolveError := resolveWithArguments(t, []string{"--binary", "octal"}); resolveError == nil {
		t.Fatal("expected error for an unknown binary mode")
	}
}

func TestResolveRunConfigFlagsOverrideFile(t *testing.T) {
	workingDirectory := t.TempDir()
	changeDirectory(t, workingDirectory)
	configurationContent := "binary: hex\nbloat: true\nmax_lines: 10\nexclude:\n  - node_modules\n"
	configurationPath := filepath.Join(workingDirectory, config.LocalConfigFileName)
	if writeError := os.WriteFile(configurationPath, []byte(configurationContent), 0o644); writeError != nil {
		t.Fatalf("writing configuration: %v", writeError)
	}

	runConfiguration, resolveError := resolveWithArguments(t, []string{"--binary", "base64", "-x", "dist"})
	if resolveError != nil {
		t.Fatalf("unexpected resolve error: %v", resolveError)
	}

	if runConfiguration.BinaryMode != types.BinaryModeBase64 {
		t.Errorf("flag must override file value, got %q", runConfiguration.BinaryMode)
	}
	if !runConfiguration.ExcludeBloat {
		t.Error("unchanged file value must survive")
	}
	if runConfiguration.MaxLines != 10 {
		t.Errorf("unchanged file value must survive, got %d", runConfiguration.MaxLines)
	}
	if !reflect.DeepEqual(runConfiguration.ExcludePatterns, []string{"node_modules", "dist"}) {
		t.Errorf("flag excludes must extend file excludes, got %v", runConfiguration.ExcludePatterns)
	}
}

func TestResolveRunConfigDeduplicatesPatterns(t *testing.T) {
	changeDirectory(t, t.TempDir())

	runConfiguration, resolveError := resolveWithArguments(t, []string{"-i", "*.md", "-i", "*.md", "-x", "bin", "-x", "bin"})
	if resolveError != nil {
		t.Fatalf("unexpected resolve error: %v", resolveError)
	}
	if !reflect.DeepEqual(runConfiguration.IncludePatterns, []string{"*.md"}) {
		t.Errorf("expected deduplicated includes, got %v", runConfiguration.IncludePatterns)
	}
	if !reflect.DeepEqual(runConfiguration.ExcludePatterns, []string{"bin"}) {
		t.Errorf("expected deduplicated excludes, got %v", runConfiguration.ExcludePatterns)
	}
}
