package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `# dirsnap configuration. Command line flags override these defaults.
tree: off
bloat: false
headers: true
sort: true
binary: skip
max_bytes: 0
max_lines: 0
follow_symlinks: false
git: false
clipboard: false
include: []
exclude: []
tokens:
  enabled: false
  model: gpt-4o
`

	configurationExistsMessageFormat = "configuration already exists at %s (use --force to overwrite)"
	configurationWriteErrorFormat    = "writing configuration %s: %w"
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
	GlobalDirectory  string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns the destination path.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}

	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		destinationPath = filepath.Join(workingDirectory, LocalConfigFileName)
	case InitTargetGlobal:
		globalDirectory := options.GlobalDirectory
		if globalDirectory == "" {
			userConfigDirectory, userConfigError := os.UserConfigDir()
			if userConfigError != nil {
				return "", fmt.Errorf("resolve user configuration directory: %w", userConfigError)
			}
			globalDirectory = filepath.Join(userConfigDirectory, GlobalConfigDirectoryName)
		}
		if makeDirectoryError := os.MkdirAll(globalDirectory, 0o755); makeDirectoryError != nil {
			return "", fmt.Errorf("creating configuration directory %s: %w", globalDirectory, makeDirectoryError)
		}
		destinationPath = filepath.Join(globalDirectory, GlobalConfigFileName)
	default:
		return "", fmt.Errorf("unsupported configuration target %q", target)
	}

	if !options.Force {
		if _, statError := os.Stat(destinationPath); statError == nil {
			return "", fmt.Errorf(configurationExistsMessageFormat, destinationPath)
		}
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o644); writeError != nil {
		return "", fmt.Errorf(configurationWriteErrorFormat, destinationPath, writeError)
	}
	return destinationPath, nil
}
