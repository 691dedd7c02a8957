package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/dirsnap/internal/utils"
)

const (
	// LocalConfigFileName is the per-project configuration file name.
	LocalConfigFileName = ".dirsnap.yaml"
	// GlobalConfigDirectoryName is the directory under the user configuration
	// root that holds the global configuration file.
	GlobalConfigDirectoryName = "dirsnap"
	// GlobalConfigFileName is the global configuration file name.
	GlobalConfigFileName = "config.yaml"

	configurationTypeName        = "yaml"
	errorReadConfigurationFormat = "reading configuration %s: %w"
	errorDecodeConfigFormat      = "decoding configuration %s: %w"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	// WorkingDirectory is where the local configuration file is searched.
	WorkingDirectory string
	// GlobalDirectory overrides the global configuration directory; empty
	// means the user configuration root (for tests).
	GlobalDirectory string
	// ExplicitFilePath names a configuration file to use instead of the local one.
	ExplicitFilePath string
}

// ApplicationConfiguration holds file-provided defaults for run options.
// Pointer fields distinguish "unset" from an explicit false or zero.
type ApplicationConfiguration struct {
	Tree           string             `mapstructure:"tree"`
	Bloat          *bool              `mapstructure:"bloat"`
	Include        []string           `mapstructure:"include"`
	Exclude        []string           `mapstructure:"exclude"`
	Headers        *bool              `mapstructure:"headers"`
	Output         string             `mapstructure:"output"`
	MaxBytes       *int64             `mapstructure:"max_bytes"`
	MaxLines       *int               `mapstructure:"max_lines"`
	Binary         string             `mapstructure:"binary"`
	FollowSymlinks *bool              `mapstructure:"follow_symlinks"`
	Git            *bool              `mapstructure:"git"`
	Sort           *bool              `mapstructure:"sort"`
	Clipboard      *bool              `mapstructure:"clipboard"`
	Tokens         TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Merge overlays other on top of the receiver and returns the result.
// Values set in other win; unset values fall through.
func (base ApplicationConfiguration) Merge(other ApplicationConfiguration) ApplicationConfiguration {
	merged := base
	if other.Tree != "" {
		merged.Tree = other.Tree
	}
	if other.Bloat != nil {
		merged.Bloat = other.Bloat
	}
	if len(other.Include) > 0 {
		merged.Include = other.Include
	}
	if len(other.Exclude) > 0 {
		merged.Exclude = other.Exclude
	}
	if other.Headers != nil {
		merged.Headers = other.Headers
	}
	if other.Output != "" {
		merged.Output = other.Output
	}
	if other.MaxBytes != nil {
		merged.MaxBytes = other.MaxBytes
	}
	if other.MaxLines != nil {
		merged.MaxLines = other.MaxLines
	}
	if other.Binary != "" {
		merged.Binary = other.Binary
	}
	if other.FollowSymlinks != nil {
		merged.FollowSymlinks = other.FollowSymlinks
	}
	if other.Git != nil {
		merged.Git = other.Git
	}
	if other.Sort != nil {
		merged.Sort = other.Sort
	}
	if other.Clipboard != nil {
		merged.Clipboard = other.Clipboard
	}
	if other.Tokens.Enabled != nil {
		merged.Tokens.Enabled = other.Tokens.Enabled
	}
	if other.Tokens.Model != "" {
		merged.Tokens.Model = other.Tokens.Model
	}
	return merged
}

// LoadApplicationConfiguration loads configuration from the global file and
// the local (or explicit) file, local values winning. Missing files are not
// errors; malformed files are.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	globalPath := resolveGlobalConfigPath(options.GlobalDirectory)
	if globalPath != "" {
		globalConfiguration, globalLoadError := loadConfigurationFromPath(globalPath)
		if globalLoadError != nil {
			return ApplicationConfiguration{}, globalLoadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := options.ExplicitFilePath
	if localPath == "" {
		localPath = filepath.Join(workingDirectory, LocalConfigFileName)
	} else if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfiguration, localLoadError := loadConfigurationFromPath(localPath)
	if localLoadError != nil {
		return ApplicationConfiguration{}, localLoadError
	}
	merged = merged.Merge(localConfiguration)

	merged.Include = utils.DeduplicatePatterns(merged.Include)
	merged.Exclude = utils.DeduplicatePatterns(merged.Exclude)

	return merged, nil
}

// resolveGlobalConfigPath returns the global configuration file path, or the
// empty string when no global location can be determined.
func resolveGlobalConfigPath(globalDirectory string) string {
	if globalDirectory != "" {
		return filepath.Join(globalDirectory, GlobalConfigFileName)
	}
	userConfigDirectory, userConfigError := os.UserConfigDir()
	if userConfigError != nil || userConfigDirectory == "" {
		return ""
	}
	return filepath.Join(userConfigDirectory, GlobalConfigDirectoryName, GlobalConfigFileName)
}

// loadConfigurationFromPath reads one configuration file. A missing file
// yields the zero configuration.
func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	if _, statError := os.Stat(configurationPath); statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf(errorReadConfigurationFormat, configurationPath, statError)
	}

	loader := viper.New()
	loader.SetConfigFile(configurationPath)
	loader.SetConfigType(configurationTypeName)
	if readError := loader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorReadConfigurationFormat, configurationPath, readError)
	}

	var loaded ApplicationConfiguration
	if decodeError := loader.Unmarshal(&loaded); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorDecodeConfigFormat, configurationPath, decodeError)
	}
	loaded.Binary = strings.ToLower(strings.TrimSpace(loaded.Binary))
	loaded.Tree = strings.ToLower(strings.TrimSpace(loaded.Tree))
	return loaded, nil
}
