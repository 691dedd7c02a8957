// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/dirsnap/internal/config"
	"github.com/temirov/dirsnap/internal/discover"
	"github.com/temirov/dirsnap/internal/services/clipboard"
	"github.com/temirov/dirsnap/internal/snapshot"
	"github.com/temirov/dirsnap/internal/tokenizer"
	"github.com/temirov/dirsnap/internal/treeview"
	"github.com/temirov/dirsnap/internal/types"
	"github.com/temirov/dirsnap/internal/utils"
)

const (
	treeFlagName           = "tree"
	treeOnlyFlagName       = "tree-only"
	bloatFlagName          = "bloat"
	bloatFlagShorthand     = "b"
	includeFlagName        = "include"
	includeFlagShorthand   = "i"
	excludeFlagName        = "exclude"
	excludeFlagShorthand   = "x"
	noHeadersFlagName      = "no-headers"
	outputFlagName         = "output"
	outputFlagShorthand    = "o"
	maxBytesFlagName       = "max-bytes"
	maxLinesFlagName       = "max-lines"
	binaryFlagName         = "binary"
	followSymlinksFlagName = "follow-symlinks"
	gitFlagName            = "git"
	noSortFlagName         = "no-sort"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	copyFlagName           = "copy"
	versionFlagName        = "version"
	configFlagName         = "config"

	versionTemplate      = "dirsnap version: %s\n"
	defaultPath          = "."
	rootUse              = "dirsnap [paths...]"
	rootShortDescription = "produce a textual snapshot of a directory tree"
	rootLongDescription  = `dirsnap renders an optional directory-tree diagram followed by the
concatenated contents of selected files, filtered by include/exclude glob
patterns and size/line limits, with configurable handling of binary files.
Output is byte-for-byte reproducible for an unchanged directory when sorting
is enabled, which suits feeding project context to AI models and producing
reviewable archives.`
	// rootUsageExample demonstrates typical invocations.
	rootUsageExample = `  # Snapshot the current directory, skipping common build artifacts
  dirsnap -b

  # Markdown and Go sources only, tree diagram first, into a file
  dirsnap --tree -i '*.md' -i '*.go' -o snapshot.txt

  # Include binaries as hex, cap every file at 200 lines
  dirsnap --binary hex --max-lines 200 src`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initGlobalFlagName   = "global"
	initForceFlagName    = "force"
	initSuccessFormat    = "wrote configuration to %s\n"

	treeFlagDescription           = "emit a directory-tree diagram before file contents"
	treeOnlyFlagDescription       = "emit only the directory-tree diagram"
	bloatFlagDescription          = "exclude common non-essential artifacts (build outputs, caches, VCS metadata, secrets)"
	includeFlagDescription        = "include only files matching this glob pattern (repeatable; patterns form a union)"
	excludeFlagDescription        = "exclude files matching this glob pattern (repeatable)"
	noHeadersFlagDescription      = "omit BEGIN/END marker lines"
	outputFlagDescription         = "write the snapshot to this file instead of stdout"
	maxBytesFlagDescription       = "emit at most this many leading bytes per file (takes priority over --max-lines)"
	maxLinesFlagDescription       = "emit at most this many leading lines per file"
	binaryFlagDescription         = "binary file handling: skip, hex, or base64"
	followSymlinksFlagDescription = "traverse symbolic links to directories"
	gitFlagDescription            = "prefer git-tracked file listing over the filesystem walk"
	noSortFlagDescription         = "preserve discovery order instead of sorting lexicographically"
	tokensFlagDescription         = "report a token count summary on stderr"
	modelFlagDescription          = "tokenizer model for --tokens"
	copyFlagDescription           = "also copy the snapshot to the system clipboard"
	versionFlagDescription       = "display application version"
	configFlagDescription        = "configuration file to use instead of " + config.LocalConfigFileName
	initGlobalFlagDescription    = "write the global configuration file instead of the local one"
	initForceFlagDescription     = "overwrite an existing configuration file"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// runOptions accumulates flag values before they are resolved into a RunConfig.
type runOptions struct {
	tree            bool
	treeOnly        bool
	bloat           bool
	includePatterns []string
	excludePatterns []string
	noHeaders       bool
	outputPath      string
	maxBytes        int64
	maxLines        int
	binaryMode      string
	followSymlinks  bool
	useGit          bool
	noSort          bool
	tokens          bool
	tokenModel      string
	copyToClipboard bool
	configFilePath  string
}

// Execute runs the dirsnap application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options runOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			runConfiguration, configurationError := resolveRunConfig(command, options, arguments)
			if configurationError != nil {
				return configurationError
			}
			return runSnapshot(runConfiguration)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	addRunFlags(rootCommand, &options)
	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// addRunFlags registers every snapshot flag on the command.
func addRunFlags(command *cobra.Command, options *runOptions) {
	command.Flags().BoolVar(&options.tree, treeFlagName, false, treeFlagDescription)
	command.Flags().BoolVar(&options.treeOnly, treeOnlyFlagName, false, treeOnlyFlagDescription)
	command.Flags().BoolVarP(&options.bloat, bloatFlagName, bloatFlagShorthand, false, bloatFlagDescription)
	command.Flags().StringArrayVarP(&options.includePatterns, includeFlagName, includeFlagShorthand, nil, includeFlagDescription)
	command.Flags().StringArrayVarP(&options.excludePatterns, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	command.Flags().BoolVar(&options.noHeaders, noHeadersFlagName, false, noHeadersFlagDescription)
	command.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	command.Flags().Int64Var(&options.maxBytes, maxBytesFlagName, 0, maxBytesFlagDescription)
	command.Flags().IntVar(&options.maxLines, maxLinesFlagName, 0, maxLinesFlagDescription)
	command.Flags().StringVar(&options.binaryMode, binaryFlagName, types.BinaryModeSkip, binaryFlagDescription)
	command.Flags().BoolVar(&options.followSymlinks, followSymlinksFlagName, false, followSymlinksFlagDescription)
	command.Flags().BoolVar(&options.useGit, gitFlagName, false, gitFlagDescription)
	command.Flags().BoolVar(&options.noSort, noSortFlagName, false, noSortFlagDescription)
	command.Flags().BoolVar(&options.tokens, tokensFlagName, false, tokensFlagDescription)
	command.Flags().StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	command.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	command.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initializationError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initializationError != nil {
				return initializationError
			}
			fmt.Printf(initSuccessFormat, destinationPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, initGlobalFlagName, false, initGlobalFlagDescription)
	initCommand.Flags().BoolVar(&force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}

// resolveRunConfig merges configuration file defaults with command line flags
// into the immutable RunConfig. Flags set on the command line win over file
// values; file values win over built-in defaults.
func resolveRunConfig(command *cobra.Command, options runOptions, arguments []string) (config.RunConfig, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return config.RunConfig{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	fileConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configFilePath,
	})
	if loadError != nil {
		return config.RunConfig{}, loadError
	}

	runConfiguration := config.RunConfig{
		Roots:           arguments,
		TreeMode:        types.TreeModeOff,
		Headers:         true,
		Sort:            true,
		BinaryMode:      types.BinaryModeSkip,
		TokenModel:      tokenizer.DefaultModel,
		IncludePatterns: fileConfiguration.Include,
		ExcludePatterns: fileConfiguration.Exclude,
	}
	if len(runConfiguration.Roots) == 0 {
		runConfiguration.Roots = []string{defaultPath}
	}

	applyFileConfiguration(&runConfiguration, fileConfiguration)
	if flagError := applyFlagOverrides(&runConfiguration, command, options); flagError != nil {
		return config.RunConfig{}, flagError
	}

	runConfiguration.IncludePatterns = utils.DeduplicatePatterns(runConfiguration.IncludePatterns)
	runConfiguration.ExcludePatterns = utils.DeduplicatePatterns(runConfiguration.ExcludePatterns)

	if validationError := runConfiguration.Validate(); validationError != nil {
		return config.RunConfig{}, validationError
	}
	return runConfiguration, nil
}

// applyFileConfiguration overlays configuration file values onto the built-in defaults.
func applyFileConfiguration(runConfiguration *config.RunConfig, fileConfiguration config.ApplicationConfiguration) {
	switch fileConfiguration.Tree {
	case "before":
		runConfiguration.TreeMode = types.TreeModeBefore
	case "only":
		runConfiguration.TreeMode = types.TreeModeOnly
	}
	if fileConfiguration.Bloat != nil {
		runConfiguration.ExcludeBloat = *fileConfiguration.Bloat
	}
	if fileConfiguration.Headers != nil {
		runConfiguration.Headers = *fileConfiguration.Headers
	}
	if fileConfiguration.Output != "" {
		runConfiguration.OutputPath = fileConfiguration.Output
	}
	if fileConfiguration.MaxBytes != nil {
		runConfiguration.MaxBytes = *fileConfiguration.MaxBytes
	}
	if fileConfiguration.MaxLines != nil {
		runConfiguration.MaxLines = *fileConfiguration.MaxLines
	}
	if fileConfiguration.Binary != "" {
		runConfiguration.BinaryMode = fileConfiguration.Binary
	}
	if fileConfiguration.FollowSymlinks != nil {
		runConfiguration.FollowSymlinks = *fileConfiguration.FollowSymlinks
	}
	if fileConfiguration.Git != nil {
		runConfiguration.UseGit = *fileConfiguration.Git
	}
	if fileConfiguration.Sort != nil {
		runConfiguration.Sort = *fileConfiguration.Sort
	}
	if fileConfiguration.Clipboard != nil {
		runConfiguration.CopyToClipboard = *fileConfiguration.Clipboard
	}
	if fileConfiguration.Tokens.Enabled != nil {
		runConfiguration.Tokens = *fileConfiguration.Tokens.Enabled
	}
	if fileConfiguration.Tokens.Model != "" {
		runConfiguration.TokenModel = fileConfiguration.Tokens.Model
	}
}

// applyFlagOverrides overlays command line flags that were explicitly set.
func applyFlagOverrides(runConfiguration *config.RunConfig, command *cobra.Command, options runOptions) error {
	flags := command.Flags()
	if flags.Changed(treeFlagName) && options.tree {
		runConfiguration.TreeMode = types.TreeModeBefore
	}
	if flags.Changed(treeOnlyFlagName) && options.treeOnly {
		runConfiguration.TreeMode = types.TreeModeOnly
	}
	if flags.Changed(bloatFlagName) {
		runConfiguration.ExcludeBloat = options.bloat
	}
	if flags.Changed(includeFlagName) {
		runConfiguration.IncludePatterns = append(runConfiguration.IncludePatterns, options.includePatterns...)
	}
	if flags.Changed(excludeFlagName) {
		runConfiguration.ExcludePatterns = append(runConfiguration.ExcludePatterns, options.excludePatterns...)
	}
	if flags.Changed(noHeadersFlagName) {
		runConfiguration.Headers = !options.noHeaders
	}
	if flags.Changed(outputFlagName) {
		runConfiguration.OutputPath = options.outputPath
	}
	if flags.Changed(maxBytesFlagName) {
		runConfiguration.MaxBytes = options.maxBytes
	}
	if flags.Changed(maxLinesFlagName) {
		runConfiguration.MaxLines = options.maxLines
	}
	if flags.Changed(binaryFlagName) {
		runConfiguration.BinaryMode = strings.ToLower(strings.TrimSpace(options.binaryMode))
	}
	if flags.Changed(followSymlinksFlagName) {
		runConfiguration.FollowSymlinks = options.followSymlinks
	}
	if flags.Changed(gitFlagName) {
		runConfiguration.UseGit = options.useGit
	}
	if flags.Changed(noSortFlagName) {
		runConfiguration.Sort = !options.noSort
	}
	if flags.Changed(tokensFlagName) {
		runConfiguration.Tokens = options.tokens
	}
	if flags.Changed(modelFlagName) {
		runConfiguration.TokenModel = options.tokenModel
	}
	if flags.Changed(copyFlagName) {
		runConfiguration.CopyToClipboard = options.copyToClipboard
	}
	return nil
}

// runSnapshot assembles the collaborators and executes the pipeline.
func runSnapshot(runConfiguration config.RunConfig) error {
	collaborators := snapshot.Collaborators{
		Lister:    discover.GitLister{},
		Tree:      treeview.NativeRenderer{},
		Clipboard: clipboard.NewService(),
	}
	if runConfiguration.Tokens {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(runConfiguration.TokenModel)
		if counterError != nil {
			return counterError
		}
		collaborators.Counter = tokenCounter
		collaborators.TokenModel = resolvedModel
	}
	return snapshot.Run(runConfiguration, collaborators, os.Stdout, os.Stderr)
}
