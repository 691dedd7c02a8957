// Package snapshot orchestrates the discovery, filtering, and rendering
// pipeline: roots are discovered, normalized, ordered, filtered, and the
// surviving files serialized to a single output sink.
package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/dirsnap/internal/config"
	"github.com/temirov/dirsnap/internal/discover"
	"github.com/temirov/dirsnap/internal/filter"
	"github.com/temirov/dirsnap/internal/matcher"
	"github.com/temirov/dirsnap/internal/render"
	"github.com/temirov/dirsnap/internal/services/clipboard"
	"github.com/temirov/dirsnap/internal/tokenizer"
	"github.com/temirov/dirsnap/internal/treeview"
	"github.com/temirov/dirsnap/internal/types"
	"github.com/temirov/dirsnap/internal/utils"
)

const (
	toolName                   = "dirsnap"
	treeSectionHeaderFormat    = "### Directory structure (generated by %s on %s)\n"
	summaryLineFormat          = "Summary: %d files, %s"
	summaryTokensFormat        = ", %d tokens (%s)"
	outputFileErrorFormat      = "opening output file %s: %w"
	treeUnavailableMessage     = "tree rendering unavailable, skipping tree section"
	clipboardCopyFailedFormat  = "copying snapshot to clipboard: %v"
	clipboardUnavailableError  = "clipboard copy requested but no clipboard service is available"
	treeRenderWarningFormat    = "rendering tree for %v: %v"
	tokenCountWarningFormat    = "counting tokens for %s: %v"
	summaryWriteWarningMessage = "writing summary: %v"
)

// Collaborators are the external capabilities the pipeline consumes. Each one
// is optional; absence degrades to the documented fallback instead of failing
// the run (except the clipboard, which is only consulted when copying was
// explicitly requested).
type Collaborators struct {
	// Lister provides version-controlled file listing for git discovery.
	Lister discover.FileLister
	// Tree renders the directory diagram for the tree section.
	Tree treeview.Renderer
	// Clipboard receives the snapshot text when copying is enabled.
	Clipboard clipboard.Copier
	// Counter estimates token counts for the summary line.
	Counter tokenizer.Counter
	// TokenModel names the model the Counter resolves to.
	TokenModel string
	// Clock supplies the tree-section timestamp; nil means time.Now.
	Clock func() time.Time
}

// Run executes one snapshot with the provided configuration, writing content
// to stdout (or the configured output file) and diagnostics to stderr.
func Run(runConfiguration config.RunConfig, collaborators Collaborators, stdout io.Writer, stderr io.Writer) error {
	if validationError := runConfiguration.Validate(); validationError != nil {
		return validationError
	}
	warningPrinter := utils.NewWarningPrinter(stderr)

	var bloatPatterns []matcher.Pattern
	if runConfiguration.ExcludeBloat {
		bloatPatterns = matcher.CompileAll(config.BloatPatterns)
	}
	excludePatterns := matcher.CompileAll(runConfiguration.ExcludePatterns)
	includePatterns := matcher.CompileAll(runConfiguration.IncludePatterns)

	sink := stdout
	if runConfiguration.OutputPath != "" {
		outputFile, createError := os.Create(runConfiguration.OutputPath)
		if createError != nil {
			return fmt.Errorf(outputFileErrorFormat, runConfiguration.OutputPath, createError)
		}
		defer outputFile.Close()
		sink = outputFile
	}

	var clipboardBuffer *bytes.Buffer
	if runConfiguration.CopyToClipboard {
		if collaborators.Clipboard == nil {
			return fmt.Errorf(clipboardUnavailableError)
		}
		clipboardBuffer = &bytes.Buffer{}
		sink = io.MultiWriter(sink, clipboardBuffer)
	}

	if runConfiguration.TreeMode != types.TreeModeOff {
		renderTreeSection(runConfiguration, collaborators, sink, bloatPatterns, excludePatterns, warningPrinter)
	}

	if runConfiguration.TreeMode != types.TreeModeOnly {
		if contentError := renderContentSection(runConfiguration, collaborators, sink, stderr, bloatPatterns, excludePatterns, includePatterns, warningPrinter); contentError != nil {
			return contentError
		}
	}

	if clipboardBuffer != nil {
		if copyError := collaborators.Clipboard.Copy(clipboardBuffer.String()); copyError != nil {
			warningPrinter.Warnf(clipboardCopyFailedFormat, copyError)
		}
	}
	return nil
}

// renderTreeSection emits the tree header, the collaborator's diagram, and a
// trailing blank line. A missing or failing renderer degrades to a warning.
func renderTreeSection(
	runConfiguration config.RunConfig,
	collaborators Collaborators,
	sink io.Writer,
	bloatPatterns []matcher.Pattern,
	excludePatterns []matcher.Pattern,
	warningPrinter *utils.WarningPrinter,
) {
	if collaborators.Tree == nil {
		warningPrinter.Warnf(treeUnavailableMessage)
		return
	}
	clock := collaborators.Clock
	if clock == nil {
		clock = time.Now
	}
	ignorePatterns := append(append([]matcher.Pattern{}, bloatPatterns...), excludePatterns...)
	fmt.Fprintf(sink, treeSectionHeaderFormat, toolName, utils.FormatTimestamp(clock()))
	if renderError := collaborators.Tree.Render(sink, runConfiguration.Roots, ignorePatterns); renderError != nil {
		warningPrinter.Warnf(treeRenderWarningFormat, runConfiguration.Roots, renderError)
	}
	fmt.Fprintln(sink)
}

// renderContentSection discovers, orders, filters, and renders the file list.
// Files render concurrently into private buffers; buffers are flushed to the
// sink strictly in list order, so emission order matches the sorter's order
// and a failing file never leaves a dangling BEGIN marker.
func renderContentSection(
	runConfiguration config.RunConfig,
	collaborators Collaborators,
	sink io.Writer,
	stderr io.Writer,
	bloatPatterns []matcher.Pattern,
	excludePatterns []matcher.Pattern,
	includePatterns []matcher.Pattern,
	warningPrinter *utils.WarningPrinter,
) error {
	discoveredFiles, discoveryError := discover.Discover(discover.Options{
		Roots:          runConfiguration.Roots,
		UseGit:         runConfiguration.UseGit,
		FollowSymlinks: runConfiguration.FollowSymlinks,
		BloatPatterns:  bloatPatterns,
		Lister:         collaborators.Lister,
		Warn:           warningPrinter.Warnf,
	})
	if discoveryError != nil {
		return discoveryError
	}

	orderedFiles := discover.Order(discoveredFiles, runConfiguration.Sort)
	survivingFiles := filter.Apply(orderedFiles, bloatPatterns, excludePatterns, includePatterns)

	fileRenderer := render.Renderer{
		Headers:    runConfiguration.Headers,
		MaxBytes:   runConfiguration.MaxBytes,
		MaxLines:   runConfiguration.MaxLines,
		BinaryMode: runConfiguration.BinaryMode,
		Warn:       warningPrinter.Warnf,
	}

	renderedBlocks := make([][]byte, len(survivingFiles))
	renderedResults := make([]render.Result, len(survivingFiles))

	var workerGroup errgroup.Group
	workerGroup.SetLimit(runtime.GOMAXPROCS(0))
	for fileIndex, filePath := range survivingFiles {
		fileIndex, filePath := fileIndex, filePath
		workerGroup.Go(func() error {
			var blockBuffer bytes.Buffer
			renderResult, renderError := fileRenderer.RenderFile(filePath, &blockBuffer)
			if renderError != nil {
				return renderError
			}
			renderedBlocks[fileIndex] = blockBuffer.Bytes()
			renderedResults[fileIndex] = renderResult
			return nil
		})
	}
	if renderError := workerGroup.Wait(); renderError != nil {
		return renderError
	}

	var emittedFiles int
	var emittedBytes int64
	var countedTokens int
	for fileIndex, renderedBlock := range renderedBlocks {
		if !renderedResults[fileIndex].Emitted {
			continue
		}
		if _, writeError := sink.Write(renderedBlock); writeError != nil {
			return writeError
		}
		emittedFiles++
		emittedBytes += renderedResults[fileIndex].SizeBytes
		if collaborators.Counter != nil && !renderedResults[fileIndex].Binary {
			countResult, countError := tokenizer.CountBytes(collaborators.Counter, renderedBlock)
			if countError != nil {
				warningPrinter.Warnf(tokenCountWarningFormat, survivingFiles[fileIndex], countError)
			} else if countResult.Counted {
				countedTokens += countResult.Tokens
			}
		}
	}

	if collaborators.Counter != nil {
		summaryLine := fmt.Sprintf(summaryLineFormat, emittedFiles, utils.FormatFileSize(emittedBytes))
		summaryLine += fmt.Sprintf(summaryTokensFormat, countedTokens, collaborators.TokenModel)
		if _, summaryError := fmt.Fprintln(stderr, summaryLine); summaryError != nil {
			warningPrinter.Warnf(summaryWriteWarningMessage, summaryError)
		}
	}
	return nil
}
