package render

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/temirov/dirsnap/internal/types"
	"github.com/temirov/dirsnap/internal/utils"
)

const (
	beginMarkerFormat          = "===== BEGIN %s =====\n"
	endMarkerFormat            = "===== END %s =====\n"
	hexAnnotation              = " (hex)"
	base64Annotation           = " (base64)"
	hexBytesPerLine            = 16
	base64LineWidth            = 76
	unsupportedBinaryModeError = "unsupported binary mode '%s'"
)

// Result describes what RenderFile emitted for one file.
type Result struct {
	// Emitted is false when the file was skipped (empty, vanished,
	// unreadable, or binary in skip mode).
	Emitted bool
	// Binary reports the classification verdict of an emitted file.
	Binary bool
	// SizeBytes is the on-disk size of an emitted file.
	SizeBytes int64
}

// Renderer serializes one file at a time to an output writer. Fields mirror
// the run configuration; the zero value renders full content with markers in
// skip mode using the default classifier chain.
type Renderer struct {
	// Headers toggles the BEGIN/END marker lines. When false nothing is
	// substituted for them.
	Headers bool
	// MaxBytes truncates text content to this many leading bytes when
	// positive; it takes priority over MaxLines. Truncation is by raw byte
	// count and may split a multi-byte character.
	MaxBytes int64
	// MaxLines truncates text content to this many leading lines when
	// positive and MaxBytes is unset. A final unterminated line counts.
	MaxLines int
	// BinaryMode is one of skip, hex, or base64. Truncation never applies to
	// hex or base64 output: binary modes always emit the file fully.
	BinaryMode string
	// Classifiers is the ordered classification chain; nil selects the default.
	Classifiers []Classifier
	// Warn receives per-file skip diagnostics.
	Warn func(format string, arguments ...any)
}

// RenderFile classifies and serializes the file at relativePath. Per-file
// conditions (vanished, unreadable, empty) skip the file and never fail the
// run; the only returned errors are output write failures and an unsupported
// binary mode, which configuration validation normally rejects up front.
// Content is rendered into out in one piece per file, so a skipped file never
// leaves an unterminated BEGIN marker behind.
func (renderer Renderer) RenderFile(relativePath string, out io.Writer) (Result, error) {
	warn := renderer.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}

	// Re-verify existence: the file may have been deleted between discovery
	// and rendering.
	fileInformation, statError := os.Stat(relativePath)
	if statError != nil {
		warn("skipping %s: %v", relativePath, statError)
		return Result{}, nil
	}
	if fileInformation.IsDir() || fileInformation.Size() == 0 {
		return Result{}, nil
	}

	fileContent, readError := os.ReadFile(relativePath)
	if readError != nil {
		warn("skipping %s: %v", relativePath, readError)
		return Result{}, nil
	}
	if len(fileContent) == 0 {
		return Result{}, nil
	}

	sample := fileContent
	if len(sample) > utils.SniffLength {
		sample = sample[:utils.SniffLength]
	}
	classifiers := renderer.Classifiers
	if classifiers == nil {
		classifiers = DefaultClassifiers()
	}

	if Classify(relativePath, sample, classifiers) == ClassificationText {
		if writeError := renderer.renderText(relativePath, fileContent, out); writeError != nil {
			return Result{}, writeError
		}
		return Result{Emitted: true, SizeBytes: fileInformation.Size()}, nil
	}

	switch renderer.BinaryMode {
	case types.BinaryModeSkip, "":
		return Result{}, nil
	case types.BinaryModeHex:
		if writeError := renderer.renderEncoded(relativePath, hexAnnotation, encodeHex(fileContent), out); writeError != nil {
			return Result{}, writeError
		}
	case types.BinaryModeBase64:
		if writeError := renderer.renderEncoded(relativePath, base64Annotation, encodeBase64(fileContent), out); writeError != nil {
			return Result{}, writeError
		}
	default:
		return Result{}, fmt.Errorf(unsupportedBinaryModeError, renderer.BinaryMode)
	}
	return Result{Emitted: true, Binary: true, SizeBytes: fileInformation.Size()}, nil
}

// renderText emits optional markers around content subject to truncation.
// With markers enabled an unterminated final line gains a newline so the END
// marker sits on its own line; with markers disabled content round-trips its
// exact bytes.
func (renderer Renderer) renderText(relativePath string, fileContent []byte, out io.Writer) error {
	truncatedContent := truncate(fileContent, renderer.MaxBytes, renderer.MaxLines)
	if !renderer.Headers {
		_, writeError := out.Write(truncatedContent)
		return writeError
	}

	if _, writeError := fmt.Fprintf(out, "\n"+beginMarkerFormat, relativePath); writeError != nil {
		return writeError
	}
	if _, writeError := out.Write(truncatedContent); writeError != nil {
		return writeError
	}
	if len(truncatedContent) > 0 && truncatedContent[len(truncatedContent)-1] != '\n' {
		if _, writeError := io.WriteString(out, "\n"); writeError != nil {
			return writeError
		}
	}
	_, writeError := fmt.Fprintf(out, endMarkerFormat, relativePath)
	return writeError
}

// renderEncoded emits an encoded binary body between annotated markers.
func (renderer Renderer) renderEncoded(relativePath string, annotation string, encodedBody []byte, out io.Writer) error {
	if renderer.Headers {
		if _, writeError := fmt.Fprintf(out, "\n"+beginMarkerFormat, relativePath+annotation); writeError != nil {
			return writeError
		}
	}
	if _, writeError := out.Write(encodedBody); writeError != nil {
		return writeError
	}
	if renderer.Headers {
		if _, writeError := fmt.Fprintf(out, endMarkerFormat, relativePath+annotation); writeError != nil {
			return writeError
		}
	}
	return nil
}

// truncate returns the leading portion of content per the limit precedence: a
// positive byte limit wins over a positive line limit; neither set means full
// content.
func truncate(content []byte, maxBytes int64, maxLines int) []byte {
	if maxBytes > 0 {
		if int64(len(content)) <= maxBytes {
			return content
		}
		return content[:maxBytes]
	}
	if maxLines > 0 {
		remaining := content
		var consumed int
		for lineIndex := 0; lineIndex < maxLines; lineIndex++ {
			newlineIndex := bytes.IndexByte(remaining, '\n')
			if newlineIndex < 0 {
				// A final unterminated line still counts as a line.
				return content
			}
			consumed += newlineIndex + 1
			remaining = remaining[newlineIndex+1:]
		}
		return content[:consumed]
	}
	return content
}

// encodeHex renders raw bytes as lowercase hexadecimal wrapped at
// hexBytesPerLine bytes per line, with no byte-count or offset prefix.
func encodeHex(raw []byte) []byte {
	var encoded bytes.Buffer
	for offset := 0; offset < len(raw); offset += hexBytesPerLine {
		lineEnd := offset + hexBytesPerLine
		if lineEnd > len(raw) {
			lineEnd = len(raw)
		}
		encoded.WriteString(hex.EncodeToString(raw[offset:lineEnd]))
		encoded.WriteByte('\n')
	}
	return encoded.Bytes()
}

// encodeBase64 renders raw bytes as standard Base64 wrapped at the standard
// encoder's default column width.
func encodeBase64(raw []byte) []byte {
	encodedText := base64.StdEncoding.EncodeToString(raw)
	var wrapped bytes.Buffer
	for offset := 0; offset < len(encodedText); offset += base64LineWidth {
		lineEnd := offset + base64LineWidth
		if lineEnd > len(encodedText) {
			lineEnd = len(encodedText)
		}
		wrapped.WriteString(encodedText[offset:lineEnd])
		wrapped.WriteByte('\n')
	}
	return wrapped.Bytes()
}
