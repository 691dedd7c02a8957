// Package render classifies surviving files as text-like or binary and
// serializes their content with optional markers, truncation, and binary
// encoding modes.
package render

import (
	"path"
	"strings"

	"github.com/temirov/dirsnap/internal/utils"
)

// Classification is the verdict of a content classifier.
type Classification int

const (
	// ClassificationText marks content safe to emit as raw text.
	ClassificationText Classification = iota
	// ClassificationBinary marks content that must go through a binary mode.
	ClassificationBinary
)

// Classifier inspects a path and a leading content sample and either returns
// a verdict or declines. Classifiers run as an ordered chain; the first
// verdict wins. The chain is pluggable so tests can inject fixed classifiers.
type Classifier interface {
	Classify(relativePath string, sample []byte) (Classification, bool)
}

// DefaultClassifiers returns the production chain: MIME sniffing first, the
// extension allow-list next, and the NUL-byte heuristic as the last resort.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		MimeClassifier{},
		ExtensionClassifier{},
		HeuristicClassifier{},
	}
}

// Classify runs the chain and returns the first verdict. An empty chain, or a
// chain where every classifier declines, defaults to binary: emitting unknown
// bytes as text is the riskier failure.
func Classify(relativePath string, sample []byte, classifiers []Classifier) Classification {
	for _, classifier := range classifiers {
		if verdict, decided := classifier.Classify(relativePath, sample); decided {
			return verdict
		}
	}
	return ClassificationBinary
}

// textualMimeTypes lists the structured formats accepted as text beyond the
// text/* family. The empty-file placeholder type
// produced by sniffing zero bytes is text/plain and needs no entry.
var textualMimeTypes = map[string]struct{}{
	"application/json":         {},
	"application/xml":          {},
	"text/xml":                 {},
	"application/javascript":   {},
	"image/svg+xml":            {},
	"application/x-javascript": {},
}

// MimeClassifier sniffs the content sample with the standard library's MIME
// detector. Any text/* type and a small allow-list of textual structured
// formats classify as text; every other sniffed type, including the
// application/octet-stream fallback the detector reports for content with NUL
// bytes, classifies as binary. Files with NUL bytes in their sample therefore
// classify as binary regardless of extension.
type MimeClassifier struct{}

// Classify always reaches a verdict: the sniffing algorithm never fails.
func (MimeClassifier) Classify(relativePath string, sample []byte) (Classification, bool) {
	mimeType := utils.DetectMimeType(sample)
	if semicolonIndex := strings.IndexByte(mimeType, ';'); semicolonIndex >= 0 {
		mimeType = strings.TrimSpace(mimeType[:semicolonIndex])
	}
	if strings.HasPrefix(mimeType, "text/") {
		return ClassificationText, true
	}
	if _, isTextual := textualMimeTypes[mimeType]; isTextual {
		return ClassificationText, true
	}
	return ClassificationBinary, true
}

// textExtensions is the filename-extension allow-list covering common source,
// text, and configuration files. Used when MIME sniffing is not in the chain.
var textExtensions = map[string]struct{}{
	".txt": {}, ".md": {}, ".markdown": {}, ".rst": {}, ".adoc": {},
	".go": {}, ".py": {}, ".rb": {}, ".rs": {}, ".c": {}, ".h": {},
	".cc": {}, ".cpp": {}, ".hpp": {}, ".java": {}, ".kt": {}, ".swift": {},
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".mjs": {}, ".cjs": {},
	".json": {}, ".yaml": {}, ".yml": {}, ".toml": {}, ".ini": {}, ".cfg": {},
	".xml": {}, ".html": {}, ".htm": {}, ".css": {}, ".scss": {}, ".less": {},
	".sh": {}, ".bash": {}, ".zsh": {}, ".fish": {}, ".ps1": {}, ".bat": {},
	".sql": {}, ".graphql": {}, ".proto": {}, ".tf": {}, ".hcl": {},
	".csv": {}, ".tsv": {}, ".env": {}, ".gitignore": {}, ".dockerignore": {},
	".mod": {}, ".sum": {}, ".lock": {}, ".svg": {}, ".vue": {}, ".svelte": {},
}

// ExtensionClassifier reaches a text verdict for allow-listed extensions and
// declines otherwise, leaving the decision to the next classifier.
type ExtensionClassifier struct{}

// Classify matches against the lower-cased extension of the path basename.
func (ExtensionClassifier) Classify(relativePath string, sample []byte) (Classification, bool) {
	extension := strings.ToLower(path.Ext(relativePath))
	if _, isText := textExtensions[extension]; isText {
		return ClassificationText, true
	}
	return ClassificationBinary, false
}

// HeuristicClassifier inspects the leading sample for a NUL byte: presence
// implies binary, absence implies text. A heuristic, not a guarantee — it
// always reaches a verdict, so it terminates any chain it appears in.
type HeuristicClassifier struct{}

// Classify applies the NUL-byte rule to the sample.
func (HeuristicClassifier) Classify(relativePath string, sample []byte) (Classification, bool) {
	if utils.ContainsNullByte(sample) {
		return ClassificationBinary, true
	}
	return ClassificationText, true
}
