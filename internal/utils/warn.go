package utils

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// warningPrefix labels every warning line.
const warningPrefix = "Warning:"

// WarningPrinter writes warning lines to a destination writer. The prefix is
// colored when the destination is an interactive terminal. The printer is safe
// for concurrent use so parallel render workers can warn without interleaving.
type WarningPrinter struct {
	destination io.Writer
	prefix      string
	mutex       sync.Mutex
}

// NewWarningPrinter constructs a WarningPrinter for the provided writer.
func NewWarningPrinter(destination io.Writer) *WarningPrinter {
	prefix := warningPrefix
	if fileHandle, isFile := destination.(*os.File); isFile && isatty.IsTerminal(fileHandle.Fd()) {
		prefix = color.New(color.FgYellow).Sprint(warningPrefix)
	}
	return &WarningPrinter{destination: destination, prefix: prefix}
}

// Warnf formats and writes a single warning line.
func (printer *WarningPrinter) Warnf(format string, arguments ...any) {
	printer.mutex.Lock()
	defer printer.mutex.Unlock()
	fmt.Fprintf(printer.destination, "%s %s\n", printer.prefix, fmt.Sprintf(format, arguments...))
}
