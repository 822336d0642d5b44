package core

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLogger implements Logger by writing to an io.Writer.
// Integers are printed with digit grouping ("360,000 pixels").
type DefaultLogger struct {
	out     io.Writer
	printer *message.Printer
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) Logger {
	return &DefaultLogger{
		out:     w,
		printer: message.NewPrinter(language.English),
	}
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.printer.Fprintf(dl.out, format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
