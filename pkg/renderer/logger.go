package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a logger on stderr, leaving stdout free for image output
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stderr}
}

// NewWriterLogger creates a logger that writes to out
func NewWriterLogger(out io.Writer) core.Logger {
	return &DefaultLogger{out: out}
}

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() core.Logger {
	return nopLogger{}
}
