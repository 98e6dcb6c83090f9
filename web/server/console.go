package server

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderLogger tags every message with the render it belongs to
type RenderLogger struct {
	renderID string
	out      core.Logger
}

// NewRenderLogger creates a logger for a specific render that forwards to out
func NewRenderLogger(renderID string, out core.Logger) core.Logger {
	return &RenderLogger{renderID: renderID, out: out}
}

// Printf implements core.Logger interface
func (rl *RenderLogger) Printf(format string, args ...interface{}) {
	rl.out.Printf("[%s] %s", rl.renderID, fmt.Sprintf(format, args...))
}
