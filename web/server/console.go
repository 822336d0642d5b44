package server

import (
	"fmt"
	"io"
	"time"

	"github.com/df07/go-column-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// RenderLogger implements core.Logger for a single render request. Every
// message goes to the server output prefixed with the render ID and, when
// there is room, to the console channel.
type RenderLogger struct {
	renderID    string
	out         io.Writer
	consoleChan chan<- ConsoleMessage
}

// NewRenderLogger creates a logger for one render
func NewRenderLogger(renderID string, out io.Writer, consoleChan chan<- ConsoleMessage) core.Logger {
	return &RenderLogger{
		renderID:    renderID,
		out:         out,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (rl *RenderLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if rl.out != nil {
		fmt.Fprintf(rl.out, "[%s] %s", rl.renderID, message)
	}

	// Never block a render on a slow console reader
	if rl.consoleChan != nil {
		select {
		case rl.consoleChan <- ConsoleMessage{
			RenderID:  rl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
		}
	}
}
