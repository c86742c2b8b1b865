// Package logging sets up logging for the binaries.
//
// The standard library slog logger is used as the backend and exposed as a
// logr.Logger for the libraries.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
)

// Options configures the logger behavior.
type Options struct {
	// Development selects human-readable text output instead of JSON.
	Development bool

	// Level sets the minimum log level. Debug also enables V(1) logr
	// messages.
	Level slog.Level

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultOptions returns the default logging options.
func DefaultOptions() Options {
	return Options{
		Level: slog.LevelInfo,
	}
}

// Setup installs the slog default logger and returns the same logger as a
// logr.Logger.
func Setup(opts Options) logr.Logger {
	out := opts.Output

	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler

	if opts.Development {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))

	return logr.FromSlogHandler(handler)
}
