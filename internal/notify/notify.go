package notify

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Terminal surfaces transient user-facing messages on the terminal, the CLI
// analog of the web client's toast notifications. Every message is also
// mirrored to the structured log.
type Terminal struct {
	Out    io.Writer
	Logger *slog.Logger
}

// NewTerminal constructs a Terminal notifier writing to stderr.
func NewTerminal(logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminal{Out: os.Stderr, Logger: logger}
}

// Success reports a completed action.
func (t *Terminal) Success(title, detail string) {
	t.Logger.Info("notification", "title", title, "detail", detail)
	fmt.Fprintf(t.out(), "ok: %s: %s\n", title, detail)
}

// Error reports a failed action.
func (t *Terminal) Error(title, detail string) {
	t.Logger.Warn("notification", "title", title, "detail", detail)
	fmt.Fprintf(t.out(), "error: %s: %s\n", title, detail)
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stderr
}
