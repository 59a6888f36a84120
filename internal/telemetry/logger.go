package telemetry

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a JSON logger tagged with the service name and installs it
// as the slog default.
func NewLogger(service string) *slog.Logger {
	return newLogger(os.Stdout, service)
}

func newLogger(w io.Writer, service string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := slog.New(h).With("service", service)
	slog.SetDefault(l)
	return l
}
