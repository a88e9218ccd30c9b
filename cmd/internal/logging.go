package internal

import (
	"io"
	"log/slog"
)

// SetupLogging installs a text logger on w as the slog default. Debug records are only emitted when verbose is set.
func SetupLogging(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
