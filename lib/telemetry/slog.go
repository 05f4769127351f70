package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default logger. logs go to stderr so
// commands that stream their output to stdout stay clean.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
