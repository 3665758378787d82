package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init sets up the process-wide JSON logger. Call once at startup before
// anything logs.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler).With("service", "portfolio-api")
}
