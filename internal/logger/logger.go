package logger

import (
	"log/slog"
	"os"
)

// New creates a preconfigured slog.Logger. Every entry is stamped with
// the service name so engine logs are filterable in shared pipelines.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "fulfillment"))
}
