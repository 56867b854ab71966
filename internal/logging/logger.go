package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default logger: JSON to stdout at the LOG_LEVEL
// threshold, fanned out to any extra handlers (such as the database batch
// handler once the connection exists).
func Setup(extra ...slog.Handler) {
	handlers := append([]slog.Handler{
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv()}),
	}, extra...)
	slog.SetDefault(slog.New(NewMultiHandler(handlers...)))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
