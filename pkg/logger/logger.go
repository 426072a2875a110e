package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/yanqian/desi-diet/internal/infra/config"
)

const serviceName = "desi-diet"

// New constructs the JSON slog logger shared by every component.
func New(cfg *config.Config) *slog.Logger {
	level := cfg.Log.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With("service", serviceName)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
