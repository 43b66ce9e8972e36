package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/topicmapgo/internal/config"
)

// newLogger creates a slog.Logger for cfg writing to w. It does not set the
// global logger, allowing for isolated logger instances.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel maps a configured level name to a slog.Level. Unknown names
// fall back to info; Validate rejects them before we get here.
func parseLevel(level string) slog.Level {
	switch level {
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
