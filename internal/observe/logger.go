package observe

import (
	"io"
	"log/slog"

	"github.com/martinblech/rtaudio/internal/config"
)

// NewLogger returns a text logger writing to w at the given level. Unknown
// levels fall back to info.
func NewLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
