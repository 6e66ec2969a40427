package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLoggerTo builds the same logger as sharedobs.NewLogger but writes to w.
// It also becomes the slog default. The render command needs it because
// stdout carries the page.
func NewLoggerTo(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: resolveLevel(level, format)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// resolveLevel returns the minimum level sharedobs.NewLogger enables for
// level, so both loggers accept the same LOG_LEVEL values.
func resolveLevel(level, format string) slog.Level {
	ref := sharedobs.NewLogger(level, format)
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if ref.Enabled(context.Background(), l) {
			return l
		}
	}
	return slog.LevelError
}
