// Package logutil provides a Trace log level below slog's Debug, used by
// the learners to record per-merge and per-vote decisions without
// cluttering ordinary -v output.
package logutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace slog.Level = -8

// NewLogger returns a text-handler logger whose output labels LevelTrace
// records "TRACE" and trims source file paths to their base name.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				if lvl, ok := attr.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	}))
}

type skipKey string

// Trace logs msg at LevelTrace against slog.Default(), a no-op unless the
// default logger has been configured to accept it.
func Trace(msg string, args ...any) {
	TraceContext(context.WithValue(context.Background(), skipKey("skip"), 1), msg, args...)
}

// TraceContext is Trace with an explicit context, so callers in request
// or learn-session scope can thread deadlines/cancellation through.
func TraceContext(ctx context.Context, msg string, args ...any) {
	logger := slog.Default()
	if !logger.Enabled(ctx, LevelTrace) {
		return
	}

	skip, _ := ctx.Value(skipKey("skip")).(int)
	pc, _, _, _ := runtime.Caller(1 + skip)
	record := slog.NewRecord(time.Now(), LevelTrace, msg, pc)
	record.Add(args...)
	_ = logger.Handler().Handle(ctx, record)
}
