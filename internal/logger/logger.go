package logger

import (
	"context"
	"log/slog"
	"os"
)

// redaction replaces the values of masked attributes.
const redaction = "***"

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance with the specified level. Values of
// attributes named in redacted are masked on every record so secrets
// never reach the log output.
func New(level int, redacted ...string) *Logger {
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})
	if len(redacted) > 0 {
		handler = newRedactingHandler(handler, redacted)
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}

// redactingHandler masks the values of configured attribute keys before
// delegating to the wrapped handler.
type redactingHandler struct {
	slog.Handler
	keys map[string]bool
}

func newRedactingHandler(next slog.Handler, redacted []string) *redactingHandler {
	keys := make(map[string]bool, len(redacted))
	for _, key := range redacted {
		keys[key] = true
	}
	return &redactingHandler{Handler: next, keys: keys}
}

func (h *redactingHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clean.AddAttrs(h.redact(attr))
		return true
	})
	return h.Handler.Handle(ctx, clean)
}

func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		masked[i] = h.redact(attr)
	}
	return &redactingHandler{Handler: h.Handler.WithAttrs(masked), keys: h.keys}
}

func (h *redactingHandler) WithGroup(name string) slog.Handler {
	return &redactingHandler{Handler: h.Handler.WithGroup(name), keys: h.keys}
}

func (h *redactingHandler) redact(attr slog.Attr) slog.Attr {
	if h.keys[attr.Key] {
		attr.Value = slog.StringValue(redaction)
	}
	return attr
}
