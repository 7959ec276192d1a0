package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceHandler adds the call site to records at or above min. The wrapped
// handler must have AddSource disabled.
type sourceHandler struct {
	next slog.Handler
	min  slog.Leveler
}

func withSource(next slog.Handler, min slog.Leveler) slog.Handler {
	return &sourceHandler{next: next, min: min}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.PC != 0 && r.Level >= h.min.Level() {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		r = r.Clone()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		}))
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{next: h.next.WithAttrs(attrs), min: h.min}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{next: h.next.WithGroup(name), min: h.min}
}
