package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler fans records out to several handlers, typically the
// console and the sqlite sink. Each destination applies its own level
// filtering.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, dest := range h.handlers {
		if dest.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, dest := range h.handlers {
		if !dest.Enabled(ctx, r.Level) {
			continue
		}
		if err := dest.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return &MultiHandler{handlers: wrapAll(h.handlers, func(dest slog.Handler) slog.Handler {
		return dest.WithAttrs(attrs)
	})}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &MultiHandler{handlers: wrapAll(h.handlers, func(dest slog.Handler) slog.Handler {
		return dest.WithGroup(name)
	})}
}

func wrapAll(handlers []slog.Handler, wrap func(slog.Handler) slog.Handler) []slog.Handler {
	wrapped := make([]slog.Handler, len(handlers))
	for i, dest := range handlers {
		wrapped[i] = wrap(dest)
	}
	return wrapped
}
