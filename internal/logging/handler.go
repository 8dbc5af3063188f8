package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// SwappableHandler forwards to a handler that can be replaced at runtime.
// Handlers derived with WithAttrs or WithGroup keep following the root, so
// loggers built with .With before an Upgrade still reach the upgraded sinks.
type SwappableHandler struct {
	root *atomic.Pointer[slog.Handler]

	// derive rebuilds this handler's attrs and groups on top of a root handler.
	// It is nil for the root itself.
	derive func(slog.Handler) slog.Handler

	cache atomic.Pointer[derived]
}

// derived memoizes derive(base) for one root generation.
type derived struct {
	base    *slog.Handler
	handler slog.Handler
}

// NewSwappableHandler creates a handler with an initial handler.
func NewSwappableHandler(initial slog.Handler) *SwappableHandler {
	root := &atomic.Pointer[slog.Handler]{}
	root.Store(&initial)
	return &SwappableHandler{root: root}
}

// Swap atomically replaces the root handler for this handler and every
// handler derived from it.
func (sh *SwappableHandler) Swap(newHandler slog.Handler) {
	sh.root.Store(&newHandler)
}

// current returns the handler to forward to.
func (sh *SwappableHandler) current() slog.Handler {
	base := sh.root.Load()
	if sh.derive == nil {
		return *base
	}
	if c := sh.cache.Load(); c != nil && c.base == base {
		return c.handler
	}
	h := sh.derive(*base)
	sh.cache.Store(&derived{base: base, handler: h})
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (sh *SwappableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return sh.current().Enabled(ctx, level)
}

// Handle handles the Record.
func (sh *SwappableHandler) Handle(ctx context.Context, r slog.Record) error {
	return sh.current().Handle(ctx, r)
}

// WithAttrs returns a handler that adds attrs on top of whatever the root is.
func (sh *SwappableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return sh.chain(func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})
}

// WithGroup returns a handler that opens group on top of whatever the root is.
func (sh *SwappableHandler) WithGroup(name string) slog.Handler {
	return sh.chain(func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})
}

func (sh *SwappableHandler) chain(step func(slog.Handler) slog.Handler) *SwappableHandler {
	parent := sh.derive
	derive := step
	if parent != nil {
		derive = func(h slog.Handler) slog.Handler {
			return step(parent(h))
		}
	}
	return &SwappableHandler{root: sh.root, derive: derive}
}
