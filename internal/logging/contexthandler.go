package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns attributes that change while the recorder runs,
// such as the match name and score.
type ContextProvider func() []slog.Attr

// ContextHandler stamps every record with the provider's current attributes.
// Empty string values are dropped, and a key already bound with WithAttrs is
// not repeated.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
	bound    map[string]struct{}
}

func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{
		inner:    inner,
		provider: provider,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		for _, a := range h.provider() {
			if _, ok := h.bound[a.Key]; ok {
				continue
			}
			if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
				continue
			}
			r.AddAttrs(a)
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make(map[string]struct{}, len(h.bound)+len(attrs))
	for k := range h.bound {
		bound[k] = struct{}{}
	}
	for _, a := range attrs {
		bound[a.Key] = struct{}{}
	}
	return &ContextHandler{
		inner:    h.inner.WithAttrs(attrs),
		provider: h.provider,
		bound:    bound,
	}
}

// WithGroup nests later attributes; the provider's attributes follow the
// group like any other record attribute.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{
		inner:    h.inner.WithGroup(name),
		provider: h.provider,
		bound:    h.bound,
	}
}
