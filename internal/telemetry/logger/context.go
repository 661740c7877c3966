package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	loggerKey contextKey = "proxystore.logger"
	tabIDKey  contextKey = "proxystore.tab_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithTabID adds the tab id to the context.
func WithTabID(ctx context.Context, tabID string) context.Context {
	return context.WithValue(ctx, tabIDKey, tabID)
}

// TabIDFromContext extracts the tab id from context.
func TabIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(tabIDKey).(string); ok {
		return id
	}
	return ""
}

// L is a shorthand for FromContext that also adds the tab id. Entries are
// logged with ctx.
func L(ctx context.Context) Logger {
	l := FromContext(ctx).WithContext(ctx)
	if tabID := TabIDFromContext(ctx); tabID != "" {
		l = l.With("tab_id", tabID)
	}
	return l
}
