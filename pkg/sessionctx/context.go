// Package sessionctx tags a completion request with the conversation it
// belongs to. engine.Turn.Run attaches the ID before calling the completer,
// and the completer middleware reads it back to label log lines, so the
// modeladapter layer never has to import pkg/engine.
package sessionctx

import "context"

type sessionIDCtxKey struct{}

// WithSessionID returns ctx tagged with the conversation ID. An empty id
// leaves ctx unchanged.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDCtxKey{}, id)
}

// SessionIDFromContext returns the conversation ID carried by ctx, or "" for
// completer calls made outside a session.
func SessionIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDCtxKey{}).(string)
	return v
}
