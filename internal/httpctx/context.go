// Package httpctx holds request-context keys shared between the server's
// auth middleware and the handler package, kept separate from both so
// neither has to import the other just to read the authenticated player.
package httpctx

import "context"

type contextKey string

const playerIDKey contextKey = "player_id"

// WithPlayerID stores the authenticated player id on the context.
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, playerIDKey, playerID)
}

// PlayerID returns the authenticated player id stored by the auth
// middleware, if any.
func PlayerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(playerIDKey).(string)
	return id, ok
}
