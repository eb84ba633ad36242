package auth

import "context"

// Session identifies a signed-in user. It is owned by the authentication
// layer and referenced, never duplicated, by everything downstream.
type Session struct {
	UserID string
	Email  string
}

type ctxKey struct{}

// ContextWithSession stores a session in the context.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFromContext extracts the session from the context.
// The second return value is false when no user is signed in.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
