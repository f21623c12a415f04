package auth

import (
	"context"

	"websewa_backend/pkg/contextkeys"
)

// Principal is the authenticated caller as seen by core logic: an id plus
// an admin flag. Services take it as an argument so they are testable
// without any session machinery.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

// WithPrincipal stores the principal in a request context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextkeys.PrincipalContextKey, p)
}

// PrincipalFromContext extracts the principal, reporting whether one is set.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextkeys.PrincipalContextKey).(Principal)
	return p, ok
}
