package contextkeys

// Custom key type avoids collisions with other packages' context values.
type contextKey string

// PrincipalContextKey stores the authenticated principal (internal/auth.Principal)
// in the request context so core logic never re-derives it from session state.
const PrincipalContextKey = contextKey("principal")
