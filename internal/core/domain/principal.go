package domain

import "context"

// Principal is the verified identity carried by a request once the bearer
// token has been accepted.
type Principal struct {
	UserID string
	Role   Role
}

// IsAuthenticated reports whether p carries a usable identity.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != "" && p.Role.IsValid()
}

type principalKey struct{}

// ContextWithPrincipal returns a copy of ctx carrying p.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by ContextWithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
