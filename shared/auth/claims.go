package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set carried by access and refresh tokens. The
// account id travels in the registered subject claim.
type SessionClaims struct {
	Name  string `json:"name,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Principal identifies the authenticated caller of a request. A zero UID
// means the caller is not authenticated.
type Principal struct {
	UID   string
	Name  string
	Admin bool
}

// Authenticated reports whether the principal belongs to a signed-in account.
func (p Principal) Authenticated() bool {
	return p.UID != ""
}

// PrincipalFromClaims builds the request principal from verified token claims.
func PrincipalFromClaims(claims *SessionClaims) Principal {
	return Principal{
		UID:   claims.Subject,
		Name:  claims.Name,
		Admin: claims.Admin,
	}
}

type principalContextKey struct{}

// ContextWithPrincipal stores the caller principal in ctx.
func ContextWithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the caller principal stored by the
// authentication middleware, or a zero (unauthenticated) principal.
func PrincipalFromContext(ctx context.Context) Principal {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	if !ok {
		return Principal{}
	}

	return principal
}
