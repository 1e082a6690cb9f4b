package jwt

import "context"

type contextKey struct{}

// SetClaims returns a new context with the given claims attached.
// Used by the authentication middleware after a successful Verify.
func SetClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// GetClaims extracts the claims from the context.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}
