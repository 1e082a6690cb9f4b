package jwt

import (
	"context"
	"fmt"
	"time"
)

// Strategy defines which signing algorithm family to use.
type Strategy string

const (
	StrategyHMAC Strategy = "hmac"
)

// Options configures the token manager.
type Options struct {
	// Strategy selects the signing algorithm family.
	Strategy Strategy

	// Secret is the shared key for HMAC-based strategies.
	// Must be at least 32 bytes. Required when Strategy is StrategyHMAC.
	Secret []byte

	// Algorithm specifies the exact signing algorithm within the strategy.
	// HMAC: "HS256" (default), "HS384", "HS512".
	Algorithm string

	// Issuer sets the default "iss" claim on generated tokens.
	Issuer string

	// TTL is the token time-to-live. Determines the "exp" claim.
	// Zero means tokens do not expire (not recommended for production).
	TTL time.Duration
}

// Claims carries the registered JWT claims plus the service's role claim.
// This type is library-agnostic; the underlying JWT library is an
// implementation detail.
type Claims struct {
	// Subject identifies the principal (user ID).
	Subject string

	// Role is the principal's role ("seller", "admin"), carried as a
	// private "role" claim. The admin middleware gates on it.
	Role string

	// Issuer identifies who issued the token.
	// Defaults to Options.Issuer if empty during signing.
	Issuer string

	// ExpiresAt defaults to time.Now() + Options.TTL during signing.
	ExpiresAt time.Time

	// IssuedAt defaults to time.Now() during signing.
	IssuedAt time.Time

	// ID is the unique token identifier (jti claim), optional.
	ID string
}

// Signer creates signed JWT tokens.
// Implementations must be safe for concurrent use.
type Signer interface {
	Sign(ctx context.Context, claims Claims) (string, error)
}

// Verifier validates and parses JWT tokens.
// Implementations must be safe for concurrent use.
type Verifier interface {
	// Verify parses and validates the token string. Returns the claims on
	// success, or an error if the token is invalid, expired, or its
	// signature does not match.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// TokenManager combines signing and verification capabilities.
type TokenManager interface {
	Signer
	Verifier
}

// New creates a TokenManager based on the provided options.
func New(opts Options) (TokenManager, error) {
	switch opts.Strategy {
	case StrategyHMAC:
		return NewHMAC(opts)
	default:
		return nil, fmt.Errorf("jwt: unknown strategy %q", opts.Strategy)
	}
}
