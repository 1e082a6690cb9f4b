package jwt

import (
	"context"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var _ TokenManager = (*hmacManager)(nil)

type hmacManager struct {
	secret []byte
	method jwtlib.SigningMethod
	issuer string
	ttl    time.Duration
}

// roleClaims extends the registered claims with the service's role claim.
type roleClaims struct {
	jwtlib.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// NewHMAC creates an HMAC-based TokenManager.
// Secret must be at least 32 bytes.
// Algorithm defaults to "HS256" if empty. Supported: "HS256", "HS384", "HS512".
func NewHMAC(opts Options) (TokenManager, error) {
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("jwt: HMAC secret must not be empty")
	}
	if len(opts.Secret) < 32 {
		return nil, fmt.Errorf("jwt: HMAC secret must be at least 32 bytes, got %d", len(opts.Secret))
	}

	method, err := resolveHMACMethod(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	return &hmacManager{
		secret: opts.Secret,
		method: method,
		issuer: opts.Issuer,
		ttl:    opts.TTL,
	}, nil
}

func resolveHMACMethod(alg string) (jwtlib.SigningMethod, error) {
	switch alg {
	case "", "HS256":
		return jwtlib.SigningMethodHS256, nil
	case "HS384":
		return jwtlib.SigningMethodHS384, nil
	case "HS512":
		return jwtlib.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("jwt: unsupported HMAC algorithm %q", alg)
	}
}

func (m *hmacManager) Sign(_ context.Context, claims Claims) (string, error) {
	now := time.Now()

	payload := roleClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject: claims.Subject,
			ID:      claims.ID,
		},
		Role: claims.Role,
	}

	// Apply defaults from Options, allow per-call overrides.
	if claims.Issuer != "" {
		payload.Issuer = claims.Issuer
	} else {
		payload.Issuer = m.issuer
	}

	if !claims.IssuedAt.IsZero() {
		payload.IssuedAt = jwtlib.NewNumericDate(claims.IssuedAt)
	} else {
		payload.IssuedAt = jwtlib.NewNumericDate(now)
	}

	if !claims.ExpiresAt.IsZero() {
		payload.ExpiresAt = jwtlib.NewNumericDate(claims.ExpiresAt)
	} else if m.ttl > 0 {
		payload.ExpiresAt = jwtlib.NewNumericDate(now.Add(m.ttl))
	}

	token := jwtlib.NewWithClaims(m.method, payload)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *hmacManager) Verify(_ context.Context, tokenString string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(
		tokenString,
		&roleClaims{},
		func(token *jwtlib.Token) (any, error) {
			if token.Method.Alg() != m.method.Alg() {
				return nil, fmt.Errorf("jwt: unexpected signing method %q", token.Method.Alg())
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("jwt: token validation failed: %w", err)
	}

	payload, ok := token.Claims.(*roleClaims)
	if !ok {
		return nil, fmt.Errorf("jwt: unexpected claims type")
	}

	claims := &Claims{
		Subject: payload.Subject,
		Role:    payload.Role,
		Issuer:  payload.Issuer,
		ID:      payload.ID,
	}
	if payload.ExpiresAt != nil {
		claims.ExpiresAt = payload.ExpiresAt.Time
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}

	return claims, nil
}
