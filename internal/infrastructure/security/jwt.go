package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

// tokenClaims is the payload of an access token.
type tokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 access tokens. Verification depends
// only on the token, the secret and the clock.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// JWTOption customises a JWTManager.
type JWTOption func(*JWTManager)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) JWTOption {
	return func(m *JWTManager) { m.now = now }
}

// NewJWTManager returns a manager signing with secret. A non-positive ttl
// falls back to DefaultTokenTTL.
func NewJWTManager(secret string, ttl time.Duration, opts ...JWTOption) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs a token asserting userID and role.
func (m *JWTManager) Issue(userID string, role domain.Role) (string, error) {
	now := m.now()
	claims := tokenClaims{
		ID:   userID,
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and returns the principal it asserts. Every failure
// wraps domain.ErrInvalidToken.
func (m *JWTManager) Verify(token string) (domain.Principal, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, fmt.Errorf("%w: expired", domain.ErrInvalidToken)
		}
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok || claims.ID == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing identity claims", domain.ErrInvalidToken)
	}

	return domain.Principal{UserID: claims.ID, Role: role}, nil
}
