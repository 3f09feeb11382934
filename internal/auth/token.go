package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are collapsed into three sentinel errors so callers
// can branch without depending on the jwt library's error surface.
var (
	// ErrTokenExpired means the token was valid but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidSignature means the payload does not match its signature.
	ErrInvalidSignature = errors.New("token signature invalid")

	// ErrTokenMalformed means the token cannot be decoded at all.
	ErrTokenMalformed = errors.New("token malformed")
)

// Identity is the subset of a user record that gets embedded in a token.
// It is only ever built from a record that already passed credential
// verification -- never from client input.
type Identity struct {
	ID     string
	Name   string
	Avatar string
}

// Claims is the JWT payload: the identity fields plus the registered
// iat/exp timestamps.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// TokenManager signs and verifies bearer tokens with a process-wide HMAC
// secret. The secret is injected at construction so tests can use distinct
// secrets; it must stay constant across a token's validity window or every
// outstanding token becomes unverifiable.
type TokenManager struct {
	secretKey []byte
}

// NewTokenManager creates a token manager signing with the given secret.
func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey)}
}

// Issue signs the identity into a compact HS256 token valid for ttl,
// stamping issuedAt = now and expiresAt = now + ttl.
func (m *TokenManager) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: identity.ID,
		Name:   identity.Name,
		Avatar: identity.Avatar,
	})

	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify decodes and validates a presented token, returning its claims.
// Claims are never trusted before the signature checks out: a token whose
// payload was modified in any way fails with ErrInvalidSignature, an
// expired one with ErrTokenExpired, and anything undecodable with
// ErrTokenMalformed.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Pin the algorithm. Accepting whatever the token header names
		// would let an attacker downgrade to "none" or swap in a public
		// key as an HMAC secret.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, ErrTokenMalformed
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
