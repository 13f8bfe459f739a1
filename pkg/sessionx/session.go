// Package sessionx mints and verifies the signed admin session token that
// lives in a browser cookie. The session carries no server-side state: a
// token is a short-lived HS256 JWT whose presence and validity is the
// entire "logged in" flag.
package sessionx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken reports a token that is missing, malformed, signed
	// with the wrong key, or expired.
	ErrInvalidToken = errors.New("sessionx: invalid session token")
)

// Manager issues and verifies session tokens with a single symmetric key.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager builds a Manager. An empty secret gets a random one generated
// at construction, which invalidates outstanding sessions on restart but
// never runs unsigned.
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &Manager{secret: key, issuer: issuer, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue mints a signed session token valid for the configured TTL.
func (m *Manager) Issue() (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sessionx: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer, and expiry of a session token.
func (m *Manager) Verify(raw string) error {
	if raw == "" {
		return ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// RandomSecret returns a fresh base64 secret suitable for SESSION_SECRET.
func RandomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
