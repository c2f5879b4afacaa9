package token

import (
	"errors"
	"time"

	"campus-shop/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, or expired token. Callers never learn which.
var ErrInvalidToken = errors.New("invalid or expired token")

// Manager issues and verifies signed access tokens. The signing key and
// default TTL come from config, loaded once at startup.
type Manager struct {
	secret []byte
	expiry time.Duration
}

func NewManager(config utils.JWTConfig) *Manager {
	return &Manager{
		secret: []byte(config.Secret),
		expiry: time.Duration(config.ExpiryMinutes) * time.Minute,
	}
}

// Expiry returns the configured token lifetime.
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// Issue creates a signed token with the user ID as subject and an
// absolute expiry. A non-positive ttl falls back to the configured one.
func (m *Manager) Issue(subject uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = m.expiry
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token string, returning the subject user ID.
func (m *Manager) Verify(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(tok *jwt.Token) (interface{}, error) {
			if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return m.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return subject, nil
}
