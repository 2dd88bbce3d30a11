// Package auth issues and verifies the signed session tokens used by the
// HTTP layer. Tokens are stateless HS256 JWTs carrying the username and the
// admin flag; there is no server-side session table.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every way a presented token can fail verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what a verified token resolves to.
type Identity struct {
	Username string
	IsAdmin  bool
}

// Claims is the JWT payload.
type Claims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a token service. Tokens expire after ttl.
func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given identity.
func (s *Service) Issue(id Identity) (string, error) {
	now := s.now()
	claims := Claims{
		IsAdmin: id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a token string and returns the identity it encodes.
func (s *Service) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Username: claims.Subject, IsAdmin: claims.IsAdmin}, nil
}
