// Package utils provides the credential primitives of the service: password
// hashing and token mint/verify. Nothing here performs I/O.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token. Tokens are not
// persisted server-side and cannot be revoked before expiry.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is the single failure value for token verification. Bad
// signature, wrong algorithm, malformed input and expiry all collapse into
// it so that callers cannot leak why verification failed.
var ErrInvalidToken = errors.New("invalid token")

// NewToken signs an HS256 JWT whose subject is the given user id, expiring
// TokenTTL from now.
func NewToken(secret, subjectID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the subject user id.
func ParseToken(secret, raw string) (string, error) {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
