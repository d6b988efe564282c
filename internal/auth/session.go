package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for expired, malformed, or tampered cookies.
var ErrInvalidSession = errors.New("auth: invalid session")

// sessionClaims wraps the disk token inside a signed session cookie so the
// browser never holds the raw credential.
type sessionClaims struct {
	DiskToken string `json:"dt"`
	jwt.RegisteredClaims
}

// IssueSession signs a session token embedding the disk token.
func IssueSession(secret []byte, diskToken string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		DiskToken: diskToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// ParseSession verifies a session token and returns the embedded disk token.
func ParseSession(secret []byte, token string) (string, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSession
	}
	if claims.DiskToken == "" {
		return "", ErrInvalidSession
	}
	return claims.DiskToken, nil
}
