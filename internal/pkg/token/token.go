// Package token issues and verifies the HS256 session tokens handed out at login.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

// Claims is the token payload.
type Claims struct {
	UserID string `json:"userId"`
	jwtlib.RegisteredClaims
}

// Codec signs and verifies tokens with a process-wide secret.
// A zero ttl issues tokens without an expiry.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec bound to secret.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for userID.
func (c *Codec) Issue(userID string) (string, error) {
	now := c.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt: jwtlib.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwtlib.NewNumericDate(now.Add(c.ttl))
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry of raw and returns the user id it carries.
// Every failure wraps domain.ErrInvalidToken.
func (c *Codec) Verify(raw string) (string, error) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(raw, claims, func(*jwtlib.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", classify(err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return "", domain.ErrMalformedToken
	}
	return claims.UserID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return domain.ErrBadSignature
	case errors.Is(err, jwtlib.ErrTokenMalformed), errors.Is(err, jwtlib.ErrTokenUnverifiable):
		return domain.ErrMalformedToken
	default:
		return domain.ErrInvalidToken
	}
}
