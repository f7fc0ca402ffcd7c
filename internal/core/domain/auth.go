package domain

import (
	"errors"
	"fmt"
)

// Reasons an authenticated request can be rejected. Clients always see a
// plain 401; the variants exist for logs and metrics.
var (
	ErrMissingAuthHeader   = errors.New("missing authorization header")
	ErrMalformedAuthHeader = errors.New("malformed authorization header")

	ErrInvalidToken   = errors.New("invalid token")
	ErrBadSignature   = fmt.Errorf("%w: bad signature", ErrInvalidToken)
	ErrMalformedToken = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// AuthFailureReason returns a short, stable label for an authentication error.
func AuthFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingAuthHeader):
		return "missing_header"
	case errors.Is(err, ErrMalformedAuthHeader):
		return "malformed_header"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrTokenExpired):
		return "expired_token"
	case errors.Is(err, ErrMalformedToken), errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	default:
		return "lookup_failed"
	}
}
