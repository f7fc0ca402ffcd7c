package ports

import (
	"context"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenCodec issues and verifies session tokens.
type TokenCodec interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthService defines registration, login and token resolution.
type AuthService interface {
	Authenticator
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
