package ports

import (
	"context"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	// FindByUser returns every order owned by userID, oldest first.
	FindByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// FindByIdempotencyKey returns the order userID created with key, or domain.ErrOrderNotFound.
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)
}
