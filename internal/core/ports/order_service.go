package ports

import (
	"context"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

// LineItemInput is a single requested product and quantity.
type LineItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	UserID         string
	Items          []LineItemInput
	IdempotencyKey string
}

// OrderResult is returned after placing an order.
type OrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the Idempotency-Key matched an earlier order.
	AlreadyExisted bool
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error)
	ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error)
}
