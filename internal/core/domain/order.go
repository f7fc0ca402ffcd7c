package domain

import (
	"errors"
	"time"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderExists     = errors.New("order with this idempotency key already exists")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// LineItem references a product by id. The product is not required to exist.
type LineItem struct {
	ProductID string
	Quantity  int
}

// Order is owned by a user and never changes status through the API.
type Order struct {
	ID             string
	UserID         string
	Items          []LineItem
	Status         OrderStatus
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
