package ports

import (
	"context"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// List returns at most limit products after skipping skip, in insertion order.
	List(ctx context.Context, skip, limit int) ([]*domain.Product, error)
	// Update applies patch and returns the updated product.
	// Returns domain.ErrProductNotFound when no product has the id.
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	// Delete removes the product. Returns domain.ErrProductNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
