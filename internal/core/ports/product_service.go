package ports

import (
	"context"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

// CreateProductInput carries the fields of a new product.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int
}

// ListProductsInput carries 1-based page parameters. Zero values select defaults.
type ListProductsInput struct {
	Page  int
	Limit int
}

// ProductService defines use-case operations for the catalogue.
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
