package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid id")
)

// Product is a catalogue entry. Price and Stock are never negative.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Stock       *int
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil && p.Category == nil && p.Stock == nil
}
