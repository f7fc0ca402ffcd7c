package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
	"github.com/sirpyerre/storefront-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	items     []*domain.Product // insertion order
	lastSkip  int
	lastLimit int
	createErr error
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *p
	clone.ID = fmt.Sprintf("p%02d", len(r.items)+1)
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubProductRepo) List(_ context.Context, skip, limit int) ([]*domain.Product, error) {
	r.lastSkip, r.lastLimit = skip, limit
	if skip >= len(r.items) {
		return []*domain.Product{}, nil
	}
	end := skip + limit
	if end > len(r.items) {
		end = len(r.items)
	}
	out := make([]*domain.Product, 0, end-skip)
	for _, p := range r.items[skip:end] {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) find(id string) *domain.Product {
	for _, p := range r.items {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p := r.find(id)
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestProductService_CreateThenFetch_RoundTrip(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo, discardLogger)

	inputs := []ports.CreateProductInput{
		{Name: "Mug", Price: 9.5, Description: "ceramic", Category: "kitchen", Stock: 12},
		{Name: "Free sticker", Price: 0, Stock: 0},
		{Name: "Lamp", Price: 1234.99, Category: "home", Stock: 1},
	}
	for _, in := range inputs {
		created, err := svc.CreateProduct(context.Background(), in)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == "" {
			t.Fatalf("expected id")
		}
	}

	got, err := svc.ListProducts(context.Background(), ports.ListProductsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(inputs) {
		t.Fatalf("expected %d products, got %d", len(inputs), len(got))
	}
	for i, in := range inputs {
		p := got[i]
		if p.Name != in.Name || p.Price != in.Price || p.Description != in.Description ||
			p.Category != in.Category || p.Stock != in.Stock {
			t.Fatalf("round trip mismatch at %d: in=%+v out=%+v", i, in, p)
		}
	}
}

func TestProductService_Create_RepoError(t *testing.T) {
	repo := &stubProductRepo{createErr: errors.New("db down")}
	svc := NewProductService(repo, discardLogger)

	if _, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "x"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestProductService_List_SecondPage(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo, discardLogger)

	for i := 1; i <= 12; i++ {
		if _, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: fmt.Sprintf("item-%d", i), Price: float64(i)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.ListProducts(context.Background(), ports.ListProductsInput{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 products, got %d", len(got))
	}
	for i, p := range got {
		want := fmt.Sprintf("item-%d", i+6)
		if p.Name != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, p.Name)
		}
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		page, limit       int
		wantSkip, wantLim int
	}{
		{0, 0, 0, 10},
		{1, 10, 0, 10},
		{2, 5, 5, 5},
		{3, 7, 14, 7},
		{-4, -1, 0, 10},
		{2, 500, 100, 100},
	}
	for _, tc := range cases {
		skip, limit := pageWindow(tc.page, tc.limit)
		if skip != tc.wantSkip || limit != tc.wantLim {
			t.Errorf("pageWindow(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, skip, limit, tc.wantSkip, tc.wantLim)
		}
	}
}

func TestProductService_Update(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo, discardLogger)

	created, _ := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Mug", Price: 5, Category: "kitchen", Stock: 2})

	price := 7.25
	updated, err := svc.UpdateProduct(context.Background(), created.ID, domain.ProductPatch{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 7.25 || updated.Name != "Mug" || updated.Stock != 2 || updated.Category != "kitchen" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc := NewProductService(&stubProductRepo{}, discardLogger)

	name := "ghost"
	if _, err := svc.UpdateProduct(context.Background(), "missing", domain.ProductPatch{Name: &name}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo, discardLogger)

	created, _ := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Mug"})
	if err := svc.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected product removed")
	}
	if err := svc.DeleteProduct(context.Background(), created.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}
