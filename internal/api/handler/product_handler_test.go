package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
	"github.com/sirpyerre/storefront-api/internal/core/ports"
)

type stubProductService struct {
	createFn func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error)
	listFn   func(ctx context.Context, in ports.ListProductsInput) ([]*domain.Product, error)
	updateFn func(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) ListProducts(ctx context.Context, in ports.ListProductsInput) ([]*domain.Product, error) {
	return s.listFn(ctx, in)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProductHandler_Create_OptionalFields(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		createFn: func(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			if in.Name != "mug" || in.Price != 4.5 || in.Stock != 0 || in.Description != "" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Product{ID: "p1", Name: in.Name, Price: in.Price}, nil
		},
	}
	handler := NewProductHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/products", `{"name":"mug","price":4.5}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"_id":"p1","name":"mug","price":4.5,"stock":0}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestProductHandler_Update_PassesOnlyProvidedFields(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		updateFn: func(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
			if id != "p1" {
				t.Fatalf("unexpected id %q", id)
			}
			if patch.Stock == nil || *patch.Stock != 0 || patch.Name != nil || patch.Price != nil {
				t.Fatalf("unexpected patch %+v", patch)
			}
			return &domain.Product{ID: id, Name: "mug"}, nil
		},
	}
	handler := NewProductHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/api/products/p1", `{"stock":0}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Update_InvalidID(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		updateFn: func(context.Context, string, domain.ProductPatch) (*domain.Product, error) {
			return nil, domain.ErrInvalidID
		},
	}
	handler := NewProductHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPut, "/api/products/zzz", `{"price":1}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("zzz")

	if err := handler.Update(c); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestProductHandler_Delete_InvalidIDPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubProductService{
		deleteFn: func(context.Context, string) error { return domain.ErrInvalidID },
	}
	handler := NewProductHandler(stub)

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/products/zzz", nil), httptest.NewRecorder())

	if err := handler.Delete(c); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
