package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
	"github.com/sirpyerre/storefront-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders    []*domain.Order
	createErr error
	findErr   error
	// beforeCreate runs ahead of the insert, after any idempotency lookup.
	beforeCreate func(r *stubOrderRepo)
}

// Create mirrors the unique (user_id, idempotency_key) index.
func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.beforeCreate != nil {
		r.beforeCreate(r)
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	if o.IdempotencyKey != "" {
		for _, existing := range r.orders {
			if existing.UserID == o.UserID && existing.IdempotencyKey == o.IdempotencyKey {
				return nil, domain.ErrOrderExists
			}
		}
	}
	clone := *o
	clone.ID = fmt.Sprintf("o%d", len(r.orders)+1)
	r.orders = append(r.orders, &clone)
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	out := []*domain.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) FindByIdempotencyKey(_ context.Context, userID, key string) (*domain.Order, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, o := range r.orders {
		if o.UserID == userID && o.IdempotencyKey == key {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func TestOrderService_Create_Success(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, discardLogger)

	res, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "u1",
		Items: []ports.LineItemInput{
			{ProductID: "64b7f0c2a1b2c3d4e5f60718", Quantity: 2},
			{ProductID: "64b7f0c2a1b2c3d4e5f60719", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	o := res.Order
	if res.AlreadyExisted {
		t.Fatalf("fresh order reported as replay")
	}
	if o.ID == "" || o.UserID != "u1" {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.Status != domain.OrderPending {
		t.Fatalf("expected pending status, got %s", o.Status)
	}
	if len(o.Items) != 2 || o.Items[0].Quantity != 2 || o.Items[1].ProductID != "64b7f0c2a1b2c3d4e5f60719" {
		t.Fatalf("line items not preserved in order: %+v", o.Items)
	}
	if o.CreatedAt.IsZero() || !o.CreatedAt.Equal(o.UpdatedAt) {
		t.Fatalf("expected timestamps to be stamped")
	}
}

func TestOrderService_Create_ZeroQuantityRejected(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, discardLogger)

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "u1",
		Items:  []ports.LineItemInput{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: 0}},
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("rejected order must not be stored")
	}
}

// Product references are not checked: an order for an unknown product id is accepted.
func TestOrderService_Create_UnknownProductAccepted(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, discardLogger)

	res, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "u1",
		Items:  []ports.LineItemInput{{ProductID: "000000000000000000000000", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("expected order for unknown product to succeed, got %v", err)
	}
	if res.Order.Items[0].ProductID != "000000000000000000000000" {
		t.Fatalf("product reference not stored")
	}
}

func TestOrderService_Create_IdempotentReplay(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, discardLogger)
	in := ports.CreateOrderInput{
		UserID:         "u1",
		Items:          []ports.LineItemInput{{ProductID: "p1", Quantity: 1}},
		IdempotencyKey: "key-1",
	}

	first, err := svc.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !second.AlreadyExisted || second.Order.ID != first.Order.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Order.ID, second)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected one stored order, got %d", len(repo.orders))
	}

	// Same key from another user is a different order.
	in.UserID = "u2"
	third, err := svc.CreateOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("third create: %v", err)
	}
	if third.AlreadyExisted {
		t.Fatalf("idempotency keys must be scoped per user")
	}
}

func TestOrderService_Create_ConcurrentDuplicateKeyReplays(t *testing.T) {
	repo := &stubOrderRepo{}
	// Another request with the same key lands between the lookup and the insert.
	repo.beforeCreate = func(r *stubOrderRepo) {
		r.beforeCreate = nil
		r.orders = append(r.orders, &domain.Order{ID: "winner", UserID: "u1", IdempotencyKey: "key-1", Status: domain.OrderPending})
	}
	svc := NewOrderService(repo, discardLogger)

	res, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:         "u1",
		Items:          []ports.LineItemInput{{ProductID: "p1", Quantity: 1}},
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !res.AlreadyExisted || res.Order.ID != "winner" {
		t.Fatalf("expected replay of the concurrent order, got %+v", res)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected a single stored order, got %d", len(repo.orders))
	}
}

func TestOrderService_Create_IdempotencyLookupFailureStillCreates(t *testing.T) {
	repo := &stubOrderRepo{findErr: errors.New("timeout")}
	svc := NewOrderService(repo, discardLogger)

	res, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "u1", IdempotencyKey: "k"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.AlreadyExisted || len(repo.orders) != 1 {
		t.Fatalf("expected a new order to be created")
	}
}

func TestOrderService_Create_RepoError(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{createErr: errors.New("db down")}, discardLogger)

	if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "u1"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOrderService_ListUserOrders(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, discardLogger)

	for _, uid := range []string{"u1", "u2", "u1"} {
		if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: uid}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.ListUserOrders(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o1" || got[1].ID != "o3" {
		t.Fatalf("unexpected orders: %+v", got)
	}

	none, err := svc.ListUserOrders(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no orders, got %d", len(none))
	}
}
