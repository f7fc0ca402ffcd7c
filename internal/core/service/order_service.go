package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/storefront-api/internal/core/domain"
	"github.com/sirpyerre/storefront-api/internal/core/ports"
)

type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// CreateOrder places a pending order for input.UserID. Product ids are stored
// as given; no stock is reserved. If an idempotency key is provided and already
// used by the same user, the earlier order is returned without side effects.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item %d: %w", i, domain.ErrInvalidQuantity)
		}
	}

	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.UserID, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("order_id", existing.ID).Msg("idempotent replay")
			return &ports.OrderResult{Order: existing, AlreadyExisted: true}, nil
		}
		if err != nil && !errors.Is(err, domain.ErrOrderNotFound) {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency lookup failed, creating order")
		}
	}

	items := make([]domain.LineItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = domain.LineItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Order{
		UserID:         input.UserID,
		Items:          items,
		Status:         domain.OrderPending,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if errors.Is(err, domain.ErrOrderExists) {
		// A concurrent request with the same key won the insert.
		existing, findErr := s.repo.FindByIdempotencyKey(ctx, input.UserID, input.IdempotencyKey)
		if findErr != nil {
			s.logger.Error().Err(findErr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to load concurrent order")
			return nil, findErr
		}
		s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("order_id", existing.ID).Msg("idempotent replay")
		return &ports.OrderResult{Order: existing, AlreadyExisted: true}, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Str("order_id", created.ID).Str("user_id", input.UserID).Int("items", len(items)).Msg("order created")
	return &ports.OrderResult{Order: created}, nil
}

// ListUserOrders returns every order owned by userID. The caller is not
// required to be that user.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.FindByUser(ctx, userID)
}
