package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/storefront-api/internal/api/metrics"
	"github.com/sirpyerre/storefront-api/internal/core/domain"
	"github.com/sirpyerre/storefront-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/orders. The owner is the authenticated user.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Replays the first order created with this key"
// @Param        body             body      createOrderRequest  true   "Line items"
// @Success      201              {object}  orderResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	items := make([]ports.LineItemInput, len(req.Products))
	for i, p := range req.Products {
		items[i] = ports.LineItemInput{ProductID: p.ProductID, Quantity: p.Quantity}
	}

	result, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		UserID:         user.ID,
		Items:          items,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	if !result.AlreadyExisted {
		metrics.OrdersCreatedTotal.Inc()
		metrics.OrderLineItems.Observe(float64(len(items)))
	}
	return c.JSON(http.StatusCreated, toOrderResponse(result.Order))
}

// ListByUser handles GET /api/orders/user/:userId.
//
// @Summary      List a user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Owner id"
// @Success      200     {array}   orderResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/orders/user/{userId} [get]
func (h *OrderHandler) ListByUser(c echo.Context) error {
	orders, err := h.service.ListUserOrders(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}

	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return c.JSON(http.StatusOK, out)
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]lineItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = lineItemResponse{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Products:  items,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt: o.UpdatedAt.UTC().Format(timeLayout),
	}
}
