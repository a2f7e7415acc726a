package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns all orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Envelope[[]domain.Order]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// Get returns one order.
//
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  ports.Envelope[domain.Order]
// @Failure      404  {object}  ports.Envelope[any]
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, order, "Order retrieved successfully")
}

// UpdateStatus moves an order to a new status.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      orderStatusRequest  true  "New status"
// @Success      200   {object}  ports.Envelope[domain.Order]
// @Failure      400   {object}  ports.Envelope[any]
// @Failure      404   {object}  ports.Envelope[any]
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	var req orderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("order", "status_changed").Inc()
	metrics.OrderStatusChangesTotal.WithLabelValues(req.Status).Inc()
	return respond(c, http.StatusOK, order, "Order status updated successfully")
}
