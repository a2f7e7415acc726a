package state

import (
	"context"

	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// Orders is the order container. Orders are never created or deleted here.
type Orders struct {
	*Resource[domain.Order]
	api transport.Orders
}

func NewOrders(api transport.Orders) *Orders {
	return &Orders{
		Resource: newResource(func(o domain.Order) string { return o.ID }),
		api:      api,
	}
}

func (o *Orders) FetchAll(ctx context.Context) ([]domain.Order, error) {
	return o.fetchAll(ctx, o.api.List, "Failed to fetch orders")
}

func (o *Orders) FetchByID(ctx context.Context, id string) (domain.Order, error) {
	return o.fetchOne(ctx, func(ctx context.Context) (ports.Envelope[domain.Order], error) {
		return o.api.Get(ctx, id)
	}, "Failed to fetch order")
}

func (o *Orders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	return o.update(ctx, func(ctx context.Context) (ports.Envelope[domain.Order], error) {
		return o.api.UpdateStatus(ctx, id, status)
	}, "Failed to update order status")
}
