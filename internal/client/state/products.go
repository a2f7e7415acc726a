package state

import (
	"context"

	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// Products is the catalog container.
type Products struct {
	*Resource[domain.Product]
	api transport.Products
}

func NewProducts(api transport.Products) *Products {
	return &Products{
		Resource: newResource(func(p domain.Product) string { return p.ID }),
		api:      api,
	}
}

func (p *Products) FetchAll(ctx context.Context) ([]domain.Product, error) {
	return p.fetchAll(ctx, p.api.List, "Failed to fetch products")
}

func (p *Products) FetchByID(ctx context.Context, id string) (domain.Product, error) {
	return p.fetchOne(ctx, func(ctx context.Context) (ports.Envelope[domain.Product], error) {
		return p.api.Get(ctx, id)
	}, "Failed to fetch product")
}

func (p *Products) Create(ctx context.Context, in ports.ProductInput) (domain.Product, error) {
	return p.create(ctx, func(ctx context.Context) (ports.Envelope[domain.Product], error) {
		return p.api.Create(ctx, in)
	}, "Failed to create product")
}

func (p *Products) Update(ctx context.Context, id string, in ports.ProductInput) (domain.Product, error) {
	return p.update(ctx, func(ctx context.Context) (ports.Envelope[domain.Product], error) {
		return p.api.Update(ctx, id, in)
	}, "Failed to update product")
}

func (p *Products) Delete(ctx context.Context, id string) error {
	return p.remove(ctx, id, func(ctx context.Context) error {
		_, err := p.api.Delete(ctx, id)
		return err
	}, "Failed to delete product")
}
