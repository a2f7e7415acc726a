package console

import (
	"context"

	"github.com/99minutos/backoffice/internal/client/forms"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

func (c *Controller) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	if err := c.Enter(ctx, "/products"); err != nil {
		return nil, err
	}
	products, err := c.Products.FetchAll(ctx)
	if err != nil {
		return nil, c.fail(ctx, err, "Failed to fetch products")
	}
	return f.Apply(products), nil
}

func (c *Controller) Product(ctx context.Context, id string) (domain.Product, error) {
	if err := c.Enter(ctx, "/products/"+id); err != nil {
		return domain.Product{}, err
	}
	p, err := c.Products.FetchByID(ctx, id)
	if err != nil {
		return domain.Product{}, c.fail(ctx, err, "Failed to fetch product")
	}
	return p, nil
}

func (c *Controller) CreateProduct(ctx context.Context, in ports.ProductInput) (domain.Product, error) {
	if err := c.Enter(ctx, "/products/create"); err != nil {
		return domain.Product{}, err
	}
	if err := forms.Product(in); err != nil {
		return domain.Product{}, err
	}
	p, err := c.Products.Create(ctx, in)
	if err != nil {
		return domain.Product{}, c.fail(ctx, err, "Failed to create product")
	}
	c.succeed("Product created successfully")
	return p, nil
}

func (c *Controller) UpdateProduct(ctx context.Context, id string, in ports.ProductInput) (domain.Product, error) {
	if err := c.Enter(ctx, "/products/edit/"+id); err != nil {
		return domain.Product{}, err
	}
	if err := forms.Product(in); err != nil {
		return domain.Product{}, err
	}
	p, err := c.Products.Update(ctx, id, in)
	if err != nil {
		return domain.Product{}, c.fail(ctx, err, "Failed to update product")
	}
	c.succeed("Product updated successfully")
	return p, nil
}

func (c *Controller) DeleteProduct(ctx context.Context, id string) error {
	if err := c.Enter(ctx, "/products/"+id+"/delete"); err != nil {
		return err
	}
	if err := c.Products.Delete(ctx, id); err != nil {
		return c.fail(ctx, err, "Failed to delete product")
	}
	c.succeed("Product deleted successfully")
	return nil
}

func (c *Controller) ListOrders(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	if err := c.Enter(ctx, "/orders"); err != nil {
		return nil, err
	}
	orders, err := c.Orders.FetchAll(ctx)
	if err != nil {
		return nil, c.fail(ctx, err, "Failed to fetch orders")
	}
	return f.Apply(orders), nil
}

func (c *Controller) Order(ctx context.Context, id string) (domain.Order, error) {
	if err := c.Enter(ctx, "/orders/"+id); err != nil {
		return domain.Order{}, err
	}
	o, err := c.Orders.FetchByID(ctx, id)
	if err != nil {
		return domain.Order{}, c.fail(ctx, err, "Failed to fetch order")
	}
	return o, nil
}

// ChangeOrderStatus moves an order to status. Selecting the status the
// order already has is a no-op.
func (c *Controller) ChangeOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if err := c.Enter(ctx, "/orders/"+id+"/status"); err != nil {
		return domain.Order{}, err
	}
	if !status.Valid() {
		return domain.Order{}, forms.FieldErrors{"status": "Invalid status"}
	}
	if cur := c.Orders.Snapshot().Current; cur != nil && cur.ID == id && cur.Status == status {
		return *cur, nil
	}
	o, err := c.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, c.fail(ctx, err, "Failed to update order status")
	}
	c.succeed("Order status updated successfully")
	return o, nil
}
