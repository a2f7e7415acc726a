package domain

import "time"

// ProductStatus is an operator-set stock label. It is not derived from Stock.
type ProductStatus string

const (
	ProductInStock    ProductStatus = "in-stock"
	ProductLowStock   ProductStatus = "low-stock"
	ProductOutOfStock ProductStatus = "out-of-stock"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductInStock, ProductLowStock, ProductOutOfStock:
		return true
	}
	return false
}

// DefaultProductImage is assigned to products created without an image.
const DefaultProductImage = "/placeholder.svg?height=100&width=100"

type Product struct {
	ID          string        `json:"id" bson:"_id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Price       float64       `json:"price" bson:"price"`
	Category    string        `json:"category" bson:"category"`
	Stock       int           `json:"stock" bson:"stock"`
	Status      ProductStatus `json:"status" bson:"status"`
	Image       *string       `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
}

// NeedsAttention reports whether the product is flagged as low or out of stock.
func (p *Product) NeedsAttention() bool {
	return p.Status == ProductLowStock || p.Status == ProductOutOfStock
}

// StockValue is price times units on hand.
func (p *Product) StockValue() float64 { return p.Price * float64(p.Stock) }

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Image = cloneString(p.Image)
	return &c
}
