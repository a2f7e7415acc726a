package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Label returns the display label for s.
func (s OrderStatus) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderItem is a single order line. Subtotal is stored, not recomputed.
type OrderItem struct {
	ID          string  `json:"id" bson:"id"`
	ProductID   string  `json:"productId" bson:"product_id"`
	ProductName string  `json:"productName" bson:"product_name"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Price       float64 `json:"price" bson:"price"`
	Subtotal    float64 `json:"subtotal" bson:"subtotal"`
}

// Order is created out of band. Only Status and UpdatedAt change afterwards.
type Order struct {
	ID              string        `json:"id" bson:"_id"`
	CustomerID      string        `json:"customerId" bson:"customer_id"`
	CustomerName    string        `json:"customerName" bson:"customer_name"`
	CustomerEmail   string        `json:"customerEmail" bson:"customer_email"`
	Items           []OrderItem   `json:"items" bson:"items"`
	Total           float64       `json:"total" bson:"total"`
	Status          OrderStatus   `json:"status" bson:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" bson:"payment_status"`
	ShippingAddress string        `json:"shippingAddress" bson:"shipping_address"`
	CreatedAt       time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updated_at"`
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}
