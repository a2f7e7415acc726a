// Package seed holds the demo data every store starts from.
package seed

import (
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
)

const avatar = "/placeholder.svg?height=40&width=40"

const day = 24 * time.Hour

// Users returns the three demo operators. passwordHash is assigned to all of them.
func Users(now time.Time, passwordHash string) []*domain.User {
	return []*domain.User{
		{
			ID:           "1",
			Name:         "Admin User",
			Email:        "admin@example.com",
			PasswordHash: passwordHash,
			Role:         domain.RoleAdmin,
			Status:       domain.UserActive,
			Avatar:       domain.StringPtr(avatar),
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Name:         "Editor User",
			Email:        "editor@example.com",
			PasswordHash: passwordHash,
			Role:         domain.RoleEditor,
			Status:       domain.UserActive,
			Avatar:       domain.StringPtr(avatar),
			CreatedAt:    now,
		},
		{
			ID:           "3",
			Name:         "Viewer User",
			Email:        "viewer@example.com",
			PasswordHash: passwordHash,
			Role:         domain.RoleViewer,
			Status:       domain.UserInactive,
			CreatedAt:    now,
		},
	}
}

func Products(now time.Time) []*domain.Product {
	product := func(id, name, desc string, price float64, category string, stock int, status domain.ProductStatus) *domain.Product {
		return &domain.Product{
			ID:          id,
			Name:        name,
			Description: desc,
			Price:       price,
			Category:    category,
			Stock:       stock,
			Status:      status,
			Image:       domain.StringPtr(domain.DefaultProductImage),
			CreatedAt:   now,
		}
	}
	return []*domain.Product{
		product("1", "Smartphone X", "Latest smartphone with advanced features", 999.99, "Electronics", 50, domain.ProductInStock),
		product("2", "Laptop Pro", "High-performance laptop for professionals", 1499.99, "Electronics", 25, domain.ProductInStock),
		product("3", "Wireless Headphones", "Premium noise-cancelling headphones", 299.99, "Audio", 5, domain.ProductLowStock),
		product("4", "Smart Watch", "Fitness and health tracking smartwatch", 199.99, "Wearables", 0, domain.ProductOutOfStock),
	}
}

// Orders returns the five demo orders with timestamps relative to now.
func Orders(now time.Time) []*domain.Order {
	item := func(id, productID, name string, qty int, price, subtotal float64) domain.OrderItem {
		return domain.OrderItem{ID: id, ProductID: productID, ProductName: name, Quantity: qty, Price: price, Subtotal: subtotal}
	}
	ago := func(days int) time.Time { return now.Add(-time.Duration(days) * day) }

	return []*domain.Order{
		{
			ID:            "ORD-001",
			CustomerID:    "CUST-001",
			CustomerName:  "John Doe",
			CustomerEmail: "john.doe@example.com",
			Items: []domain.OrderItem{
				item("ITEM-001", "1", "Smartphone X", 1, 999.99, 999.99),
				item("ITEM-002", "3", "Wireless Headphones", 1, 299.99, 299.99),
			},
			Total:           1299.98,
			Status:          domain.OrderPending,
			PaymentStatus:   domain.PaymentPaid,
			ShippingAddress: "123 Main St, Anytown, USA",
			CreatedAt:       ago(2),
			UpdatedAt:       ago(2),
		},
		{
			ID:            "ORD-002",
			CustomerID:    "CUST-002",
			CustomerName:  "Jane Smith",
			CustomerEmail: "jane.smith@example.com",
			Items: []domain.OrderItem{
				item("ITEM-003", "2", "Laptop Pro", 1, 1499.99, 1499.99),
			},
			Total:           1499.99,
			Status:          domain.OrderProcessing,
			PaymentStatus:   domain.PaymentPaid,
			ShippingAddress: "456 Oak Ave, Somewhere, USA",
			CreatedAt:       ago(5),
			UpdatedAt:       ago(4),
		},
		{
			ID:            "ORD-003",
			CustomerID:    "CUST-003",
			CustomerName:  "Robert Johnson",
			CustomerEmail: "robert.johnson@example.com",
			Items: []domain.OrderItem{
				item("ITEM-004", "4", "Smart Watch", 2, 199.99, 399.98),
				item("ITEM-005", "3", "Wireless Headphones", 1, 299.99, 299.99),
			},
			Total:           699.97,
			Status:          domain.OrderShipped,
			PaymentStatus:   domain.PaymentPaid,
			ShippingAddress: "789 Pine Rd, Elsewhere, USA",
			CreatedAt:       ago(10),
			UpdatedAt:       ago(8),
		},
		{
			ID:            "ORD-004",
			CustomerID:    "CUST-004",
			CustomerName:  "Emily Davis",
			CustomerEmail: "emily.davis@example.com",
			Items: []domain.OrderItem{
				item("ITEM-006", "1", "Smartphone X", 1, 999.99, 999.99),
			},
			Total:           999.99,
			Status:          domain.OrderDelivered,
			PaymentStatus:   domain.PaymentPaid,
			ShippingAddress: "101 Maple St, Nowhere, USA",
			CreatedAt:       ago(15),
			UpdatedAt:       ago(12),
		},
		{
			ID:            "ORD-005",
			CustomerID:    "CUST-005",
			CustomerName:  "Michael Wilson",
			CustomerEmail: "michael.wilson@example.com",
			Items: []domain.OrderItem{
				item("ITEM-007", "2", "Laptop Pro", 1, 1499.99, 1499.99),
				item("ITEM-008", "3", "Wireless Headphones", 2, 299.99, 599.98),
			},
			Total:           2099.97,
			Status:          domain.OrderCancelled,
			PaymentStatus:   domain.PaymentRefunded,
			ShippingAddress: "202 Cedar Blvd, Anywhere, USA",
			CreatedAt:       ago(20),
			UpdatedAt:       ago(19),
		},
	}
}
