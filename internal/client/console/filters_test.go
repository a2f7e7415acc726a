package console

import (
	"testing"

	"github.com/99minutos/backoffice/internal/core/domain"
)

func TestProductFilter(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Smartphone X", Description: "Latest smartphone", Category: "Electronics", Status: domain.ProductInStock},
		{ID: "2", Name: "Laptop Pro", Description: "For professionals", Category: "Electronics", Status: domain.ProductInStock},
		{ID: "3", Name: "Headphones", Description: "Noise-cancelling", Category: "Audio", Status: domain.ProductLowStock},
	}

	cases := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"no filter", ProductFilter{}, []string{"1", "2", "3"}},
		{"search name", ProductFilter{Search: "LAPTOP"}, []string{"2"}},
		{"search description", ProductFilter{Search: "noise"}, []string{"3"}},
		{"category", ProductFilter{Category: "Electronics", Status: All}, []string{"1", "2"}},
		{"status", ProductFilter{Status: string(domain.ProductLowStock)}, []string{"3"}},
		{"no match", ProductFilter{Search: "watch"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filter.Apply(products)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d products, want %d", len(got), len(tc.want))
			}
			for i, p := range got {
				if p.ID != tc.want[i] {
					t.Fatalf("position %d: got %s, want %s", i, p.ID, tc.want[i])
				}
			}
		})
	}

	cats := Categories(products)
	if len(cats) != 3 || cats[0] != All || cats[1] != "Electronics" || cats[2] != "Audio" {
		t.Fatalf("unexpected categories %v", cats)
	}
}

func TestUserFilter(t *testing.T) {
	users := []domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.UserActive},
		{ID: "3", Name: "Viewer User", Email: "viewer@example.com", Role: domain.RoleViewer, Status: domain.UserInactive},
	}
	if got := (UserFilter{Search: "VIEWER@"}).Apply(users); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("search by email failed: %+v", got)
	}
	if got := (UserFilter{Role: "admin", Status: "inactive"}).Apply(users); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestOrderFilter(t *testing.T) {
	orders := []domain.Order{
		{ID: "ORD-001", CustomerName: "John Doe", Status: domain.OrderPending},
		{ID: "ORD-002", CustomerName: "Jane Smith", Status: domain.OrderProcessing},
	}
	if got := (OrderFilter{Search: "jane"}).Apply(orders); len(got) != 1 || got[0].ID != "ORD-002" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got := (OrderFilter{Status: "pending"}).Apply(orders); len(got) != 1 || got[0].ID != "ORD-001" {
		t.Fatalf("unexpected result %+v", got)
	}
}
