package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

func seededProducts() *stubProductRepo {
	return &stubProductRepo{products: []*domain.Product{
		{ID: "1", Name: "Smartphone X", Description: "d", Price: 999.99, Category: "Electronics", Stock: 50, Status: domain.ProductInStock},
		{ID: "2", Name: "Laptop Pro", Description: "d", Price: 1499.99, Category: "Electronics", Stock: 25, Status: domain.ProductInStock},
	}}
}

func TestProductService_CreateThenGet(t *testing.T) {
	repo := seededProducts()
	svc := NewProductService(repo, nil, zerolog.Nop())

	in := ports.ProductInput{Name: "T", Description: "d", Price: 10, Category: "C", Stock: 5, Status: domain.ProductInStock}
	created, err := svc.Create(context.Background(), editorActor, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "3" {
		t.Fatalf("expected id 3, got %s", created.ID)
	}
	if created.Image == nil || *created.Image != domain.DefaultProductImage {
		t.Fatalf("expected default image, got %v", created.Image)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "T" || got.Price != 10 || got.Category != "C" || got.Stock != 5 {
		t.Fatalf("unexpected product %+v", got)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc := NewProductService(seededProducts(), nil, zerolog.Nop())

	cases := []struct {
		in   ports.ProductInput
		want string
	}{
		{ports.ProductInput{Description: "d", Price: 1, Category: "c", Status: domain.ProductInStock}, "Name is required"},
		{ports.ProductInput{Name: "n", Price: 1, Category: "c", Status: domain.ProductInStock}, "Description is required"},
		{ports.ProductInput{Name: "n", Description: "d", Price: 1, Status: domain.ProductInStock}, "Category is required"},
		{ports.ProductInput{Name: "n", Description: "d", Category: "c", Status: domain.ProductInStock}, "Price must be greater than 0"},
		{ports.ProductInput{Name: "n", Description: "d", Price: 1, Category: "c", Stock: -1, Status: domain.ProductInStock}, "Stock cannot be negative"},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), adminActor, tc.in)
		if err == nil || err.Error() != tc.want {
			t.Fatalf("expected %q, got %v", tc.want, err)
		}
	}
}

func TestProductService_ViewerForbidden(t *testing.T) {
	repo := seededProducts()
	svc := NewProductService(repo, nil, zerolog.Nop())

	if err := svc.Delete(context.Background(), viewerActor, "1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.products) != 2 {
		t.Fatalf("store changed")
	}
}

func TestProductService_Update_Partial(t *testing.T) {
	svc := NewProductService(seededProducts(), nil, zerolog.Nop())

	stock := 0
	status := domain.ProductOutOfStock
	p, err := svc.Update(context.Background(), editorActor, "2", ports.ProductPatch{Stock: &stock, Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Name != "Laptop Pro" || p.Stock != 0 || p.Status != domain.ProductOutOfStock {
		t.Fatalf("unexpected product %+v", p)
	}

	if _, err := svc.Update(context.Background(), editorActor, "99", ports.ProductPatch{Stock: &stock}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_DeleteTwice(t *testing.T) {
	repo := seededProducts()
	svc := NewProductService(repo, nil, zerolog.Nop())

	if err := svc.Delete(context.Background(), adminActor, "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, "1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(repo.products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(repo.products))
	}
}
