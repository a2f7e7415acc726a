package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
)

func newTestStore() *Store {
	return New(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), "hash")
}

func TestStore_Seed(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	users, _ := s.Users().List(ctx)
	products, _ := s.Products().List(ctx)
	orders, _ := s.Orders().List(ctx)
	if len(users) != 3 || len(products) != 4 || len(orders) != 5 {
		t.Fatalf("unexpected seed sizes: %d users, %d products, %d orders", len(users), len(products), len(orders))
	}
	if users[2].Avatar != nil || users[2].Status != domain.UserInactive {
		t.Fatalf("viewer seed mismatch: %+v", users[2])
	}
	if orders[0].ID != "ORD-001" || orders[0].Total != 1299.98 {
		t.Fatalf("order seed mismatch: %+v", orders[0])
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	p, _ := s.Products().FindByID(ctx, "1")
	p.Name = "mutated"

	again, _ := s.Products().FindByID(ctx, "1")
	if again.Name != "Smartphone X" {
		t.Fatalf("store leaked internal pointer")
	}
}

func TestProducts_CreateAssignsNextID(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	p, err := s.Products().Create(ctx, &domain.Product{Name: "T", Price: 10, Category: "C", Stock: 5, Status: domain.ProductInStock})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != "5" {
		t.Fatalf("expected id 5, got %s", p.ID)
	}

	list, _ := s.Products().List(ctx)
	if list[len(list)-1].ID != "5" {
		t.Fatalf("expected created product last")
	}
}

func TestProducts_IDsNeverCollideAfterDelete(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.Products().Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	p, _ := s.Products().Create(ctx, &domain.Product{Name: "T"})
	if _, err := s.Products().FindByID(ctx, "4"); err != nil {
		t.Fatalf("seed product 4 missing: %v", err)
	}
	if p.ID == "4" {
		t.Fatalf("id collided with existing product")
	}
}

func TestProducts_DeleteTwice(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.Products().Delete(ctx, "3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Products().Delete(ctx, "3"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	list, _ := s.Products().List(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3 products, got %d", len(list))
	}
}

func TestUsers_EmailUnique(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if _, err := s.Users().Create(ctx, &domain.User{Name: "x", Email: "admin@example.com"}); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}

	u, _ := s.Users().FindByID(ctx, "2")
	u.Email = "viewer@example.com"
	if _, err := s.Users().Update(ctx, u); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse on update, got %v", err)
	}
}

func TestOrders_UpdateStatusOnlyTouchesStatus(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	before, _ := s.Orders().FindByID(ctx, "ORD-001")
	at := before.UpdatedAt.Add(time.Second)
	after, err := s.Orders().UpdateStatus(ctx, "ORD-001", domain.OrderShipped, at)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if after.Status != domain.OrderShipped || !after.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected order %+v", after)
	}
	if after.Total != before.Total || len(after.Items) != len(before.Items) || !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("order fields changed")
	}

	if _, err := s.Orders().UpdateStatus(ctx, "ORD-999", domain.OrderShipped, at); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestActivity_RecentNewestFirstAndBounded(t *testing.T) {
	s := Empty()
	ctx := context.Background()
	repo := s.Activity()

	for i := 0; i < activityCapacity+5; i++ {
		_ = repo.Append(ctx, domain.ActivityEvent{ID: fmt.Sprint(i)})
	}

	recent, _ := repo.Recent(ctx, 3)
	if len(recent) != 3 || recent[0].ID != fmt.Sprint(activityCapacity+4) {
		t.Fatalf("unexpected recent events: %+v", recent)
	}

	all, _ := repo.Recent(ctx, 0)
	if len(all) != activityCapacity {
		t.Fatalf("expected %d events, got %d", activityCapacity, len(all))
	}
}
