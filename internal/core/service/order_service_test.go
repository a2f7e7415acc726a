package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
)

func TestOrderService_UpdateStatus(t *testing.T) {
	// updatedAt in the future forces the strictly-increasing bump
	future := time.Now().Add(time.Hour).UTC()
	repo := &stubOrderRepo{orders: []*domain.Order{{
		ID:        "ORD-001",
		Items:     []domain.OrderItem{{ID: "ITEM-001", ProductID: "1", Quantity: 1, Price: 999.99, Subtotal: 999.99}},
		Total:     1299.98,
		Status:    domain.OrderPending,
		UpdatedAt: future,
	}}}
	pub := &recordingPublisher{}
	svc := NewOrderService(repo, pub, zerolog.Nop())

	o, err := svc.UpdateStatus(context.Background(), editorActor, "ORD-001", domain.OrderShipped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if o.Status != domain.OrderShipped {
		t.Fatalf("unexpected status %s", o.Status)
	}
	if o.Total != 1299.98 || len(o.Items) != 1 {
		t.Fatalf("items or total changed: %+v", o)
	}
	if !o.UpdatedAt.After(future) {
		t.Fatalf("expected updatedAt after %v, got %v", future, o.UpdatedAt)
	}
	if pub.count() != 1 {
		t.Fatalf("expected 1 event, got %d", pub.count())
	}
}

func TestOrderService_UpdateStatus_Errors(t *testing.T) {
	repo := &stubOrderRepo{orders: []*domain.Order{{ID: "ORD-001", Status: domain.OrderPending}}}
	svc := NewOrderService(repo, nil, zerolog.Nop())

	if _, err := svc.UpdateStatus(context.Background(), viewerActor, "ORD-001", domain.OrderShipped); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), adminActor, "ORD-404", domain.OrderShipped); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), adminActor, "ORD-001", "lost"); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
