package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type OrderService struct {
	repo     ports.OrderRepository
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, activity: activity, logger: logger}
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus sets the order status. Items and total are never touched;
// updatedAt always moves strictly forward.
func (s *OrderService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !actor.Role.CanUpdateOrderStatus() {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, domain.Invalid("Invalid order status")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	at := time.Now().UTC()
	if !at.After(current.UpdatedAt) {
		at = current.UpdatedAt.Add(time.Millisecond)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, at)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", id).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("order status updated")
	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityOrder,
		EntityID: id,
		Action:   "status_changed",
		ActorID:  actor.ID,
		Summary:  fmt.Sprintf("Order %s moved to %s", id, status.Label()),
	})
	return updated, nil
}
