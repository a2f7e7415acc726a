package ports

import (
	"context"
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// UserRepository is the persistence port for operator accounts. Create
// assigns an id when the user has none.
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository exposes the only order mutation the back office performs.
type OrderRepository interface {
	List(ctx context.Context) ([]*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus replaces status and updatedAt only.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error)
}

// ActivityRepository keeps a bounded, newest-first feed of activity events.
type ActivityRepository interface {
	Append(ctx context.Context, event domain.ActivityEvent) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

// ActivityPublisher accepts events for asynchronous recording.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}

// TokenDenylist records bearer tokens revoked by logout.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
