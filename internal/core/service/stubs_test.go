package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
)

type stubUserRepo struct {
	users  []*domain.User
	nextID int
	calls  int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	return &stubUserRepo{users: users, nextID: len(users) + 1}
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.calls++
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls++
	for _, u := range r.users {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.calls++
	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls++
	c := user.Clone()
	c.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.users = append(r.users, c)
	return c.Clone(), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls++
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user.Clone()
			return user.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.calls++
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubProductRepo struct {
	products []*domain.Product
	nextID   int
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.nextID == 0 {
		r.nextID = len(r.products) + 1
	}
	c := p.Clone()
	c.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.products = append(r.products, c)
	return c.Clone(), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p.Clone()
			return p.Clone(), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

type stubOrderRepo struct {
	orders []*domain.Order
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = at
			return o.Clone(), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (p *recordingPublisher) Publish(e domain.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type stubDenylist struct {
	revoked map[string]time.Duration
}

func (d *stubDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if d.revoked == nil {
		d.revoked = make(map[string]time.Duration)
	}
	d.revoked[token] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := d.revoked[token]
	return ok, nil
}
