// Package memory is the in-process domain store. It is the default backend
// and starts from the demo seed.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/infrastructure/db/seed"
)

const activityCapacity = 200

// Store owns all collections. Callers never see its internal pointers:
// every read and write goes through a copy.
type Store struct {
	mu sync.RWMutex

	users    []*domain.User
	products []*domain.Product
	orders   []*domain.Order
	activity []domain.ActivityEvent

	nextUserID    int
	nextProductID int
}

// New returns a store loaded with the demo seed.
func New(now time.Time, passwordHash string) *Store {
	users := seed.Users(now, passwordHash)
	products := seed.Products(now)
	return &Store{
		users:         users,
		products:      products,
		orders:        seed.Orders(now),
		nextUserID:    len(users) + 1,
		nextProductID: len(products) + 1,
	}
}

// Empty returns a store with no data.
func Empty() *Store {
	return &Store{nextUserID: 1, nextProductID: 1}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }
func (s *Store) Orders() *OrderRepository     { return &OrderRepository{s: s} }
func (s *Store) Activity() *ActivityRepository {
	return &ActivityRepository{s: s}
}

type UserRepository struct{ s *Store }

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, len(r.s.users))
	for i, u := range r.s.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.userIndex(id); i >= 0 {
		return r.s.users[i].Clone(), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailTaken(user.Email, "") {
		return nil, domain.ErrEmailInUse
	}
	c := user.Clone()
	if c.ID == "" {
		c.ID = strconv.Itoa(r.s.nextUserID)
		r.s.nextUserID++
	}
	r.s.users = append(r.s.users, c)
	return c.Clone(), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.userIndex(user.ID)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	if r.s.emailTaken(user.Email, user.ID) {
		return nil, domain.ErrEmailInUse
	}
	r.s.users[i] = user.Clone()
	return user.Clone(), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.userIndex(id)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
	return nil
}

func (s *Store) userIndex(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) emailTaken(email, exceptID string) bool {
	for _, u := range s.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

type ProductRepository struct{ s *Store }

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Product, len(r.s.products))
	for i, p := range r.s.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.productIndex(id); i >= 0 {
		return r.s.products[i].Clone(), nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := p.Clone()
	if c.ID == "" {
		c.ID = strconv.Itoa(r.s.nextProductID)
		r.s.nextProductID++
	}
	r.s.products = append(r.s.products, c)
	return c.Clone(), nil
}

func (r *ProductRepository) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.productIndex(p.ID)
	if i < 0 {
		return nil, domain.ErrProductNotFound
	}
	r.s.products[i] = p.Clone()
	return p.Clone(), nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.productIndex(id)
	if i < 0 {
		return domain.ErrProductNotFound
	}
	r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
	return nil
}

func (s *Store) productIndex(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

type OrderRepository struct{ s *Store }

func (r *OrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Order, len(r.s.orders))
	for i, o := range r.s.orders {
		out[i] = o.Clone()
	}
	return out, nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = at
			return o.Clone(), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// ActivityRepository keeps the most recent activityCapacity events.
type ActivityRepository struct{ s *Store }

func (r *ActivityRepository) Append(_ context.Context, event domain.ActivityEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.activity = append(r.s.activity, event)
	if n := len(r.s.activity); n > activityCapacity {
		r.s.activity = append([]domain.ActivityEvent(nil), r.s.activity[n-activityCapacity:]...)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *ActivityRepository) Recent(_ context.Context, limit int) ([]domain.ActivityEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := len(r.s.activity)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.ActivityEvent, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.s.activity[i])
	}
	return out, nil
}
