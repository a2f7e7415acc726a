package transport

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// CallKind groups calls that share a simulated delay.
type CallKind int

const (
	CallList CallKind = iota
	CallGet
	CallMutation
	CallSession
)

// Delay returns the simulated latency of one call.
type Delay func(kind CallKind) time.Duration

// NoDelay resolves every call immediately.
func NoDelay(CallKind) time.Duration { return 0 }

// DefaultDelay mirrors a slow demo backend: lists and writes take 800ms,
// single lookups 500ms and session checks 300ms.
func DefaultDelay(kind CallKind) time.Duration {
	switch kind {
	case CallGet:
		return 500 * time.Millisecond
	case CallSession:
		return 300 * time.Millisecond
	default:
		return 800 * time.Millisecond
	}
}

// RandomDelay draws each delay uniformly from [min, max].
func RandomDelay(min, max time.Duration) Delay {
	return func(CallKind) time.Duration {
		if max <= min {
			return min
		}
		return min + rand.N(max-min+1)
	}
}

// Services are the in-process use cases behind a Local facade.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService
	Activity ports.ActivityService
}

// Local calls the services in-process after a simulated delay. Calls are
// not cancellable: once issued they run to completion.
type Local struct {
	svc   Services
	token func(ctx context.Context) string
	delay Delay
}

// NewLocal builds a Local facade. token supplies the bearer token of the
// current session; a nil delay means NoDelay.
func NewLocal(svc Services, token func(ctx context.Context) string, delay Delay) *Local {
	if delay == nil {
		delay = NoDelay
	}
	return &Local{svc: svc, token: token, delay: delay}
}

// Client returns every facade backed by l.
func (l *Local) Client() *Client {
	return &Client{
		Auth:     localAuth{l},
		Products: localProducts{l},
		Users:    localUsers{l},
		Orders:   localOrders{l},
		Activity: localActivity{l},
	}
}

// begin waits out the simulated delay and detaches the call from ctx.
func (l *Local) begin(ctx context.Context, kind CallKind) context.Context {
	if d := l.delay(kind); d > 0 {
		time.Sleep(d)
	}
	return context.WithoutCancel(ctx)
}

func (l *Local) actor(ctx context.Context) (ports.Actor, error) {
	user, err := l.svc.Auth.Authenticate(ctx, resolveToken(ctx, l.token))
	if err != nil {
		return ports.Actor{}, err
	}
	return ports.Actor{ID: user.ID, Role: user.Role}, nil
}

func envelope[T any](data T, msg string, err error) (ports.Envelope[T], error) {
	if err != nil {
		return ports.Envelope[T]{}, fromDomain(err)
	}
	return ports.OK(data, msg), nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func derefAll[T any](vs []*T) []T {
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		out = append(out, *v)
	}
	return out
}

type localAuth struct{ l *Local }

func (a localAuth) Login(ctx context.Context, in ports.LoginInput) (ports.Envelope[ports.AuthPayload], error) {
	ctx = a.l.begin(ctx, CallMutation)
	p, err := a.l.svc.Auth.Login(ctx, in)
	return envelope(deref(p), "Login successful", err)
}

func (a localAuth) Register(ctx context.Context, in ports.RegisterInput) (ports.Envelope[ports.AuthPayload], error) {
	ctx = a.l.begin(ctx, CallMutation)
	p, err := a.l.svc.Auth.Register(ctx, in)
	return envelope(deref(p), "Registration successful", err)
}

func (a localAuth) Me(ctx context.Context) (ports.Envelope[domain.AuthUser], error) {
	ctx = a.l.begin(ctx, CallSession)
	u, err := a.l.svc.Auth.Authenticate(ctx, resolveToken(ctx, a.l.token))
	return envelope(deref(u), "User retrieved successfully", err)
}

func (a localAuth) Logout(ctx context.Context) error {
	ctx = a.l.begin(ctx, CallSession)
	return fromDomain(a.l.svc.Auth.Logout(ctx, resolveToken(ctx, a.l.token)))
}

func (a localAuth) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) (ports.Envelope[Empty], error) {
	ctx = a.l.begin(ctx, CallMutation)
	actor, err := a.l.actor(ctx)
	if err == nil {
		err = a.l.svc.Auth.ChangePassword(ctx, actor, in)
	}
	return envelope(Empty{}, "Password updated successfully", err)
}

func (a localAuth) UpdateProfile(ctx context.Context, name string) (ports.Envelope[domain.AuthUser], error) {
	ctx = a.l.begin(ctx, CallMutation)
	actor, err := a.l.actor(ctx)
	if err != nil {
		return envelope(domain.AuthUser{}, "", err)
	}
	u, err := a.l.svc.Users.UpdateProfile(ctx, actor, name)
	if err != nil {
		return envelope(domain.AuthUser{}, "", err)
	}
	return envelope(u.Projection(), "Profile updated successfully", nil)
}

type localProducts struct{ l *Local }

func (p localProducts) List(ctx context.Context) (ports.Envelope[[]domain.Product], error) {
	ctx = p.l.begin(ctx, CallList)
	if _, err := p.l.actor(ctx); err != nil {
		return envelope[[]domain.Product](nil, "", err)
	}
	items, err := p.l.svc.Products.List(ctx)
	return envelope(derefAll(items), "Products retrieved successfully", err)
}

func (p localProducts) Get(ctx context.Context, id string) (ports.Envelope[domain.Product], error) {
	ctx = p.l.begin(ctx, CallGet)
	if _, err := p.l.actor(ctx); err != nil {
		return envelope(domain.Product{}, "", err)
	}
	item, err := p.l.svc.Products.Get(ctx, id)
	return envelope(deref(item), "Product retrieved successfully", err)
}

func (p localProducts) Create(ctx context.Context, in ports.ProductInput) (ports.Envelope[domain.Product], error) {
	ctx = p.l.begin(ctx, CallMutation)
	actor, err := p.l.actor(ctx)
	if err != nil {
		return envelope(domain.Product{}, "", err)
	}
	item, err := p.l.svc.Products.Create(ctx, actor, in)
	return envelope(deref(item), "Product created successfully", err)
}

func (p localProducts) Update(ctx context.Context, id string, in ports.ProductInput) (ports.Envelope[domain.Product], error) {
	ctx = p.l.begin(ctx, CallMutation)
	actor, err := p.l.actor(ctx)
	if err != nil {
		return envelope(domain.Product{}, "", err)
	}
	item, err := p.l.svc.Products.Update(ctx, actor, id, in.AsPatch())
	return envelope(deref(item), "Product updated successfully", err)
}

func (p localProducts) Delete(ctx context.Context, id string) (ports.Envelope[Empty], error) {
	ctx = p.l.begin(ctx, CallMutation)
	actor, err := p.l.actor(ctx)
	if err == nil {
		err = p.l.svc.Products.Delete(ctx, actor, id)
	}
	return envelope(Empty{}, "Product deleted successfully", err)
}

type localUsers struct{ l *Local }

func (u localUsers) List(ctx context.Context) (ports.Envelope[[]domain.User], error) {
	ctx = u.l.begin(ctx, CallList)
	actor, err := u.l.actor(ctx)
	if err != nil {
		return envelope[[]domain.User](nil, "", err)
	}
	items, err := u.l.svc.Users.List(ctx, actor)
	return envelope(derefAll(items), "Users retrieved successfully", err)
}

func (u localUsers) Get(ctx context.Context, id string) (ports.Envelope[domain.User], error) {
	ctx = u.l.begin(ctx, CallGet)
	actor, err := u.l.actor(ctx)
	if err != nil {
		return envelope(domain.User{}, "", err)
	}
	item, err := u.l.svc.Users.Get(ctx, actor, id)
	return envelope(deref(item), "User retrieved successfully", err)
}

func (u localUsers) Create(ctx context.Context, in ports.UserInput) (ports.Envelope[domain.User], error) {
	ctx = u.l.begin(ctx, CallMutation)
	actor, err := u.l.actor(ctx)
	if err != nil {
		return envelope(domain.User{}, "", err)
	}
	item, err := u.l.svc.Users.Create(ctx, actor, in)
	return envelope(deref(item), "User created successfully", err)
}

func (u localUsers) Update(ctx context.Context, id string, in ports.UserInput) (ports.Envelope[domain.User], error) {
	ctx = u.l.begin(ctx, CallMutation)
	actor, err := u.l.actor(ctx)
	if err != nil {
		return envelope(domain.User{}, "", err)
	}
	item, err := u.l.svc.Users.Update(ctx, actor, id, in.AsPatch())
	return envelope(deref(item), "User updated successfully", err)
}

func (u localUsers) Delete(ctx context.Context, id string) (ports.Envelope[Empty], error) {
	ctx = u.l.begin(ctx, CallMutation)
	actor, err := u.l.actor(ctx)
	if err == nil {
		err = u.l.svc.Users.Delete(ctx, actor, id)
	}
	return envelope(Empty{}, "User deleted successfully", err)
}

type localOrders struct{ l *Local }

func (o localOrders) List(ctx context.Context) (ports.Envelope[[]domain.Order], error) {
	ctx = o.l.begin(ctx, CallList)
	if _, err := o.l.actor(ctx); err != nil {
		return envelope[[]domain.Order](nil, "", err)
	}
	items, err := o.l.svc.Orders.List(ctx)
	return envelope(derefAll(items), "Orders retrieved successfully", err)
}

func (o localOrders) Get(ctx context.Context, id string) (ports.Envelope[domain.Order], error) {
	ctx = o.l.begin(ctx, CallGet)
	if _, err := o.l.actor(ctx); err != nil {
		return envelope(domain.Order{}, "", err)
	}
	item, err := o.l.svc.Orders.Get(ctx, id)
	return envelope(deref(item), "Order retrieved successfully", err)
}

func (o localOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (ports.Envelope[domain.Order], error) {
	ctx = o.l.begin(ctx, CallMutation)
	actor, err := o.l.actor(ctx)
	if err != nil {
		return envelope(domain.Order{}, "", err)
	}
	item, err := o.l.svc.Orders.UpdateStatus(ctx, actor, id, status)
	return envelope(deref(item), "Order status updated successfully", err)
}

type localActivity struct{ l *Local }

func (a localActivity) Recent(ctx context.Context, limit int) (ports.Envelope[[]domain.ActivityEvent], error) {
	ctx = a.l.begin(ctx, CallList)
	if _, err := a.l.actor(ctx); err != nil {
		return envelope[[]domain.ActivityEvent](nil, "", err)
	}
	events, err := a.l.svc.Activity.Recent(ctx, limit)
	return envelope(events, "Activity retrieved successfully", err)
}
