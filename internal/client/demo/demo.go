// Package demo runs the whole back office in-process on the seeded memory
// store, for offline use of the console and for client tests.
package demo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/service"
	"github.com/99minutos/backoffice/internal/infrastructure/db/memory"
	"github.com/99minutos/backoffice/internal/infrastructure/queue"
)

// Options configures a Backend.
type Options struct {
	// PasswordHash is the bcrypt hash given to every seeded account and to
	// users created without a password.
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
	// Workers is the number of activity workers; 0 uses the dispatcher default.
	Workers int
	Log     zerolog.Logger
}

// Backend is a seeded in-process back office.
type Backend struct {
	Store    *memory.Store
	Services transport.Services
}

// New seeds a memory store and wires the services over it. Activity
// workers run until ctx is cancelled.
func New(ctx context.Context, opts Options) *Backend {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "demo-secret"
	}
	store := memory.New(time.Now().UTC(), opts.PasswordHash)

	dispatcher := queue.NewDispatcher(opts.Workers, store.Activity(), opts.Log)
	dispatcher.Start(ctx)

	return &Backend{
		Store: store,
		Services: transport.Services{
			Auth:     service.NewAuthService(store.Users(), memory.NewDenylist(), dispatcher, opts.JWTSecret, opts.TokenTTL, opts.Log),
			Users:    service.NewUserService(store.Users(), dispatcher, opts.PasswordHash, opts.Log),
			Products: service.NewProductService(store.Products(), dispatcher, opts.Log),
			Orders:   service.NewOrderService(store.Orders(), dispatcher, opts.Log),
			Activity: service.NewActivityService(store.Activity()),
		},
	}
}

// Client returns a Local facade over b.
func (b *Backend) Client(token func(ctx context.Context) string, delay transport.Delay) *transport.Client {
	return transport.NewLocal(b.Services, token, delay).Client()
}
