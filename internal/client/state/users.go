package state

import (
	"context"

	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// Users is the account management container.
type Users struct {
	*Resource[domain.User]
	api transport.Users
}

func NewUsers(api transport.Users) *Users {
	return &Users{
		Resource: newResource(func(u domain.User) string { return u.ID }),
		api:      api,
	}
}

func (u *Users) FetchAll(ctx context.Context) ([]domain.User, error) {
	return u.fetchAll(ctx, u.api.List, "Failed to fetch users")
}

func (u *Users) FetchByID(ctx context.Context, id string) (domain.User, error) {
	return u.fetchOne(ctx, func(ctx context.Context) (ports.Envelope[domain.User], error) {
		return u.api.Get(ctx, id)
	}, "Failed to fetch user")
}

func (u *Users) Create(ctx context.Context, in ports.UserInput) (domain.User, error) {
	return u.create(ctx, func(ctx context.Context) (ports.Envelope[domain.User], error) {
		return u.api.Create(ctx, in)
	}, "Failed to create user")
}

func (u *Users) Update(ctx context.Context, id string, in ports.UserInput) (domain.User, error) {
	return u.update(ctx, func(ctx context.Context) (ports.Envelope[domain.User], error) {
		return u.api.Update(ctx, id, in)
	}, "Failed to update user")
}

func (u *Users) Delete(ctx context.Context, id string) error {
	return u.remove(ctx, id, func(ctx context.Context) error {
		_, err := u.api.Delete(ctx, id)
		return err
	}, "Failed to delete user")
}
