package console

import (
	"context"

	"github.com/99minutos/backoffice/internal/client/forms"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

func (c *Controller) ListUsers(ctx context.Context, f UserFilter) ([]domain.User, error) {
	if err := c.Enter(ctx, "/users"); err != nil {
		return nil, err
	}
	users, err := c.Users.FetchAll(ctx)
	if err != nil {
		return nil, c.fail(ctx, err, "Failed to fetch users")
	}
	return f.Apply(users), nil
}

func (c *Controller) User(ctx context.Context, id string) (domain.User, error) {
	if err := c.Enter(ctx, "/users/"+id); err != nil {
		return domain.User{}, err
	}
	u, err := c.Users.FetchByID(ctx, id)
	if err != nil {
		return domain.User{}, c.fail(ctx, err, "Failed to fetch user")
	}
	return u, nil
}

func (c *Controller) CreateUser(ctx context.Context, in ports.UserInput) (domain.User, error) {
	if err := c.Enter(ctx, "/users/create"); err != nil {
		return domain.User{}, err
	}
	if err := forms.User(in, false); err != nil {
		return domain.User{}, err
	}
	u, err := c.Users.Create(ctx, in)
	if err != nil {
		return domain.User{}, c.fail(ctx, err, "An error occurred")
	}
	c.succeed("User created successfully")
	return u, nil
}

// UpdateUser saves the user form. Operators cannot move their own account
// away from admin; that is refused here without contacting the store.
func (c *Controller) UpdateUser(ctx context.Context, id string, in ports.UserInput) (domain.User, error) {
	if err := c.Enter(ctx, "/users/edit/"+id); err != nil {
		return domain.User{}, err
	}
	if err := forms.User(in, true); err != nil {
		return domain.User{}, err
	}
	if id == c.me().ID && in.Role != domain.RoleAdmin {
		c.notify.Notify(Notification{Kind: Warning, Message: domain.ErrSelfDemote.Message})
		return domain.User{}, domain.ErrSelfDemote
	}
	u, err := c.Users.Update(ctx, id, in)
	if err != nil {
		return domain.User{}, c.fail(ctx, err, "An error occurred")
	}
	c.succeed("User updated successfully")
	return u, nil
}

// DeleteUser removes an account other than the operator's own.
func (c *Controller) DeleteUser(ctx context.Context, id string) error {
	if err := c.Enter(ctx, "/users/"+id+"/delete"); err != nil {
		return err
	}
	if id == c.me().ID {
		c.notify.Notify(Notification{Kind: Warning, Message: domain.ErrSelfDelete.Message})
		return domain.ErrSelfDelete
	}
	if err := c.Users.Delete(ctx, id); err != nil {
		return c.fail(ctx, err, "Failed to delete user")
	}
	c.succeed("User deleted successfully")
	return nil
}
