// Package console is the operator-facing controller. Each method is one
// screen action: it consults the gate, pre-validates input, applies the
// call-site guards, dispatches to the state containers and reports the
// outcome as a notification.
package console

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/backoffice/internal/client/forms"
	"github.com/99minutos/backoffice/internal/client/gate"
	"github.com/99minutos/backoffice/internal/client/state"
	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const dashboardActivity = 5

// RedirectError is returned when the gate refuses a navigation.
type RedirectError struct {
	To   string
	From string
}

func (e *RedirectError) Error() string {
	if e.To == gate.PathLogin {
		return "sign in required"
	}
	return "not allowed for your role"
}

type Controller struct {
	Auth     *state.Auth
	Products *state.Products
	Users    *state.Users
	Orders   *state.Orders

	activity transport.Activity
	gate     *gate.Gate
	notify   Notifier
	log      zerolog.Logger
}

func New(client *transport.Client, auth *state.Auth, notify Notifier, log zerolog.Logger) *Controller {
	return &Controller{
		Auth:     auth,
		Products: state.NewProducts(client.Products),
		Users:    state.NewUsers(client.Users),
		Orders:   state.NewOrders(client.Orders),
		activity: client.Activity,
		gate:     gate.New(auth),
		notify:   notify,
		log:      log,
	}
}

// Enter navigates to path and returns the gate's decision as an error when
// the view may not be rendered.
func (c *Controller) Enter(ctx context.Context, path string) error {
	route, ok := gate.Match(path)
	if !ok {
		return errors.New("no such view: " + path)
	}
	d, err := c.gate.Resolve(ctx, route.WithPath(path))
	if err != nil {
		return err
	}
	switch d.Outcome {
	case gate.RedirectLogin:
		c.notify.Notify(Notification{Kind: Info, Message: "Please sign in to continue"})
		return &RedirectError{To: gate.PathLogin, From: d.From}
	case gate.RedirectHome:
		c.notify.Notify(Notification{Kind: Warning, Message: "You don't have access to that page"})
		return &RedirectError{To: gate.PathDashboard}
	}
	return nil
}

func (c *Controller) me() domain.AuthUser {
	if u := c.Auth.Snapshot().User; u != nil {
		return *u
	}
	return domain.AuthUser{}
}

func (c *Controller) succeed(msg string) {
	c.notify.Notify(Notification{Kind: Success, Message: msg})
}

// fail reports err. A rejected session token ends the session.
func (c *Controller) fail(ctx context.Context, err error, fallback string) error {
	if transport.IsUnauthenticated(err) && c.Auth.Snapshot().IsAuthenticated {
		c.Auth.Expire(ctx)
		c.notify.Notify(Notification{Kind: Warning, Message: "Your session has expired, please sign in again"})
		return &RedirectError{To: gate.PathLogin}
	}
	return c.report(err, fallback)
}

// report notifies the operator of err, preferring the server's message.
func (c *Controller) report(err error, fallback string) error {
	msg := fallback
	var te *transport.Error
	if errors.As(err, &te) && te.Message != "" {
		msg = te.Message
	}
	c.log.Debug().Err(err).Msg(fallback)
	c.notify.Notify(Notification{Kind: Failure, Message: msg})
	return err
}

func (c *Controller) Login(ctx context.Context, in ports.LoginInput) (domain.AuthUser, error) {
	if err := forms.Login(in); err != nil {
		return domain.AuthUser{}, err
	}
	payload, err := c.Auth.Login(ctx, in)
	if err != nil {
		return domain.AuthUser{}, c.report(err, "Login failed")
	}
	c.succeed("Login successful")
	return payload.User, nil
}

func (c *Controller) Register(ctx context.Context, in ports.RegisterInput) (domain.AuthUser, error) {
	if err := forms.Register(in); err != nil {
		return domain.AuthUser{}, err
	}
	payload, err := c.Auth.Register(ctx, in)
	if err != nil {
		return domain.AuthUser{}, c.report(err, "Registration failed")
	}
	c.succeed("Registration successful")
	return payload.User, nil
}

// Logout always succeeds locally. The returned channel reports the
// server-side revocation.
func (c *Controller) Logout(ctx context.Context) <-chan error {
	revoked := c.Auth.Logout(ctx)
	c.succeed("You have been signed out")
	return revoked
}

func (c *Controller) Whoami(ctx context.Context) (domain.AuthUser, error) {
	if err := c.Enter(ctx, "/profile"); err != nil {
		return domain.AuthUser{}, err
	}
	return c.me(), nil
}

func (c *Controller) UpdateProfile(ctx context.Context, name string) (domain.AuthUser, error) {
	if err := c.Enter(ctx, "/profile"); err != nil {
		return domain.AuthUser{}, err
	}
	if err := forms.Profile(name); err != nil {
		return domain.AuthUser{}, err
	}
	user, err := c.Auth.UpdateProfile(ctx, name)
	if err != nil {
		return domain.AuthUser{}, c.fail(ctx, err, "Failed to update profile")
	}
	c.succeed("Profile updated successfully")
	return user, nil
}

func (c *Controller) ChangePassword(ctx context.Context, in forms.PasswordChange) error {
	if err := c.Enter(ctx, "/profile"); err != nil {
		return err
	}
	if err := forms.Password(in); err != nil {
		return err
	}
	if err := c.Auth.ChangePassword(ctx, in.Input()); err != nil {
		return c.fail(ctx, err, "Failed to update password")
	}
	c.succeed("Password updated successfully")
	return nil
}

// Dashboard loads the catalog, and the user list for admins, in parallel.
func (c *Controller) Dashboard(ctx context.Context) (Dashboard, error) {
	if err := c.Enter(ctx, gate.PathDashboard); err != nil {
		return Dashboard{}, err
	}
	admin := c.me().Role.CanManageUsers()

	var (
		products []domain.Product
		users    []domain.User
		activity []domain.ActivityEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = c.Products.FetchAll(gctx)
		return err
	})
	if admin {
		g.Go(func() (err error) {
			users, err = c.Users.FetchAll(gctx)
			return err
		})
	}
	g.Go(func() error {
		env, err := c.activity.Recent(gctx, dashboardActivity)
		if err != nil {
			c.log.Debug().Err(err).Msg("load recent activity")
			return nil
		}
		activity = env.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, c.fail(ctx, err, "Failed to load dashboard")
	}

	d := ComputeDashboard(products, users, admin)
	d.Activity = activity
	return d, nil
}

func (c *Controller) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	if err := c.Enter(ctx, "/activity"); err != nil {
		return nil, err
	}
	env, err := c.activity.Recent(ctx, limit)
	if err != nil {
		return nil, c.fail(ctx, err, "Failed to fetch activity")
	}
	return env.Data, nil
}
