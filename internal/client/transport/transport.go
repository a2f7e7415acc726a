// Package transport is the client's single way to reach the domain store.
// Every call returns the {data, message, success} envelope or an *Error.
package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// Empty is the payload of calls that return no data.
type Empty = struct{}

type Auth interface {
	Login(ctx context.Context, in ports.LoginInput) (ports.Envelope[ports.AuthPayload], error)
	Register(ctx context.Context, in ports.RegisterInput) (ports.Envelope[ports.AuthPayload], error)
	Me(ctx context.Context) (ports.Envelope[domain.AuthUser], error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, in ports.ChangePasswordInput) (ports.Envelope[Empty], error)
	UpdateProfile(ctx context.Context, name string) (ports.Envelope[domain.AuthUser], error)
}

type Products interface {
	List(ctx context.Context) (ports.Envelope[[]domain.Product], error)
	Get(ctx context.Context, id string) (ports.Envelope[domain.Product], error)
	Create(ctx context.Context, in ports.ProductInput) (ports.Envelope[domain.Product], error)
	Update(ctx context.Context, id string, in ports.ProductInput) (ports.Envelope[domain.Product], error)
	Delete(ctx context.Context, id string) (ports.Envelope[Empty], error)
}

type Users interface {
	List(ctx context.Context) (ports.Envelope[[]domain.User], error)
	Get(ctx context.Context, id string) (ports.Envelope[domain.User], error)
	Create(ctx context.Context, in ports.UserInput) (ports.Envelope[domain.User], error)
	Update(ctx context.Context, id string, in ports.UserInput) (ports.Envelope[domain.User], error)
	Delete(ctx context.Context, id string) (ports.Envelope[Empty], error)
}

type Orders interface {
	List(ctx context.Context) (ports.Envelope[[]domain.Order], error)
	Get(ctx context.Context, id string) (ports.Envelope[domain.Order], error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (ports.Envelope[domain.Order], error)
}

type Activity interface {
	Recent(ctx context.Context, limit int) (ports.Envelope[[]domain.ActivityEvent], error)
}

// Client bundles one implementation of every domain facade.
type Client struct {
	Auth     Auth
	Products Products
	Users    Users
	Orders   Orders
	Activity Activity
}

type tokenKey struct{}

// WithToken pins the bearer token used by calls made with ctx, overriding
// the facade's token source.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func resolveToken(ctx context.Context, source func(ctx context.Context) string) string {
	if tok, ok := ctx.Value(tokenKey{}).(string); ok {
		return tok
	}
	if source == nil {
		return ""
	}
	return source(ctx)
}

// Error is a failed call. Message is shown to operators verbatim.
type Error struct {
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

// IsUnauthenticated reports whether err means the session is missing or invalid.
func IsUnauthenticated(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err means the requested entity does not exist.
func IsNotFound(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Status == http.StatusNotFound
}

// fromDomain converts a service error to an *Error carrying the status the
// HTTP API would have answered with.
func fromDomain(err error) error {
	if err == nil {
		return nil
	}
	status := http.StatusInternalServerError
	msg := "internal server error"
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
		switch de.Kind {
		case domain.KindValidation:
			status = http.StatusBadRequest
		case domain.KindConflict:
			status = http.StatusConflict
		case domain.KindNotFound:
			status = http.StatusNotFound
		case domain.KindUnauthenticated:
			status = http.StatusUnauthorized
		case domain.KindForbidden:
			status = http.StatusForbidden
		case domain.KindSelfOperation:
			status = http.StatusUnprocessableEntity
		}
	}
	return &Error{Status: status, Message: msg, err: err}
}
