package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Context keys set by Auth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
	CtxToken  = "token"
)

// Authenticator resolves a bearer token to the session user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.AuthUser, error)
}

// Auth validates the bearer token and injects the session user into context.
// The role comes from the store, not the token, so role changes apply to
// tokens already issued.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrNotAuthenticated
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxRole, string(user.Role))
			c.Set(CtxEmail, user.Email)
			c.Set(CtxToken, token)

			return next(c)
		}
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
