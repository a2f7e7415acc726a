package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/middleware"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// ctxActor extracts the session user injected by the Auth middleware.
// A missing id or role means the middleware did not run.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if id == "" || role == "" {
		return ports.Actor{}, domain.ErrNotAuthenticated
	}
	return ports.Actor{ID: id, Role: domain.Role(role)}, nil
}

func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.CtxToken).(string)
	return token
}
