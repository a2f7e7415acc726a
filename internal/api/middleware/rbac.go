package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/core/domain"
)

// RBAC enforces role-based access control. Roles match exactly.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues(role).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
