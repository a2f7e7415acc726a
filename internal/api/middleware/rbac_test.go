package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
)

func TestRBAC_AllowsListedRoles(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(CtxRole, "editor")

	handler := RBAC(domain.RoleAdmin, domain.RoleEditor)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ExactMatch(t *testing.T) {
	// admin is not implicitly allowed where only editor is listed
	for _, role := range []string{"admin", "viewer", ""} {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set(CtxRole, role)

		err := RBAC(domain.RoleEditor)(func(c echo.Context) error {
			t.Fatalf("next handler should not run for %q", role)
			return nil
		})(c)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %q: expected ErrForbidden, got %v", role, err)
		}
	}
}
