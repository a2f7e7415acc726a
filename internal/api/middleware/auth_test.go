package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
)

type stubAuthenticator struct {
	users map[string]*domain.AuthUser
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.AuthUser, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, domain.ErrNotAuthenticated
}

var testAuth = stubAuthenticator{users: map[string]*domain.AuthUser{
	"good": {ID: "1", Email: "admin@example.com", Role: domain.RoleAdmin},
}}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testAuth)(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxRole) != "admin" {
			t.Fatalf("role not set")
		}
		if c.Get(CtxToken) != "good" {
			t.Fatalf("token not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic good",
		"empty token":    "Bearer ",
		"unknown token":  "Bearer nope",
	}
	for name, header := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		err := Auth(testAuth)(func(c echo.Context) error {
			t.Fatalf("%s: next handler should not run", name)
			return nil
		})(c)
		if !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("%s: expected ErrNotAuthenticated, got %v", name, err)
		}
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := BearerToken("bearer abc"); !ok || tok != "abc" {
		t.Fatalf("BearerToken = %q, %v", tok, ok)
	}
}
