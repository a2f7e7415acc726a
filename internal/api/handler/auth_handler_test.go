package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/middleware"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.AuthPayload, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthPayload, error)
	authFn     func(ctx context.Context, token string) (*domain.AuthUser, error)
	passwordFn func(ctx context.Context, actor ports.Actor, in ports.ChangePasswordInput) error
	loggedOut  []string
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthPayload, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthPayload, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.AuthUser, error) {
	return s.authFn(ctx, token)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, actor ports.Actor, in ports.ChangePasswordInput) error {
	return s.passwordFn(ctx, actor, in)
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withActor(c echo.Context, id string, role domain.Role) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, string(role))
	c.Set(middleware.CtxToken, "tok-"+id)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, in ports.LoginInput) (*ports.AuthPayload, error) {
			if in.Email != "admin@example.com" || in.Password != "password" {
				t.Fatalf("unexpected args: %+v", in)
			}
			return &ports.AuthPayload{User: domain.AuthUser{ID: "1", Role: domain.RoleAdmin}, Token: "token123"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"password"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["success"] != true || resp["message"] != "Login successful" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	data := resp["data"].(map[string]any)
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
	if user := data["user"].(map[string]any); user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, ports.LoginInput) (*ports.AuthPayload, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"bad"}`)

	_ = NewAuthHandler(stub).Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["success"] != false || resp["message"] != "Invalid credentials" || resp["data"] != nil {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, ports.LoginInput) (*ports.AuthPayload, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", "{")

	_ = NewAuthHandler(stub).Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_EmailInUse(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthPayload, error) {
			return nil, domain.ErrEmailInUse
		},
	}
	body := `{"name":"Bob","email":"admin@example.com","password":"abcdef","confirmPassword":"abcdef"}`
	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", body)

	_ = NewAuthHandler(stub).Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Email already in use" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthPayload, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", `{"name":"Bob","email":"not-an-email","password":"abcdef","confirmPassword":"abcdef"}`)

	_ = NewAuthHandler(stub).Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Invalid email format" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Logout_AlwaysSucceeds(t *testing.T) {
	stub := &stubAuthService{}
	c, rec := newJSONContext(http.MethodPost, "/api/auth/logout", "")
	withActor(c, "2", domain.RoleEditor)

	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.loggedOut) != 1 || stub.loggedOut[0] != "tok-2" {
		t.Fatalf("expected token to be revoked, got %v", stub.loggedOut)
	}
}

func TestAuthHandler_ChangePassword_Incorrect(t *testing.T) {
	stub := &stubAuthService{
		passwordFn: func(_ context.Context, actor ports.Actor, _ ports.ChangePasswordInput) error {
			if actor.ID != "3" {
				t.Fatalf("unexpected actor %+v", actor)
			}
			return domain.ErrIncorrectPassword
		},
	}
	c, rec := newJSONContext(http.MethodPut, "/api/auth/password", `{"currentPassword":"x","newPassword":"abcdef"}`)
	withActor(c, "3", domain.RoleViewer)

	_ = NewAuthHandler(stub).ChangePassword(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
