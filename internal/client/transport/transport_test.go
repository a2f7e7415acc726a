package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/backoffice/internal/api"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/service"
	"github.com/99minutos/backoffice/internal/infrastructure/db/memory"
)

type tokenBox struct {
	mu    sync.Mutex
	token string
}

func (b *tokenBox) set(tok string) {
	b.mu.Lock()
	b.token = tok
	b.mu.Unlock()
}

func (b *tokenBox) get(context.Context) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

func newServices(t *testing.T) Services {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store := memory.New(time.Now().UTC(), string(hash))
	log := zerolog.Nop()
	return Services{
		Auth:     service.NewAuthService(store.Users(), memory.NewDenylist(), nil, "secret", time.Hour, log),
		Users:    service.NewUserService(store.Users(), nil, string(hash), log),
		Products: service.NewProductService(store.Products(), nil, log),
		Orders:   service.NewOrderService(store.Orders(), nil, log),
		Activity: service.NewActivityService(store.Activity()),
	}
}

func signIn(t *testing.T, c *Client, box *tokenBox, email string) domain.AuthUser {
	t.Helper()
	env, err := c.Auth.Login(context.Background(), ports.LoginInput{Email: email, Password: "password"})
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	box.set(env.Data.Token)
	return env.Data.User
}

func TestLocal_LoginAndList(t *testing.T) {
	box := &tokenBox{}
	c := NewLocal(newServices(t), box.get, nil).Client()

	user := signIn(t, c, box, "admin@example.com")
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %q", user.Role)
	}

	env, err := c.Products.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !env.Success || env.Message != "Products retrieved successfully" || len(env.Data) != 4 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestLocal_RequiresSession(t *testing.T) {
	c := NewLocal(newServices(t), (&tokenBox{}).get, nil).Client()

	_, err := c.Orders.List(context.Background())
	if !IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if err.Error() != "Not authenticated" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected to unwrap to the domain error")
	}
}

func TestLocal_InvalidCredentials(t *testing.T) {
	c := NewLocal(newServices(t), (&tokenBox{}).get, nil).Client()

	_, err := c.Auth.Login(context.Background(), ports.LoginInput{Email: "admin@example.com", Password: "nope"})
	var te *Error
	if !errors.As(err, &te) || te.Status != http.StatusUnauthorized || te.Message != "Invalid credentials" {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestLocal_DeleteTwice(t *testing.T) {
	box := &tokenBox{}
	c := NewLocal(newServices(t), box.get, nil).Client()
	signIn(t, c, box, "editor@example.com")

	if _, err := c.Products.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	_, err := c.Products.Delete(context.Background(), "1")
	if !IsNotFound(err) || err.Error() != "Product not found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLocal_ViewerCannotEditCatalog(t *testing.T) {
	box := &tokenBox{}
	c := NewLocal(newServices(t), box.get, nil).Client()
	signIn(t, c, box, "viewer@example.com")

	_, err := c.Products.Create(context.Background(), ports.ProductInput{
		Name: "Desk", Description: "Oak", Price: 10, Category: "Office", Stock: 1, Status: domain.ProductInStock,
	})
	var te *Error
	if !errors.As(err, &te) || te.Status != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestLocal_IgnoresCancellation(t *testing.T) {
	box := &tokenBox{}
	delay := func(CallKind) time.Duration { return 5 * time.Millisecond }
	c := NewLocal(newServices(t), box.get, delay).Client()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env, err := c.Auth.Login(ctx, ports.LoginInput{Email: "admin@example.com", Password: "password"})
	if err != nil || env.Data.Token == "" {
		t.Fatalf("expected the call to complete, got %v", err)
	}
}

func TestLocal_UpdateProfile(t *testing.T) {
	box := &tokenBox{}
	c := NewLocal(newServices(t), box.get, nil).Client()
	signIn(t, c, box, "viewer@example.com")

	env, err := c.Auth.UpdateProfile(context.Background(), "  Vera  ")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if env.Data.Name != "Vera" || env.Data.Role != domain.RoleViewer {
		t.Fatalf("unexpected profile %+v", env.Data)
	}
}

func TestRandomDelay_Bounds(t *testing.T) {
	d := RandomDelay(10*time.Millisecond, 20*time.Millisecond)
	for i := 0; i < 100; i++ {
		got := d(CallList)
		if got < 10*time.Millisecond || got > 20*time.Millisecond {
			t.Fatalf("delay %v out of range", got)
		}
	}
	if got := RandomDelay(time.Second, time.Millisecond)(CallGet); got != time.Second {
		t.Fatalf("inverted range should use min, got %v", got)
	}
}

func TestDefaultDelay(t *testing.T) {
	cases := map[CallKind]time.Duration{
		CallList:     800 * time.Millisecond,
		CallMutation: 800 * time.Millisecond,
		CallGet:      500 * time.Millisecond,
		CallSession:  300 * time.Millisecond,
	}
	for kind, want := range cases {
		if got := DefaultDelay(kind); got != want {
			t.Errorf("DefaultDelay(%d) = %v, want %v", kind, got, want)
		}
	}
}

func TestFromDomain_Status(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrEmailInUse, http.StatusConflict},
		{domain.ErrPasswordMismatch, http.StatusBadRequest},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrSelfDelete, http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var te *Error
		if !errors.As(fromDomain(tc.err), &te) || te.Status != tc.want {
			t.Errorf("fromDomain(%v) status = %d, want %d", tc.err, te.Status, tc.want)
		}
	}
	if err := fromDomain(errors.New("disk on fire")); err.Error() != "internal server error" {
		t.Fatalf("internal errors must be masked, got %q", err.Error())
	}
}

func newHTTPClient(t *testing.T, box *tokenBox) *Client {
	t.Helper()
	svc := newServices(t)
	e := api.NewRouter(api.Dependencies{
		Auth:     svc.Auth,
		Users:    svc.Users,
		Products: svc.Products,
		Orders:   svc.Orders,
		Activity: svc.Activity,
		Log:      zerolog.Nop(),
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return NewHTTP(srv.URL+"/api/", box.get, srv.Client()).Client()
}

func TestHTTP_RoundTrip(t *testing.T) {
	box := &tokenBox{}
	c := newHTTPClient(t, box)
	signIn(t, c, box, "editor@example.com")

	env, err := c.Orders.UpdateStatus(context.Background(), "ORD-001", domain.OrderShipped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if env.Data.Status != domain.OrderShipped || env.Message != "Order status updated successfully" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	del, err := c.Products.Delete(context.Background(), "2")
	if err != nil || !del.Success || del.Message != "Product deleted successfully" {
		t.Fatalf("Delete: %+v %v", del, err)
	}
	if _, err := c.Products.Get(context.Background(), "2"); !IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestHTTP_ErrorEnvelope(t *testing.T) {
	box := &tokenBox{}
	c := newHTTPClient(t, box)

	_, err := c.Auth.Login(context.Background(), ports.LoginInput{Email: "admin@example.com", Password: "bad"})
	var te *Error
	if !errors.As(err, &te) || te.Status != http.StatusUnauthorized || te.Message != "Invalid credentials" {
		t.Fatalf("unexpected error %#v", err)
	}

	signIn(t, c, box, "viewer@example.com")
	if _, err := c.Users.List(context.Background()); err == nil || err.Error() != "Access forbidden" {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := c.Auth.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := c.Auth.Me(context.Background()); !IsUnauthenticated(err) {
		t.Fatalf("expected revoked token, got %v", err)
	}
}

func TestWithToken_OverridesSource(t *testing.T) {
	box := &tokenBox{}
	c := NewLocal(newServices(t), box.get, nil).Client()
	signIn(t, c, box, "admin@example.com")
	tok := box.get(context.Background())
	box.set("")

	env, err := c.Auth.Me(WithToken(context.Background(), tok))
	if err != nil || env.Data.ID != "1" {
		t.Fatalf("Me with pinned token: %+v %v", env, err)
	}
	if _, err := c.Auth.Me(context.Background()); !IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated without a token, got %v", err)
	}
}

func TestNewHTTP_DefaultClientHasNoTimeout(t *testing.T) {
	h := NewHTTP("http://localhost:8080/api/", nil, nil)
	if h.client.Timeout != 0 {
		t.Fatalf("default client timeout = %v, want none", h.client.Timeout)
	}
	if h.baseURL != "http://localhost:8080/api" {
		t.Fatalf("baseURL = %q", h.baseURL)
	}
}
