package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// HTTP talks to a running back office API.
type HTTP struct {
	baseURL string
	token   func(ctx context.Context) string
	client  *http.Client
}

// NewHTTP returns an HTTP facade rooted at baseURL, e.g. http://localhost:8080/api.
// A nil client uses a client without a timeout: a call settles only when
// the server answers or the connection fails.
func NewHTTP(baseURL string, token func(ctx context.Context) string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTP{baseURL: strings.TrimRight(baseURL, "/"), token: token, client: client}
}

// Client returns every facade backed by h.
func (h *HTTP) Client() *Client {
	return &Client{
		Auth:     httpAuth{h},
		Products: httpProducts{h},
		Users:    httpUsers{h},
		Orders:   httpOrders{h},
		Activity: httpActivity{h},
	}
}

// call sends one request and decodes the envelope. Non-2xx answers and
// envelopes with success=false become *Error.
func call[T any](ctx context.Context, h *HTTP, method, path string, body any) (ports.Envelope[T], error) {
	var env ports.Envelope[T]

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return env, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return env, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := resolveToken(ctx, h.token); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return env, &Error{Status: 0, Message: "Network error", err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return env, &Error{Status: resp.StatusCode, Message: "Network error", err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var failed ports.Envelope[json.RawMessage]
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &failed) == nil && failed.Message != "" {
			msg = failed.Message
		}
		return env, &Error{Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return env, &Error{Status: resp.StatusCode, Message: "Malformed response", err: err}
	}
	if !env.Success {
		return env, &Error{Status: resp.StatusCode, Message: env.Message}
	}
	return env, nil
}

func byID(prefix, id string) string { return prefix + "/" + url.PathEscape(id) }

type httpAuth struct{ h *HTTP }

func (a httpAuth) Login(ctx context.Context, in ports.LoginInput) (ports.Envelope[ports.AuthPayload], error) {
	return call[ports.AuthPayload](ctx, a.h, http.MethodPost, "/auth/login", in)
}

func (a httpAuth) Register(ctx context.Context, in ports.RegisterInput) (ports.Envelope[ports.AuthPayload], error) {
	return call[ports.AuthPayload](ctx, a.h, http.MethodPost, "/auth/register", in)
}

func (a httpAuth) Me(ctx context.Context) (ports.Envelope[domain.AuthUser], error) {
	return call[domain.AuthUser](ctx, a.h, http.MethodGet, "/auth/me", nil)
}

func (a httpAuth) Logout(ctx context.Context) error {
	_, err := call[json.RawMessage](ctx, a.h, http.MethodPost, "/auth/logout", nil)
	return err
}

func (a httpAuth) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) (ports.Envelope[Empty], error) {
	env, err := call[json.RawMessage](ctx, a.h, http.MethodPut, "/auth/password", in)
	return ports.Envelope[Empty]{Message: env.Message, Success: env.Success}, err
}

func (a httpAuth) UpdateProfile(ctx context.Context, name string) (ports.Envelope[domain.AuthUser], error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	return call[domain.AuthUser](ctx, a.h, http.MethodPut, "/profile", body)
}

type httpProducts struct{ h *HTTP }

func (p httpProducts) List(ctx context.Context) (ports.Envelope[[]domain.Product], error) {
	return call[[]domain.Product](ctx, p.h, http.MethodGet, "/products", nil)
}

func (p httpProducts) Get(ctx context.Context, id string) (ports.Envelope[domain.Product], error) {
	return call[domain.Product](ctx, p.h, http.MethodGet, byID("/products", id), nil)
}

func (p httpProducts) Create(ctx context.Context, in ports.ProductInput) (ports.Envelope[domain.Product], error) {
	return call[domain.Product](ctx, p.h, http.MethodPost, "/products", in)
}

func (p httpProducts) Update(ctx context.Context, id string, in ports.ProductInput) (ports.Envelope[domain.Product], error) {
	return call[domain.Product](ctx, p.h, http.MethodPut, byID("/products", id), in)
}

func (p httpProducts) Delete(ctx context.Context, id string) (ports.Envelope[Empty], error) {
	env, err := call[json.RawMessage](ctx, p.h, http.MethodDelete, byID("/products", id), nil)
	return ports.Envelope[Empty]{Message: env.Message, Success: env.Success}, err
}

type httpUsers struct{ h *HTTP }

func (u httpUsers) List(ctx context.Context) (ports.Envelope[[]domain.User], error) {
	return call[[]domain.User](ctx, u.h, http.MethodGet, "/users", nil)
}

func (u httpUsers) Get(ctx context.Context, id string) (ports.Envelope[domain.User], error) {
	return call[domain.User](ctx, u.h, http.MethodGet, byID("/users", id), nil)
}

func (u httpUsers) Create(ctx context.Context, in ports.UserInput) (ports.Envelope[domain.User], error) {
	return call[domain.User](ctx, u.h, http.MethodPost, "/users", in)
}

func (u httpUsers) Update(ctx context.Context, id string, in ports.UserInput) (ports.Envelope[domain.User], error) {
	return call[domain.User](ctx, u.h, http.MethodPut, byID("/users", id), in)
}

func (u httpUsers) Delete(ctx context.Context, id string) (ports.Envelope[Empty], error) {
	env, err := call[json.RawMessage](ctx, u.h, http.MethodDelete, byID("/users", id), nil)
	return ports.Envelope[Empty]{Message: env.Message, Success: env.Success}, err
}

type httpOrders struct{ h *HTTP }

func (o httpOrders) List(ctx context.Context) (ports.Envelope[[]domain.Order], error) {
	return call[[]domain.Order](ctx, o.h, http.MethodGet, "/orders", nil)
}

func (o httpOrders) Get(ctx context.Context, id string) (ports.Envelope[domain.Order], error) {
	return call[domain.Order](ctx, o.h, http.MethodGet, byID("/orders", id), nil)
}

func (o httpOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (ports.Envelope[domain.Order], error) {
	return call[domain.Order](ctx, o.h, http.MethodPatch, byID("/orders", id)+"/status", ports.OrderStatusUpdate{Status: status})
}

type httpActivity struct{ h *HTTP }

func (a httpActivity) Recent(ctx context.Context, limit int) (ports.Envelope[[]domain.ActivityEvent], error) {
	path := "/activity"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return call[[]domain.ActivityEvent](ctx, a.h, http.MethodGet, path, nil)
}
