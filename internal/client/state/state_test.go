package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/backoffice/internal/client/demo"
	"github.com/99minutos/backoffice/internal/client/session"
	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

func newClient(t *testing.T) (*transport.Client, *session.Memory) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	backend := demo.New(ctx, demo.Options{PasswordHash: string(hash), Log: zerolog.Nop()})
	store := session.NewMemory()
	return backend.Client(session.TokenSource(store), transport.NoDelay), store
}

func signedIn(t *testing.T, email string) (*transport.Client, *Auth) {
	t.Helper()
	client, store := newClient(t)
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())
	if _, err := auth.Login(context.Background(), ports.LoginInput{Email: email, Password: "password"}); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return client, auth
}

func TestAuth_LoginPersistsSession(t *testing.T) {
	client, store := newClient(t)
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())

	payload, err := auth.Login(context.Background(), ports.LoginInput{Email: "admin@example.com", Password: "password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	snap := auth.Snapshot()
	if !snap.IsAuthenticated || snap.Status != Fulfilled || snap.User == nil || snap.User.ID != "1" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	sess, err := session.Load(context.Background(), store)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if sess.Token != payload.Token || sess.User.Email != "admin@example.com" {
		t.Fatalf("unexpected stored session %+v", sess)
	}
}

func TestAuth_LoginInvalidCredentials(t *testing.T) {
	client, store := newClient(t)
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())

	_, err := auth.Login(context.Background(), ports.LoginInput{Email: "admin@example.com", Password: "hunter2"})
	if err == nil {
		t.Fatalf("expected error")
	}

	snap := auth.Snapshot()
	if snap.Status != Rejected || snap.Error != "Invalid credentials" || snap.IsAuthenticated {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if _, ok, _ := store.Get(context.Background(), session.KeyToken); ok {
		t.Fatalf("no token should be stored")
	}
}

func TestAuth_RegisterEmailInUse_KeepsUserCount(t *testing.T) {
	client, store := newClient(t)
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())

	_, err := auth.Register(context.Background(), ports.RegisterInput{
		Name: "Dup", Email: "editor@example.com", Password: "secret1", ConfirmPassword: "other",
	})
	if err == nil || auth.Snapshot().Error != "Email already in use" {
		t.Fatalf("expected email in use, got %v", err)
	}

	if _, err := auth.Login(context.Background(), ports.LoginInput{Email: "admin@example.com", Password: "password"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	users := NewUsers(client.Users)
	all, err := users.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
}

func TestAuth_RegisterSignsIn(t *testing.T) {
	client, store := newClient(t)
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())

	payload, err := auth.Register(context.Background(), ports.RegisterInput{
		Name: "New Person", Email: "new@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if payload.User.Role != domain.RoleViewer || payload.User.ID != "4" {
		t.Fatalf("unexpected user %+v", payload.User)
	}
	if !auth.Snapshot().IsAuthenticated {
		t.Fatalf("expected authenticated")
	}
}

func TestAuth_LogoutClearsAndRevokes(t *testing.T) {
	client, auth := signedIn(t, "editor@example.com")
	token := auth.Snapshot().Token

	if err := <-auth.Logout(context.Background()); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	snap := auth.Snapshot()
	if snap.IsAuthenticated || snap.User != nil || snap.Token != "" || snap.Status != Fulfilled {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	_, err := client.Auth.Me(transport.WithToken(context.Background(), token))
	if !transport.IsUnauthenticated(err) {
		t.Fatalf("old token should be revoked, got %v", err)
	}
}

func TestAuth_LogoutWithoutSession(t *testing.T) {
	client, store := newClient(t)
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())

	if err, ok := <-auth.Logout(context.Background()); ok || err != nil {
		t.Fatalf("expected a closed channel, got %v %v", err, ok)
	}
}

func TestAuth_GetCurrentUser_NoSession(t *testing.T) {
	client, store := newClient(t)
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())

	_, err := auth.GetCurrentUser(context.Background())
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	snap := auth.Snapshot()
	if snap.Status != Rejected || snap.Error != "Not authenticated" || snap.IsAuthenticated {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestAuth_RestoresFromStorage(t *testing.T) {
	client, first := signedIn(t, "viewer@example.com")
	store := session.NewMemory()
	_ = session.Save(context.Background(), store, session.Session{Token: first.Snapshot().Token, User: *first.Snapshot().User})

	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())
	if snap := auth.Snapshot(); !snap.IsAuthenticated || snap.User == nil || snap.Status != Idle {
		t.Fatalf("expected restored session, got %+v", snap)
	}

	user, err := auth.GetCurrentUser(context.Background())
	if err != nil || user.Email != "viewer@example.com" {
		t.Fatalf("GetCurrentUser: %+v %v", user, err)
	}
}

func TestAuth_TokenAloneMarksAuthenticated(t *testing.T) {
	client, _ := newClient(t)
	store := session.NewMemory()
	_ = store.Set(context.Background(), session.KeyToken, "stale")

	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())
	if snap := auth.Snapshot(); !snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	<-auth.StartRehydrate(context.Background())
	if snap := auth.Snapshot(); snap.IsAuthenticated || snap.Status != Rejected {
		t.Fatalf("rehydration should fail, got %+v", snap)
	}
	if _, ok, _ := store.Get(context.Background(), session.KeyToken); ok {
		t.Fatalf("failed rehydration must clear storage")
	}
}

func TestProducts_CreateThenFetch(t *testing.T) {
	client, _ := signedIn(t, "editor@example.com")
	products := NewProducts(client.Products)
	if _, err := products.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	in := ports.ProductInput{Name: "Desk Lamp", Description: "LED lamp", Price: 39.5, Category: "Home", Stock: 12, Status: domain.ProductInStock}
	created, err := products.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n := len(products.Snapshot().Items); n != 5 {
		t.Fatalf("expected created product appended, have %d", n)
	}

	got, err := products.FetchByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if got.Name != in.Name || got.Description != in.Description || got.Price != in.Price ||
		got.Category != in.Category || got.Stock != in.Stock || got.Status != in.Status {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Image == nil || got.CreatedAt.IsZero() {
		t.Fatalf("expected defaults to be filled: %+v", got)
	}
	if cur := products.Snapshot().Current; cur == nil || cur.ID != created.ID {
		t.Fatalf("expected current product, got %+v", cur)
	}
}

func TestProducts_DeleteTwice(t *testing.T) {
	client, _ := signedIn(t, "admin@example.com")
	products := NewProducts(client.Products)
	if _, err := products.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if _, err := products.FetchByID(context.Background(), "3"); err != nil {
		t.Fatalf("FetchByID: %v", err)
	}

	if err := products.Delete(context.Background(), "3"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := products.Delete(context.Background(), "3"); err == nil {
		t.Fatalf("second delete should fail")
	}

	snap := products.Snapshot()
	if len(snap.Items) != 3 || snap.Current != nil {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Status != Rejected || snap.Error != "Product not found" {
		t.Fatalf("unexpected lifecycle %+v", snap.Lifecycle)
	}

	products.ClearError()
	snap = products.Snapshot()
	if snap.Status != Idle || snap.Error != "" || len(snap.Items) != 3 {
		t.Fatalf("ClearError must keep data: %+v", snap)
	}
}

func TestProducts_UpdateInPlace(t *testing.T) {
	client, _ := signedIn(t, "editor@example.com")
	products := NewProducts(client.Products)
	if _, err := products.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	in := ports.ProductInput{Name: "Smartphone X2", Description: "Refresh", Price: 899, Category: "Electronics", Stock: 40, Status: domain.ProductInStock}
	if _, err := products.Update(context.Background(), "1", in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	snap := products.Snapshot()
	if snap.Items[0].ID != "1" || snap.Items[0].Name != "Smartphone X2" || len(snap.Items) != 4 {
		t.Fatalf("expected in-place replace, got %+v", snap.Items)
	}
	if snap.Current == nil || snap.Current.Price != 899 {
		t.Fatalf("expected current to follow update, got %+v", snap.Current)
	}
}

func TestProducts_RejectedKeepsCollection(t *testing.T) {
	client, _ := signedIn(t, "viewer@example.com")
	products := NewProducts(client.Products)
	if _, err := products.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	_, err := products.Create(context.Background(), ports.ProductInput{Name: "X", Description: "Y", Price: 1, Category: "Z", Status: domain.ProductInStock})
	if err == nil {
		t.Fatalf("viewer must not create products")
	}
	snap := products.Snapshot()
	if snap.Error != "Access forbidden" || len(snap.Items) != 4 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestOrders_UpdateStatus(t *testing.T) {
	client, _ := signedIn(t, "editor@example.com")
	orders := NewOrders(client.Orders)
	all, err := orders.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	before := all[0]
	if before.ID != "ORD-001" || before.Status != domain.OrderPending {
		t.Fatalf("unexpected seed order %+v", before)
	}

	after, err := orders.UpdateStatus(context.Background(), "ORD-001", domain.OrderShipped)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if after.Status != domain.OrderShipped || after.Total != before.Total || len(after.Items) != len(before.Items) {
		t.Fatalf("unexpected order %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updatedAt must increase: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
	if held := orders.Snapshot().Items[0]; held.Status != domain.OrderShipped {
		t.Fatalf("held order not replaced: %+v", held)
	}
}

// gatedProducts hands every List call to the test, which decides when and
// how it settles.
type gatedProducts struct {
	transport.Products
	calls chan chan []domain.Product
}

func (g *gatedProducts) List(context.Context) (ports.Envelope[[]domain.Product], error) {
	reply := make(chan []domain.Product)
	g.calls <- reply
	return ports.OK(<-reply, "ok"), nil
}

func TestResource_PendingAndLastSettledWins(t *testing.T) {
	api := &gatedProducts{calls: make(chan chan []domain.Product)}
	products := NewProducts(api)

	first := make(chan struct{})
	go func() {
		defer close(first)
		_, _ = products.FetchAll(context.Background())
	}()
	replyFirst := <-api.calls
	if snap := products.Snapshot(); !snap.Loading() || snap.Seq != 1 {
		t.Fatalf("expected pending before settle, got %+v", snap.Lifecycle)
	}

	second := make(chan struct{})
	go func() {
		defer close(second)
		_, _ = products.FetchAll(context.Background())
	}()
	replySecond := <-api.calls

	replySecond <- []domain.Product{{ID: "b"}}
	<-second
	if snap := products.Snapshot(); snap.Status != Fulfilled || snap.Stale() || len(snap.Items) != 1 {
		t.Fatalf("unexpected state after second settles: %+v", snap)
	}

	replyFirst <- []domain.Product{{ID: "a1"}, {ID: "a2"}}
	<-first
	snap := products.Snapshot()
	if len(snap.Items) != 2 || snap.Items[0].ID != "a1" {
		t.Fatalf("last settled response should win, got %+v", snap.Items)
	}
	if snap.Seq != 1 || snap.Issued != 2 || !snap.Stale() {
		t.Fatalf("expected stale lifecycle, got %+v", snap.Lifecycle)
	}
}

func TestResource_Subscribe(t *testing.T) {
	api := &gatedProducts{calls: make(chan chan []domain.Product)}
	products := NewProducts(api)
	changes, cancel := products.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = products.FetchAll(context.Background())
	}()
	reply := <-api.calls

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatalf("no change signalled for pending")
	}
	reply <- nil
	<-done
	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatalf("no change signalled for settle")
	}
}

// heldStorage blocks reads once held is set, keeping a load in flight.
type heldStorage struct {
	*session.Memory
	held chan struct{}
}

func (h *heldStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if h.held != nil {
		<-h.held
	}
	return h.Memory.Get(ctx, key)
}

func TestAuth_RehydrateIfIdle_StartsOneLoad(t *testing.T) {
	client, _ := newClient(t)
	store := &heldStorage{Memory: session.NewMemory()}
	auth := NewAuth(context.Background(), client.Auth, store, zerolog.Nop())
	store.held = make(chan struct{})

	done, started := auth.RehydrateIfIdle(context.Background())
	if !started {
		t.Fatal("expected the first call to start a load")
	}
	if !auth.Snapshot().Loading() {
		t.Fatal("expected pending before RehydrateIfIdle returns")
	}
	if _, again := auth.RehydrateIfIdle(context.Background()); again {
		t.Fatal("a load is in flight, no second load should start")
	}

	close(store.held)
	<-done
	if snap := auth.Snapshot(); snap.Issued != 1 || snap.Status != Rejected {
		t.Fatalf("expected one rejected load, got %+v", snap.Lifecycle)
	}
}

func TestAuth_RehydrateIfIdle_SkipsLoadedSession(t *testing.T) {
	_, auth := signedIn(t, "admin@example.com")
	issued := auth.Snapshot().Issued

	if _, started := auth.RehydrateIfIdle(context.Background()); started {
		t.Fatal("an authenticated session needs no rehydration")
	}
	if got := auth.Snapshot().Issued; got != issued {
		t.Fatalf("Issued = %d, want %d", got, issued)
	}
}
