package state

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/client/session"
	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// AuthSnapshot is a point-in-time copy of the Auth container.
type AuthSnapshot struct {
	User            *domain.AuthUser
	Token           string
	IsAuthenticated bool
	Lifecycle
}

// Auth owns the operator session and keeps it in durable storage.
type Auth struct {
	tracker
	api   transport.Auth
	store session.Storage
	log   zerolog.Logger

	user          *domain.AuthUser
	token         string
	authenticated bool
}

// NewAuth restores whatever session storage holds. A stored token alone
// marks the session authenticated until rehydration says otherwise.
func NewAuth(ctx context.Context, api transport.Auth, store session.Storage, log zerolog.Logger) *Auth {
	a := &Auth{api: api, store: store, log: log}

	token, ok, err := store.Get(ctx, session.KeyToken)
	if err != nil {
		log.Warn().Err(err).Msg("read stored session")
		return a
	}
	if ok && token != "" {
		a.token = token
		a.authenticated = true
	}
	if sess, err := session.Load(ctx, store); err == nil {
		u := sess.User
		a.user = &u
	}
	return a
}

func (a *Auth) Snapshot() AuthSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap := AuthSnapshot{Token: a.token, IsAuthenticated: a.authenticated, Lifecycle: a.life}
	if a.user != nil {
		u := *a.user
		snap.User = &u
	}
	return snap
}

func (a *Auth) begin() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.beginLocked()
}

func (a *Auth) Login(ctx context.Context, in ports.LoginInput) (ports.AuthPayload, error) {
	seq := a.begin()
	env, err := a.api.Login(ctx, in)
	return a.establish(ctx, seq, env, err, "Login failed")
}

// Register creates a viewer account and signs it in.
func (a *Auth) Register(ctx context.Context, in ports.RegisterInput) (ports.AuthPayload, error) {
	seq := a.begin()
	env, err := a.api.Register(ctx, in)
	return a.establish(ctx, seq, env, err, "Registration failed")
}

func (a *Auth) establish(ctx context.Context, seq uint64, env ports.Envelope[ports.AuthPayload], err error, fallback string) (ports.AuthPayload, error) {
	if err == nil {
		sess := session.Session{Token: env.Data.Token, User: env.Data.User}
		if perr := session.Save(ctx, a.store, sess); perr != nil {
			a.log.Warn().Err(perr).Msg("persist session")
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err == nil {
		u := env.Data.User
		a.user = &u
		a.token = env.Data.Token
		a.authenticated = true
	}
	a.settleLocked(seq, err, fallback)
	return env.Data, err
}

// Logout clears the session locally and in durable storage. It always
// succeeds. The returned channel reports the server-side revocation of the
// old token, which runs in the background; callers may ignore it.
func (a *Auth) Logout(ctx context.Context) <-chan error {
	seq := a.begin()

	a.mu.Lock()
	token := a.token
	a.user = nil
	a.token = ""
	a.authenticated = false
	a.mu.Unlock()

	if err := session.Clear(ctx, a.store); err != nil {
		a.log.Warn().Err(err).Msg("clear stored session")
	}

	a.mu.Lock()
	a.settleLocked(seq, nil, "")
	a.mu.Unlock()

	revoked := make(chan error, 1)
	if token == "" {
		close(revoked)
		return revoked
	}
	go func() {
		defer close(revoked)
		err := a.api.Logout(transport.WithToken(context.WithoutCancel(ctx), token))
		if err != nil {
			a.log.Debug().Err(err).Msg("server-side logout")
		}
		revoked <- err
	}()
	return revoked
}

// GetCurrentUser rehydrates the session from durable storage and confirms
// it with the server. On failure the session is cleared everywhere.
func (a *Auth) GetCurrentUser(ctx context.Context) (domain.AuthUser, error) {
	return a.rehydrate(ctx, a.begin())
}

// StartRehydrate runs GetCurrentUser in the background. The pending state is
// visible before StartRehydrate returns; the channel closes once it settles.
func (a *Auth) StartRehydrate(ctx context.Context) <-chan struct{} {
	return a.rehydrateAsync(ctx, a.begin())
}

// RehydrateIfIdle starts a rehydration only when no session is loaded and
// no load is in flight. The check and the transition to pending happen under
// one lock, so concurrent callers start at most one load between them.
func (a *Auth) RehydrateIfIdle(ctx context.Context) (<-chan struct{}, bool) {
	a.mu.Lock()
	if a.authenticated || a.life.Loading() {
		a.mu.Unlock()
		return nil, false
	}
	seq := a.beginLocked()
	a.mu.Unlock()
	return a.rehydrateAsync(ctx, seq), true
}

func (a *Auth) rehydrateAsync(ctx context.Context, seq uint64) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = a.rehydrate(context.WithoutCancel(ctx), seq)
	}()
	return done
}

func (a *Auth) rehydrate(ctx context.Context, seq uint64) (domain.AuthUser, error) {
	var env ports.Envelope[domain.AuthUser]
	sess, err := session.Load(ctx, a.store)
	if errors.Is(err, session.ErrNoSession) {
		err = domain.ErrNotAuthenticated
	}
	if err == nil {
		env, err = a.api.Me(transport.WithToken(ctx, sess.Token))
	}

	if err != nil {
		if cerr := session.Clear(ctx, a.store); cerr != nil {
			a.log.Warn().Err(cerr).Msg("clear stored session")
		}
	} else {
		sess.User = env.Data
		if perr := session.Save(ctx, a.store, sess); perr != nil {
			a.log.Warn().Err(perr).Msg("persist session")
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.user = nil
		a.token = ""
		a.authenticated = false
	} else {
		u := env.Data
		a.user = &u
		a.token = sess.Token
		a.authenticated = true
	}
	a.settleLocked(seq, err, "Failed to get current user")
	return env.Data, err
}

// Expire drops the in-memory and stored session after the server rejected
// its token.
func (a *Auth) Expire(ctx context.Context) {
	a.mu.Lock()
	a.user = nil
	a.token = ""
	a.authenticated = false
	a.notifyLocked()
	a.mu.Unlock()

	if err := session.Clear(ctx, a.store); err != nil {
		a.log.Warn().Err(err).Msg("clear stored session")
	}
}

// UpdateProfile renames the signed-in operator and refreshes the session.
func (a *Auth) UpdateProfile(ctx context.Context, name string) (domain.AuthUser, error) {
	seq := a.begin()
	env, err := a.api.UpdateProfile(ctx, name)

	a.mu.Lock()
	token := a.token
	if err == nil {
		u := env.Data
		a.user = &u
	}
	a.settleLocked(seq, err, "Failed to update profile")
	a.mu.Unlock()

	if err == nil && token != "" {
		if perr := session.Save(ctx, a.store, session.Session{Token: token, User: env.Data}); perr != nil {
			a.log.Warn().Err(perr).Msg("persist session")
		}
	}
	return env.Data, err
}

func (a *Auth) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	seq := a.begin()
	_, err := a.api.ChangePassword(ctx, in)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked(seq, err, "Failed to update password")
	return err
}
