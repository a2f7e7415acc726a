// Package session persists the signed-in operator between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNoSession is returned by Load when no complete session is stored.
var ErrNoSession = errors.New("no stored session")

// Storage is a small durable key-value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Session is the persisted token plus user projection.
type Session struct {
	Token string
	User  domain.AuthUser
}

// Save writes both keys.
func Save(ctx context.Context, s Storage, sess Session) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.Set(ctx, KeyToken, sess.Token); err != nil {
		return err
	}
	return s.Set(ctx, KeyUser, string(raw))
}

// Load reads a stored session. A missing token, a missing user or an
// unreadable user all count as no session.
func Load(ctx context.Context, s Storage) (Session, error) {
	token, ok, err := s.Get(ctx, KeyToken)
	if err != nil {
		return Session{}, err
	}
	if !ok || token == "" {
		return Session{}, ErrNoSession
	}

	raw, ok, err := s.Get(ctx, KeyUser)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNoSession
	}

	var user domain.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return Session{}, ErrNoSession
	}
	return Session{Token: token, User: user}, nil
}

// Clear removes both keys.
func Clear(ctx context.Context, s Storage) error {
	return errors.Join(s.Remove(ctx, KeyToken), s.Remove(ctx, KeyUser))
}

// TokenSource returns a function reading the current token from s. It is
// what transports use to attach credentials to each call.
func TokenSource(s Storage) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		token, ok, err := s.Get(ctx, KeyToken)
		if err != nil || !ok {
			return ""
		}
		return token
	}
}
