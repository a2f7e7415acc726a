// Package gate decides whether a view may be shown for the current session.
package gate

import (
	"context"

	"github.com/99minutos/backoffice/internal/client/state"
)

// Outcome is what the caller should do with a navigation.
type Outcome int

const (
	Render Outcome = iota
	Loading
	RedirectLogin
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "render"
	}
}

// Decision is the result of checking one navigation. From is set on
// RedirectLogin so the caller can return there after signing in.
type Decision struct {
	Outcome Outcome
	From    string
}

// Check evaluates a route against a session snapshot without side effects.
// The role requirement is an exact match; Permit, when set, is consulted
// instead.
func Check(route Route, snap state.AuthSnapshot) Decision {
	if snap.Loading() {
		return Decision{Outcome: Loading}
	}
	if !route.Protected {
		return Decision{Outcome: Render}
	}
	if !snap.IsAuthenticated {
		return Decision{Outcome: RedirectLogin, From: route.Path}
	}
	if snap.User == nil {
		return Decision{Outcome: Render}
	}
	if route.RequiredRole != "" && snap.User.Role != route.RequiredRole {
		return Decision{Outcome: RedirectHome}
	}
	if route.Permit != nil && !route.Permit(snap.User.Role) {
		return Decision{Outcome: RedirectHome}
	}
	return Decision{Outcome: Render}
}

// Gate runs Check against a live Auth container.
type Gate struct {
	auth *state.Auth
}

func New(auth *state.Auth) *Gate {
	return &Gate{auth: auth}
}

// Resolve checks route, rehydrating the session first when none is loaded
// and none is being loaded, and waiting out any load in flight.
func (g *Gate) Resolve(ctx context.Context, route Route) (Decision, error) {
	if route.Protected {
		if done, started := g.auth.RehydrateIfIdle(ctx); started {
			select {
			case <-done:
			case <-ctx.Done():
				return Decision{Outcome: Loading}, ctx.Err()
			}
			return Check(route, g.auth.Snapshot()), nil
		}
	}

	snap := g.auth.Snapshot()
	if snap.Loading() {
		changes, cancel := g.auth.Subscribe()
		defer cancel()
		for snap = g.auth.Snapshot(); snap.Loading(); snap = g.auth.Snapshot() {
			select {
			case <-changes:
			case <-ctx.Done():
				return Decision{Outcome: Loading}, ctx.Err()
			}
		}
	}
	return Check(route, snap), nil
}
