// Package session tracks the authentication lifecycle:
// Unauthenticated -> Authenticating -> Authenticated -> (Expired ->
// Unauthenticated). All state changes happen through the Guard so a 401 from
// any in-flight request produces exactly one redirect-to-login.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/credstore"
)

// State is the guard's position in the authentication lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	Expired
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Guard verifies authentication, holds the current identity, and handles
// expiry. It is safe for use from request callbacks.
type Guard struct {
	client *api.Client
	creds  *credstore.Store

	mu       sync.Mutex
	state    State
	identity api.Identity
	expired  bool

	// onRedirect fires once per session when the user must log in again.
	onRedirect func()
}

// New builds a guard over the given client and credential store.
func New(client *api.Client, creds *credstore.Store) *Guard {
	return &Guard{client: client, creds: creds}
}

// OnRedirect registers the redirect-to-login side effect.
func (g *Guard) OnRedirect(fn func()) { g.onRedirect = fn }

// State returns the current lifecycle state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Identity returns the loaded identity; valid only while Authenticated.
func (g *Guard) Identity() api.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity
}

// IsAdmin reports whether the authenticated identity is an administrator.
func (g *Guard) IsAdmin() bool {
	return g.Identity().IsAdmin()
}

// Bootstrap runs the application-start path: with no stored credential it
// settles in Unauthenticated and signals redirect; otherwise it loads the
// identity from /users/me. A failed load clears the stored credential before
// redirecting.
func (g *Guard) Bootstrap(ctx context.Context) (api.Identity, error) {
	if g.creds.Token() == "" {
		g.setState(Unauthenticated)
		g.redirect()
		return api.Identity{}, api.ErrNotLoggedIn
	}

	g.setState(Authenticating)
	identity, err := g.client.Me(ctx)
	if err != nil {
		g.clearLocked()
		g.redirect()
		return api.Identity{}, fmt.Errorf("load identity: %w", err)
	}

	g.mu.Lock()
	g.state = Authenticated
	g.identity = identity
	g.expired = false
	g.mu.Unlock()
	return identity, nil
}

// Login exchanges credentials for a token, persists it, and loads the
// identity.
func (g *Guard) Login(ctx context.Context, username, password string) (api.Identity, error) {
	g.setState(Authenticating)
	tok, err := g.client.Login(ctx, username, password)
	if err != nil {
		g.setState(Unauthenticated)
		return api.Identity{}, err
	}
	if err := g.creds.SetToken(tok.AccessToken); err != nil {
		g.setState(Unauthenticated)
		return api.Identity{}, fmt.Errorf("store credential: %w", err)
	}
	_ = g.creds.SetUsername(username)
	return g.Bootstrap(ctx)
}

// Logout unconditionally clears the local credential. The server issues
// stateless bearer tokens, so there is no session to invalidate remotely.
func (g *Guard) Logout() {
	g.clearLocked()
	g.redirect()
}

// HandleExpired is the 401 hook wired into the API client. The first call
// per session clears credentials and fires the redirect; repeats from other
// in-flight requests are no-ops.
func (g *Guard) HandleExpired() {
	g.mu.Lock()
	if g.expired {
		g.mu.Unlock()
		return
	}
	g.expired = true
	g.state = Expired
	g.identity = api.Identity{}
	g.mu.Unlock()

	_ = g.creds.Clear()
	g.redirect()
}

func (g *Guard) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

func (g *Guard) clearLocked() {
	g.mu.Lock()
	g.state = Unauthenticated
	g.identity = api.Identity{}
	g.mu.Unlock()
	_ = g.creds.Clear()
}

func (g *Guard) redirect() {
	if g.onRedirect != nil {
		g.onRedirect()
	}
}
