package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/credstore"
)

func newGuard(t *testing.T, handler http.Handler) (*Guard, *credstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds, err := credstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open credstore: %v", err)
	}

	var guard *Guard
	client, err := api.New(srv.URL,
		api.WithToken(creds.Token),
		api.WithExpiredHandler(func() {
			if guard != nil {
				guard.HandleExpired()
			}
		}),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	guard = New(client, creds)
	return guard, creds
}

func apiHandler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("password") != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.Token{AccessToken: "tok", TokenType: "bearer"})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.Identity{
			ID: 1, Username: "maria", Role: api.RoleAdministrator,
		})
	})
	return mux
}

func TestBootstrapWithoutCredential(t *testing.T) {
	redirects := 0
	g, _ := newGuard(t, apiHandler(t))
	g.OnRedirect(func() { redirects++ })

	_, err := g.Bootstrap(context.Background())
	if !errors.Is(err, api.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if g.State() != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", g.State())
	}
	if redirects != 1 {
		t.Fatalf("expected one redirect, got %d", redirects)
	}
}

func TestLoginPersistsAndLoadsIdentity(t *testing.T) {
	g, creds := newGuard(t, apiHandler(t))

	identity, err := g.Login(context.Background(), "maria", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Username != "maria" || !identity.IsAdmin() {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if g.State() != Authenticated {
		t.Fatalf("expected Authenticated, got %v", g.State())
	}
	if creds.Token() != "tok" || creds.Username() != "maria" {
		t.Fatalf("credentials not persisted: token=%q user=%q", creds.Token(), creds.Username())
	}
	if !g.IsAdmin() {
		t.Fatalf("expected admin guard")
	}
}

func TestLoginRejectedLeavesNoCredential(t *testing.T) {
	g, creds := newGuard(t, apiHandler(t))

	_, err := g.Login(context.Background(), "maria", "wrong")
	if err == nil {
		t.Fatalf("expected error for bad password")
	}
	if creds.Token() != "" {
		t.Fatalf("rejected login must not persist a token")
	}
	if g.State() != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", g.State())
	}
}

// A wrong password while a valid session is stored must reject the attempt
// and leave the stored credential alone.
func TestLoginTypoKeepsStoredCredential(t *testing.T) {
	redirects := 0
	g, creds := newGuard(t, apiHandler(t))
	g.OnRedirect(func() { redirects++ })
	if err := creds.SetToken("tok"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	_, err := g.Login(context.Background(), "maria", "wrong")
	if errors.Is(err, api.ErrSessionExpired) {
		t.Fatalf("login typo classified as session expiry: %v", err)
	}
	re, ok := api.IsRequestError(err)
	if !ok || re.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 RequestError, got %v", err)
	}
	if creds.Token() != "tok" {
		t.Fatalf("stored credential must survive a rejected login, got %q", creds.Token())
	}
	if g.State() == Expired {
		t.Fatalf("guard must not expire on a rejected login")
	}
	if redirects != 0 {
		t.Fatalf("rejected login must not redirect, got %d", redirects)
	}
}

func TestBootstrapWithStaleTokenClearsCredential(t *testing.T) {
	redirects := 0
	g, creds := newGuard(t, apiHandler(t))
	g.OnRedirect(func() { redirects++ })
	if err := creds.SetToken("stale"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	_, err := g.Bootstrap(context.Background())
	if err == nil {
		t.Fatalf("expected bootstrap failure")
	}
	if creds.Token() != "" {
		t.Fatalf("stale token must be cleared")
	}
	if redirects == 0 {
		t.Fatalf("expected a redirect to login")
	}
}

func TestHandleExpiredFiresOnce(t *testing.T) {
	redirects := 0
	g, creds := newGuard(t, apiHandler(t))
	g.OnRedirect(func() { redirects++ })

	if _, err := g.Login(context.Background(), "maria", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	g.HandleExpired()
	g.HandleExpired()
	g.HandleExpired()

	if redirects != 1 {
		t.Fatalf("expected exactly one redirect, got %d", redirects)
	}
	if g.State() != Expired {
		t.Fatalf("expected Expired, got %v", g.State())
	}
	if creds.Token() != "" {
		t.Fatalf("expiry must clear the stored token")
	}
	if g.Identity().ID != 0 {
		t.Fatalf("expiry must clear the identity")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	g, creds := newGuard(t, apiHandler(t))
	if _, err := g.Login(context.Background(), "maria", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	g.Logout()
	if g.State() != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", g.State())
	}
	if creds.Token() != "" || creds.Username() != "" {
		t.Fatalf("logout must clear credentials")
	}
}
