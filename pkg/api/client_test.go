package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestLoginSendsFormGrant(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "maria" || r.PostForm.Get("password") != "s3cret" {
			t.Fatalf("unexpected form %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(Token{AccessToken: "abc", TokenType: "bearer"})
	}))

	tok, err := c.Login(context.Background(), "maria", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != "abc" {
		t.Fatalf("unexpected token %+v", tok)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		_ = json.NewEncoder(w).Encode(Identity{ID: 1, Username: "maria"})
	}), WithToken(func() string { return "tok123" }))

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnauthorizedFiresExpiredHandlerOnce(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}),
		WithToken(func() string { return "stale" }),
		WithExpiredHandler(func() { calls++ }))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one handler call, got %d", calls)
	}
}

// A 401 on the token exchange is a credential problem, not an expired
// session: the handler must stay quiet.
func TestLoginUnauthorizedIsPlainError(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), WithExpiredHandler(func() { calls++ }))

	_, err := c.Login(context.Background(), "maria", "wrong")
	re, ok := IsRequestError(err)
	if !ok || re.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 RequestError, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expired handler must not fire on login failure, got %d calls", calls)
	}
}

// The token exchange is unauthenticated even when a credential is stored: the
// bearer must not be attached, and a 401 must stay a plain request error
// instead of tearing down the session.
func TestTokenExchangeOmitsStoredBearer(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("token exchange must not carry a bearer, got %q", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}),
		WithToken(func() string { return "still-valid" }),
		WithExpiredHandler(func() { calls++ }))

	_, err := c.Login(context.Background(), "maria", "wrong")
	re, ok := IsRequestError(err)
	if !ok || re.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 RequestError, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expired handler must not fire on login failure, got %d calls", calls)
	}
}

func TestServerDetailSurfacesAsError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"detail": "Nota de crédito possui empenhos",
		})
	}))

	err := c.DeleteCreditNote(context.Background(), 7)
	re, ok := IsRequestError(err)
	if !ok {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if re.Status != http.StatusConflict || re.Detail != "Nota de crédito possui empenhos" {
		t.Fatalf("unexpected request error %+v", re)
	}
}

func TestErrorWithoutDetailFallsBackToStatusText(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := c.DeleteSection(context.Background(), 1)
	re, ok := IsRequestError(err)
	if !ok {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if re.Detail != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("unexpected detail %q", re.Detail)
	}
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/empenhos/5" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.DeleteEncumbrance(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListCreditNotesQuery(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "10" {
			t.Fatalf("unexpected paging %v", q)
		}
		if q.Get("status") != "Ativa" || q.Get("plano_interno") != "ABC" {
			t.Fatalf("unexpected filters %v", q)
		}
		_ = json.NewEncoder(w).Encode(Page[CreditNote]{
			Total: 25, Page: 2, Size: 10,
			Results: []CreditNote{{ID: 11, Number: "2026NC000011"}},
		})
	}))

	page, err := c.ListCreditNotes(context.Background(),
		Filters{"status": "Ativa", "plano_interno": "ABC"}, 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 25 || len(page.Results) != 1 || page.Results[0].Number != "2026NC000011" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestReportPDFBinary(t *testing.T) {
	payload := []byte("%PDF-1.7 fake")
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/relatorios/pdf" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("incluir_detalhes") != "true" {
			t.Fatalf("expected incluir_detalhes=true, got %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(payload)
	}))

	got, err := c.ReportPDF(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %q", got)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("localhost:8000"); err == nil {
		t.Fatalf("expected error for non-absolute url")
	}
}

func TestNetworkErrorIsClassified(t *testing.T) {
	c, err := New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = c.Me(context.Background())
	if !errors.Is(err, ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}
}
