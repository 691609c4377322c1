package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/credstore"
	"github.com/salcops/ncadmin/pkg/session"
	"github.com/salcops/ncadmin/pkg/tui/components/overlaypane"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
	"github.com/salcops/ncadmin/pkg/tui/ui/overlay"
)

// stubOverlay is a minimal dialog for router tests.
type stubOverlay struct{ text string }

func (s *stubOverlay) Init() tea.Cmd                                  { return nil }
func (s *stubOverlay) Update(tea.Msg) (overlaypane.Overlay, tea.Cmd)  { return s, nil }
func (s *stubOverlay) View() string                                   { return s.text }
func (s *stubOverlay) SetSize(int, int)                               {}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	client, err := api.New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	creds, err := credstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open credstore: %v", err)
	}
	m := New(Deps{
		Client:     client,
		Guard:      session.New(client, creds),
		Theme:      theme.New(),
		PageSize:   10,
		ReportFile: "relatorio.pdf",
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: s, Code: rune(s[0])}
}

func TestStartsOnDashboard(t *testing.T) {
	m := newTestModel(t)
	if m.active != events.ViewDashboard {
		t.Fatalf("expected dashboard, got %v", m.active)
	}
	if m.activeModel() != viewModel(m.dashboard) {
		t.Fatalf("active model mismatch")
	}
}

func TestNumberKeysSwitchViews(t *testing.T) {
	m := newTestModel(t)
	cases := []struct {
		key  string
		view events.View
	}{
		{"2", events.ViewCreditNotes},
		{"3", events.ViewEncumbrances},
		{"4", events.ViewStatement},
		{"5", events.ViewAdmin},
		{"1", events.ViewDashboard},
	}
	for _, c := range cases {
		m.Update(key(c.key))
		if m.active != c.view {
			t.Fatalf("key %s: expected view %v, got %v", c.key, c.view, m.active)
		}
	}
}

func TestNavigateMsgCarriesStatementTarget(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(events.NavigateMsg{View: events.ViewStatement, NoteID: 42})
	if m.active != events.ViewStatement {
		t.Fatalf("expected statement view, got %v", m.active)
	}
	if m.stmt.noteID != 42 {
		t.Fatalf("expected note 42, got %d", m.stmt.noteID)
	}
	if cmd == nil {
		t.Fatalf("entering the statement view must trigger a reload")
	}
}

func TestNavigateBackKeepsStatementTarget(t *testing.T) {
	m := newTestModel(t)
	m.Update(events.NavigateMsg{View: events.ViewStatement, NoteID: 42})
	m.Update(events.NavigateMsg{View: events.ViewCreditNotes})
	m.Update(events.NavigateMsg{View: events.ViewStatement})
	if m.stmt.noteID != 42 {
		t.Fatalf("statement target must survive navigation, got %d", m.stmt.noteID)
	}
}

func TestNavigateMsgSelectsAdminTab(t *testing.T) {
	m := newTestModel(t)
	m.Update(events.NavigateMsg{View: events.ViewAdmin, AdminTab: events.AdminAudit})
	if m.admin.tab != events.AdminAudit {
		t.Fatalf("expected audit tab, got %v", m.admin.tab)
	}
}

func TestStatusMsgUpdatesStatusBar(t *testing.T) {
	m := newTestModel(t)
	m.Update(events.StatusMsg{Text: "Nota de crédito salva"})
	if !strings.Contains(m.renderStatus(), "Nota de crédito salva") {
		t.Fatalf("status bar missing text: %q", m.renderStatus())
	}
}

func TestSessionExpiredQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(events.SessionExpiredMsg{})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg == nil {
		t.Fatalf("expected a quit message")
	}
}

func TestOverlayCapturesKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("2"))

	m.Update(showOverlayMsg{overlay: &stubOverlay{text: "dialog"}, placement: overlay.Centered()})
	if !m.pane.Active() {
		t.Fatalf("expected active overlay")
	}

	// number keys must go to the overlay, not the router
	m.Update(key("1"))
	if m.active != events.ViewCreditNotes {
		t.Fatalf("overlay must capture keys; view changed to %v", m.active)
	}

	m.Update(events.OverlayCloseMsg{})
	if m.pane.Active() {
		t.Fatalf("expected overlay closed")
	}
	m.Update(key("1"))
	if m.active != events.ViewDashboard {
		t.Fatalf("router must resume after close, got %v", m.active)
	}
}

func TestAdminViewGatedForOperators(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("5"))
	out := m.admin.View()
	if !strings.Contains(out, "Acesso negado") {
		t.Fatalf("expected access denied panel:\n%s", out)
	}
}

// newAdminTestModel logs the guard in as an administrator against a stub
// server and loads the users tab.
func newAdminTestModel(t *testing.T) *Model {
	t.Helper()
	self := api.Identity{ID: 1, Username: "maria", Role: api.RoleAdministrator}
	users := []api.User{
		{ID: 1, Username: "maria", Email: "maria@exemplo.mil.br", Role: api.RoleAdministrator},
		{ID: 2, Username: "joao", Email: "joao@exemplo.mil.br", Role: api.RoleOperator},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.Token{AccessToken: "tok", TokenType: "bearer"})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(self)
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(users)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	creds, err := credstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open credstore: %v", err)
	}
	guard := session.New(client, creds)
	if _, err := guard.Login(context.Background(), "maria", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	m := New(Deps{
		Client:   client,
		Guard:    guard,
		Theme:    theme.New(),
		PageSize: 10,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.admin.tab = events.AdminUsers
	if err := m.admin.users.Reload(context.Background()); err != nil {
		t.Fatalf("load users: %v", err)
	}
	m.admin.syncUsers()
	return m
}

func TestAdminNeverOffersSelfDelete(t *testing.T) {
	m := newAdminTestModel(t)
	a := m.admin

	// cursor starts on the acting identity
	if _, ok := a.selectedUser(); ok {
		t.Fatalf("acting identity must not be selectable for deletion")
	}
	if cmd := a.Update(key("d")); cmd != nil {
		t.Fatalf("delete on own row must open no confirm dialog")
	}
	if !strings.Contains(a.View(), "maria (você)") {
		t.Fatalf("own row must carry the marker:\n%s", a.View())
	}

	a.usersList.Move(1)
	user, ok := a.selectedUser()
	if !ok || user.Username != "joao" {
		t.Fatalf("other accounts must stay deletable, got %+v ok=%v", user, ok)
	}
	if cmd := a.Update(key("d")); cmd == nil {
		t.Fatalf("delete on another account must open the confirm dialog")
	}
}

func TestViewRendersHeaderAndBody(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "Notas de Crédito") {
		t.Fatalf("expected tab labels in header:\n%s", out)
	}
	if !strings.Contains(out, "Painel") {
		t.Fatalf("expected dashboard tab label:\n%s", out)
	}
}
