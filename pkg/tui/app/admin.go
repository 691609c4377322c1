package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/cache"
	"github.com/salcops/ncadmin/pkg/format"
	"github.com/salcops/ncadmin/pkg/tui/components/listpane"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/forms"
	"github.com/salcops/ncadmin/pkg/tui/ui/overlay"
)

// auditPageSize bounds the audit trail fetch; the server returns newest
// entries first.
const auditPageSize = 100

// adminModel is the role-gated administration area with its nested tabs:
// sections, user accounts, and the audit trail.
type adminModel struct {
	deps Deps

	tab events.AdminTab

	users *cache.ListStore[api.User]
	audit *cache.ListStore[api.AuditLogEntry]

	sectionsList *listpane.Model
	usersList    *listpane.Model
	auditList    *listpane.Model

	width  int
	height int
}

type usersLoadedMsg struct{ err error }

type auditLoadedMsg struct{ err error }

func newAdmin(deps Deps) *adminModel {
	client := deps.Client
	m := &adminModel{
		deps: deps,
		tab:  events.AdminSections,
		users: cache.NewList(func(ctx context.Context) ([]api.User, error) {
			return client.ListUsers(ctx)
		}),
		audit: cache.NewList(func(ctx context.Context) ([]api.AuditLogEntry, error) {
			return client.AuditLogs(ctx, 0, auditPageSize)
		}),
	}
	m.sectionsList = listpane.New(deps.Theme, []listpane.Column{
		{Title: "ID", Width: 6},
		{Title: "Nome", Width: 30},
	})
	m.usersList = listpane.New(deps.Theme, []listpane.Column{
		{Title: "ID", Width: 6},
		{Title: "Usuário", Width: 18},
		{Title: "E-mail", Width: 28},
		{Title: "Perfil", Width: 14},
	})
	m.auditList = listpane.New(deps.Theme, []listpane.Column{
		{Title: "Quando", Width: 19},
		{Title: "Usuário", Width: 14},
		{Title: "Ação", Width: 22},
		{Title: "Detalhes", Width: 40},
	})
	return m
}

func (m *adminModel) reload() tea.Cmd {
	if !m.deps.Guard.IsAdmin() {
		return nil
	}
	switch m.tab {
	case events.AdminUsers:
		return m.loadUsers()
	case events.AdminAudit:
		return m.loadAudit()
	default:
		m.syncSections()
		return nil
	}
}

func (m *adminModel) loadUsers() tea.Cmd {
	m.usersList.SetLoading()
	store := m.users
	return func() tea.Msg {
		if err := store.Reload(context.Background()); err != nil {
			return failure(err, func(err error) tea.Msg { return usersLoadedMsg{err: err} })
		}
		return usersLoadedMsg{}
	}
}

func (m *adminModel) loadAudit() tea.Cmd {
	m.auditList.SetLoading()
	store := m.audit
	return func() tea.Msg {
		if err := store.Reload(context.Background()); err != nil {
			return failure(err, func(err error) tea.Msg { return auditLoadedMsg{err: err} })
		}
		return auditLoadedMsg{}
	}
}

func (m *adminModel) onChange(msg events.EntityChangeMsg) tea.Cmd {
	switch msg.Collection {
	case api.CollectionUsers:
		return m.loadUsers()
	case api.CollectionSections:
		// the shared section store reloads at the root; rows sync on render
		return nil
	}
	return nil
}

func (m *adminModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case sectionsLoadedMsg:
		m.syncSections()
	case usersLoadedMsg:
		if msg.err != nil {
			m.usersList.SetError(msg.err.Error())
			return nil
		}
		m.syncUsers()
	case auditLoadedMsg:
		if msg.err != nil {
			m.auditList.SetError(msg.err.Error())
			return nil
		}
		m.syncAudit()
	case tea.KeyPressMsg:
		if !m.deps.Guard.IsAdmin() {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *adminModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return m.switchTab(1)
	case "shift+tab":
		return m.switchTab(-1)
	case "up", "k":
		m.activeList().Move(-1)
	case "down", "j":
		m.activeList().Move(1)
	case "r":
		return m.reload()
	case "n":
		switch m.tab {
		case events.AdminSections:
			return showOverlayCmd(forms.NewSection(m.deps.Theme, m.deps.Client, nil), overlay.Centered())
		case events.AdminUsers:
			return showOverlayCmd(forms.NewUser(m.deps.Theme, m.deps.Client), overlay.Centered())
		}
	case "e":
		if m.tab == events.AdminSections {
			if sec, ok := m.selectedSection(); ok {
				return showOverlayCmd(forms.NewSection(m.deps.Theme, m.deps.Client, &sec), overlay.Centered())
			}
		}
	case "d":
		switch m.tab {
		case events.AdminSections:
			if sec, ok := m.selectedSection(); ok {
				return m.confirmDeleteSection(sec)
			}
		case events.AdminUsers:
			if user, ok := m.selectedUser(); ok {
				return m.confirmDeleteUser(user)
			}
		}
	}
	return nil
}

func (m *adminModel) switchTab(delta int) tea.Cmd {
	order := []events.AdminTab{events.AdminSections, events.AdminUsers, events.AdminAudit}
	idx := 0
	for i, t := range order {
		if t == m.tab {
			idx = i
		}
	}
	m.tab = order[(idx+len(order)+delta)%len(order)]
	return m.reload()
}

func (m *adminModel) selectedSection() (api.Section, bool) {
	items := m.deps.Sections.Items()
	i := m.sectionsList.Cursor()
	if i < 0 || i >= len(items) {
		return api.Section{}, false
	}
	return items[i], true
}

// selectedUser never yields the acting identity: the self-delete control is
// not offered at all.
func (m *adminModel) selectedUser() (api.User, bool) {
	items := m.users.Items()
	i := m.usersList.Cursor()
	if i < 0 || i >= len(items) {
		return api.User{}, false
	}
	user := items[i]
	if user.ID == m.deps.Guard.Identity().ID {
		return api.User{}, false
	}
	return user, true
}

func (m *adminModel) confirmDeleteSection(sec api.Section) tea.Cmd {
	client := m.deps.Client
	confirm := forms.NewConfirm(m.deps.Theme,
		"Excluir Seção",
		fmt.Sprintf("Excluir a seção %s? Seções referenciadas por notas ou empenhos não podem ser excluídas.", sec.Name),
		func(ctx context.Context) error {
			return client.DeleteSection(ctx, sec.ID)
		},
		tea.Batch(
			events.EntityChangeCmd("admin", api.CollectionSections, events.ChangeDelete),
			events.StatusCmd("Seção %s excluída", sec.Name),
		),
	)
	return showOverlayCmd(confirm, overlay.Centered())
}

func (m *adminModel) confirmDeleteUser(user api.User) tea.Cmd {
	client := m.deps.Client
	confirm := forms.NewConfirm(m.deps.Theme,
		"Excluir Usuário",
		fmt.Sprintf("Excluir o usuário %s?", user.Username),
		func(ctx context.Context) error {
			return client.DeleteUser(ctx, user.ID)
		},
		tea.Batch(
			events.EntityChangeCmd("admin", api.CollectionUsers, events.ChangeDelete),
			events.StatusCmd("Usuário %s excluído", user.Username),
		),
	)
	return showOverlayCmd(confirm, overlay.Centered())
}

func (m *adminModel) syncSections() {
	items := m.deps.Sections.Items()
	rows := make([][]string, len(items))
	for i, s := range items {
		rows[i] = []string{fmt.Sprintf("%d", s.ID), s.Name}
	}
	m.sectionsList.SetRows(rows)
}

func (m *adminModel) syncUsers() {
	items := m.users.Items()
	self := m.deps.Guard.Identity().ID
	rows := make([][]string, len(items))
	for i, u := range items {
		name := u.Username
		if u.ID == self {
			name += " (você)"
		}
		rows[i] = []string{fmt.Sprintf("%d", u.ID), name, u.Email, string(u.Role)}
	}
	m.usersList.SetRows(rows)
}

func (m *adminModel) syncAudit() {
	items := m.audit.Items()
	rows := make([][]string, len(items))
	for i, e := range items {
		rows[i] = []string{format.DateTime(e.Timestamp.Time), e.Username, e.Action, e.Details}
	}
	m.auditList.SetRows(rows)
}

func (m *adminModel) activeList() *listpane.Model {
	switch m.tab {
	case events.AdminUsers:
		return m.usersList
	case events.AdminAudit:
		return m.auditList
	default:
		return m.sectionsList
	}
}

func (m *adminModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	for _, l := range []*listpane.Model{m.sectionsList, m.usersList, m.auditList} {
		l.SetSize(width, height-5)
	}
}

func (m *adminModel) View() string {
	th := m.deps.Theme
	if !m.deps.Guard.IsAdmin() {
		return th.Title.Render("Administração") + "\n\n" +
			th.Frame.Render(th.Error.Render("Acesso negado")+"\n"+
				th.Faint.Render("Esta área exige o perfil ADMINISTRADOR."))
	}

	tabs := ""
	for _, t := range []struct {
		tab   events.AdminTab
		label string
	}{
		{events.AdminSections, "Seções"},
		{events.AdminUsers, "Usuários"},
		{events.AdminAudit, "Auditoria"},
	} {
		if tabs != "" {
			tabs += "  "
		}
		if t.tab == m.tab {
			tabs += th.TabActive.Render(t.label)
		} else {
			tabs += th.TabIdle.Render(t.label)
		}
	}

	var help string
	switch m.tab {
	case events.AdminSections:
		help = "n nova · e renomeia · d exclui · tab alterna"
	case events.AdminUsers:
		help = "n novo · d exclui · tab alterna"
	default:
		help = "r recarrega · tab alterna"
	}

	return th.Title.Render("Administração") + "\n" + tabs + "\n\n" +
		m.activeList().View() + "\n" + th.Faint.Render(help)
}
