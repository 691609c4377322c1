// Package app hosts the Bubble Tea program for the ncadmin TUI: the view
// router, the status bar, and the single-overlay modal host.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/cache"
	"github.com/salcops/ncadmin/pkg/session"
	"github.com/salcops/ncadmin/pkg/tui/components/overlaypane"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
	"github.com/salcops/ncadmin/pkg/tui/ui/overlay"
)

// Deps carries everything the views share.
type Deps struct {
	Client       *api.Client
	Guard        *session.Guard
	Theme        theme.Theme
	PageSize     int
	AllowPartial bool
	ReportFile   string

	// Sections is the full-section cache consumed by forms, filters, and
	// the administration area.
	Sections *cache.ListStore[api.Section]
}

// messages shared across view files.
type errMsg struct{ err error }

type sectionsLoadedMsg struct{}

type showOverlayMsg struct {
	overlay   overlaypane.Overlay
	placement overlay.Placement
}

func showOverlayCmd(o overlaypane.Overlay, p overlay.Placement) tea.Cmd {
	return func() tea.Msg { return showOverlayMsg{overlay: o, placement: p} }
}

// failure routes an error to the right message: session expiry escalates,
// superseded loads vanish, everything else lands in fallback.
func failure(err error, fallback func(error) tea.Msg) tea.Msg {
	switch {
	case errors.Is(err, api.ErrSessionExpired):
		return events.SessionExpiredMsg{}
	case errors.Is(err, cache.ErrSuperseded):
		return nil
	default:
		return fallback(err)
	}
}

// Model is the root TUI state.
type Model struct {
	deps Deps

	active events.View
	width  int
	height int
	status string

	pane *overlaypane.Model

	dashboard *dashboardModel
	notes     *creditNotesModel
	encs      *encumbrancesModel
	stmt      *statementModel
	admin     *adminModel
}

// New builds the root model and its views.
func New(deps Deps) *Model {
	if deps.PageSize < 1 {
		deps.PageSize = 10
	}
	if deps.Sections == nil {
		client := deps.Client
		deps.Sections = cache.NewList(func(ctx context.Context) ([]api.Section, error) {
			return client.ListSections(ctx)
		})
	}
	m := &Model{
		deps:   deps,
		active: events.ViewDashboard,
		pane:   overlaypane.New(80, 24),
	}
	m.dashboard = newDashboard(deps)
	m.notes = newCreditNotes(deps)
	m.encs = newEncumbrances(deps)
	m.stmt = newStatement(deps)
	m.admin = newAdmin(deps)
	return m
}

// Init loads the section cache and the landing view.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSections(), m.dashboard.reload())
}

func (m *Model) loadSections() tea.Cmd {
	store := m.deps.Sections
	return func() tea.Msg {
		if err := store.Reload(context.Background()); err != nil {
			return failure(err, func(err error) tea.Msg { return errMsg{err} })
		}
		return sectionsLoadedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
		return m, nil

	case tea.KeyPressMsg:
		if m.pane.Active() {
			return m, m.pane.Update(msg)
		}
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
		return m, m.activeModel().Update(msg)

	case showOverlayMsg:
		return m, m.pane.Show(msg.overlay, msg.placement)

	case events.OverlayCloseMsg:
		m.pane.Close()
		return m, nil

	case events.NavigateMsg:
		return m, m.setView(msg)

	case events.EntityChangeMsg:
		if msg.Collection == api.CollectionSections {
			cmds = append(cmds, m.loadSections())
		}
		cmds = append(cmds,
			m.notes.onChange(msg),
			m.encs.onChange(msg),
			m.stmt.onChange(msg),
			m.admin.onChange(msg),
			m.dashboard.onChange(msg),
		)
		return m, tea.Batch(cmds...)

	case events.StatusMsg:
		m.status = msg.Text
		return m, nil

	case events.SessionExpiredMsg:
		return m, tea.Quit

	case errMsg:
		m.status = "ERR: " + msg.err.Error()
		return m, nil
	}

	// everything else (async load results) goes to the overlay and every
	// view; each consumer matches on its own message types.
	cmds = append(cmds,
		m.pane.Update(msg),
		m.dashboard.Update(msg),
		m.notes.Update(msg),
		m.encs.Update(msg),
		m.stmt.Update(msg),
		m.admin.Update(msg),
	)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleGlobalKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "1":
		return m.setView(events.NavigateMsg{View: events.ViewDashboard}), true
	case "2":
		return m.setView(events.NavigateMsg{View: events.ViewCreditNotes}), true
	case "3":
		return m.setView(events.NavigateMsg{View: events.ViewEncumbrances}), true
	case "4":
		return m.setView(events.NavigateMsg{View: events.ViewStatement}), true
	case "5":
		return m.setView(events.NavigateMsg{View: events.ViewAdmin}), true
	}
	return nil, false
}

// setView activates a view and refreshes its data, matching the page
// navigation of the server-rendered client: entering a view always reloads.
func (m *Model) setView(nav events.NavigateMsg) tea.Cmd {
	m.active = nav.View
	switch nav.View {
	case events.ViewDashboard:
		return m.dashboard.reload()
	case events.ViewCreditNotes:
		return m.notes.reload()
	case events.ViewEncumbrances:
		return m.encs.reload()
	case events.ViewStatement:
		if nav.NoteID > 0 {
			m.stmt.noteID = nav.NoteID
		}
		return m.stmt.reload()
	case events.ViewAdmin:
		if nav.AdminTab != "" {
			m.admin.tab = nav.AdminTab
		}
		return m.admin.reload()
	}
	return nil
}

func (m *Model) activeModel() viewModel {
	switch m.active {
	case events.ViewCreditNotes:
		return m.notes
	case events.ViewEncumbrances:
		return m.encs
	case events.ViewStatement:
		return m.stmt
	case events.ViewAdmin:
		return m.admin
	default:
		return m.dashboard
	}
}

// viewModel is the contract every tab view implements.
type viewModel interface {
	Update(tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	reload() tea.Cmd
}

func (m *Model) applySizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := m.height - 3
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.pane.SetSize(m.width, bodyHeight)
	for _, v := range []viewModel{m.dashboard, m.notes, m.encs, m.stmt, m.admin} {
		v.SetSize(m.width, bodyHeight)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	m.pane.SetBackground(m.activeModel().View())

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.pane.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

var tabOrder = []struct {
	view  events.View
	label string
}{
	{events.ViewDashboard, "1 Painel"},
	{events.ViewCreditNotes, "2 Notas de Crédito"},
	{events.ViewEncumbrances, "3 Empenhos"},
	{events.ViewStatement, "4 Extrato"},
	{events.ViewAdmin, "5 Administração"},
}

func (m *Model) renderHeader() string {
	th := m.deps.Theme
	tabs := make([]string, 0, len(tabOrder))
	for _, t := range tabOrder {
		if t.view == m.active {
			tabs = append(tabs, th.TabActive.Render(t.label))
		} else {
			tabs = append(tabs, th.TabIdle.Render(t.label))
		}
	}
	identity := m.deps.Guard.Identity()
	who := fmt.Sprintf("%s (%s)", identity.Username, identity.Role)
	line := strings.Join(tabs, "  ")
	gap := m.width - lipgloss.Width(line) - lipgloss.Width(who) - 1
	if gap < 1 {
		gap = 1
	}
	return line + strings.Repeat(" ", gap) + th.Faint.Render(who)
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return m.deps.Theme.Status.Render("q sai · 1-5 troca de aba")
	}
	return m.deps.Theme.Status.Render(m.status)
}

// Run launches the interactive TUI program.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
