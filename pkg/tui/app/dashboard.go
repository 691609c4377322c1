package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/format"
	"github.com/salcops/ncadmin/pkg/tui/events"
)

// dashboardModel renders the landing view: headline aggregates, deadline
// warnings, and the per-section balance chart. The three widgets load
// independently so one failing endpoint never blanks the others.
type dashboardModel struct {
	deps Deps

	width  int
	height int

	kpis        api.KPIs
	kpisErr     string
	kpisLoading bool

	warnings    []api.CreditNote
	warnErr     string
	warnLoading bool

	balances   []api.SectionBalance
	balErr     string
	balLoading bool
}

type kpisLoadedMsg struct {
	v   api.KPIs
	err error
}

type warningsLoadedMsg struct {
	v   []api.CreditNote
	err error
}

type balancesLoadedMsg struct {
	v   []api.SectionBalance
	err error
}

func newDashboard(deps Deps) *dashboardModel {
	return &dashboardModel{deps: deps}
}

func (m *dashboardModel) reload() tea.Cmd {
	m.kpisLoading = true
	m.warnLoading = true
	m.balLoading = true
	client := m.deps.Client
	return tea.Batch(
		func() tea.Msg {
			v, err := client.KPIs(context.Background())
			if err != nil {
				return failure(err, func(err error) tea.Msg { return kpisLoadedMsg{err: err} })
			}
			return kpisLoadedMsg{v: v}
		},
		func() tea.Msg {
			v, err := client.DeadlineWarnings(context.Background())
			if err != nil {
				return failure(err, func(err error) tea.Msg { return warningsLoadedMsg{err: err} })
			}
			return warningsLoadedMsg{v: v}
		},
		func() tea.Msg {
			v, err := client.BalanceBySection(context.Background())
			if err != nil {
				return failure(err, func(err error) tea.Msg { return balancesLoadedMsg{err: err} })
			}
			return balancesLoadedMsg{v: v}
		},
	)
}

func (m *dashboardModel) onChange(msg events.EntityChangeMsg) tea.Cmd {
	switch msg.Collection {
	case api.CollectionCreditNotes, api.CollectionEncumbrances,
		api.CollectionReversals, api.CollectionBalanceReturns:
		return m.reload()
	}
	return nil
}

func (m *dashboardModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case kpisLoadedMsg:
		m.kpisLoading = false
		m.kpisErr = ""
		if msg.err != nil {
			m.kpisErr = msg.err.Error()
			break
		}
		m.kpis = msg.v
	case warningsLoadedMsg:
		m.warnLoading = false
		m.warnErr = ""
		if msg.err != nil {
			m.warnErr = msg.err.Error()
			break
		}
		m.warnings = msg.v
	case balancesLoadedMsg:
		m.balLoading = false
		m.balErr = ""
		if msg.err != nil {
			m.balErr = msg.err.Error()
			break
		}
		m.balances = msg.v
	case tea.KeyPressMsg:
		if msg.String() == "r" {
			return m.reload()
		}
	}
	return nil
}

func (m *dashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *dashboardModel) View() string {
	th := m.deps.Theme
	var b strings.Builder
	b.WriteString(th.Title.Render("Painel"))
	b.WriteString("\n\n")
	b.WriteString(m.renderKPIs())
	b.WriteString("\n\n")
	b.WriteString(th.Header.Render("Avisos de Prazo"))
	b.WriteString("\n")
	b.WriteString(m.renderWarnings())
	b.WriteString("\n\n")
	b.WriteString(th.Header.Render("Saldo por Seção"))
	b.WriteString("\n")
	b.WriteString(m.renderChart())
	return b.String()
}

func (m *dashboardModel) renderKPIs() string {
	th := m.deps.Theme
	switch {
	case m.kpisLoading:
		return th.Faint.Render("Carregando…")
	case m.kpisErr != "":
		return th.Error.Render("Erro: " + m.kpisErr)
	}
	box := func(label, value string) string {
		return th.Frame.Render(th.Faint.Render(label) + "\n" + th.Title.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Saldo Disponível Total", format.Currency(m.kpis.TotalAvailable)),
		" ",
		box("Valor Empenhado Total", format.Currency(m.kpis.TotalCommitted)),
		" ",
		box("NCs Ativas", fmt.Sprintf("%d", m.kpis.ActiveNotes)),
	)
}

func (m *dashboardModel) renderWarnings() string {
	th := m.deps.Theme
	switch {
	case m.warnLoading:
		return th.Faint.Render("Carregando…")
	case m.warnErr != "":
		return th.Error.Render("Erro: " + m.warnErr)
	case len(m.warnings) == 0:
		return th.Faint.Render("Nenhuma nota com prazo próximo.")
	}
	now := time.Now()
	lines := make([]string, 0, len(m.warnings))
	for _, n := range m.warnings {
		days := int(n.CommitmentDeadline.Sub(now).Hours() / 24)
		text := fmt.Sprintf("NC %s · prazo %s (%d dias) · saldo %s",
			n.Number, format.Date(n.CommitmentDeadline.Time), days,
			format.Currency(n.AvailableBalance))
		lines = append(lines, th.Warning.Render("⚠ "+text))
	}
	return strings.Join(lines, "\n")
}

const maxBarWidth = 40

func (m *dashboardModel) renderChart() string {
	th := m.deps.Theme
	switch {
	case m.balLoading:
		return th.Faint.Render("Carregando…")
	case m.balErr != "":
		return th.Error.Render("Erro: " + m.balErr)
	case len(m.balances) == 0:
		return th.Faint.Render("Sem dados de saldo.")
	}

	maxBal := 0.0
	for _, s := range m.balances {
		if s.Balance > maxBal {
			maxBal = s.Balance
		}
	}

	low, _ := colorful.Hex("#5fd7a7")
	high, _ := colorful.Hex("#5f87ff")

	lines := make([]string, 0, len(m.balances))
	for _, s := range m.balances {
		frac := 0.0
		if maxBal > 0 {
			frac = s.Balance / maxBal
		}
		width := int(frac * maxBarWidth)
		if width < 1 && s.Balance > 0 {
			width = 1
		}
		tint := low.BlendLuv(high, frac)
		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(tint.Hex())).
			Render(strings.Repeat("█", width))
		lines = append(lines, fmt.Sprintf("%-20s %s %s",
			s.Section, bar, th.Faint.Render(format.Currency(s.Balance))))
	}
	return strings.Join(lines, "\n")
}
