package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/format"
	"github.com/salcops/ncadmin/pkg/statement"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/forms"
	"github.com/salcops/ncadmin/pkg/tui/ui/overlay"
)

// statementModel is the read-only consolidated view of one credit note. It
// is reached from the credit-note listing and rebuilt whole on every change.
type statementModel struct {
	deps Deps

	noteID  int64
	st      *statement.Statement
	loading bool
	errText string

	width  int
	height int
}

type statementLoadedMsg struct {
	st  *statement.Statement
	err error
}

func newStatement(deps Deps) *statementModel {
	return &statementModel{deps: deps}
}

func (m *statementModel) reload() tea.Cmd {
	if m.noteID == 0 {
		m.st = nil
		m.errText = ""
		return nil
	}
	m.loading = true
	m.errText = ""
	deps := m.deps
	noteID := m.noteID
	return func() tea.Msg {
		st, err := statement.Build(context.Background(), deps.Client, noteID,
			statement.Options{AllowPartial: deps.AllowPartial})
		if err != nil {
			return failure(err, func(err error) tea.Msg { return statementLoadedMsg{err: err} })
		}
		return statementLoadedMsg{st: st}
	}
}

func (m *statementModel) onChange(msg events.EntityChangeMsg) tea.Cmd {
	if m.noteID == 0 {
		return nil
	}
	switch msg.Collection {
	case api.CollectionCreditNotes, api.CollectionEncumbrances,
		api.CollectionReversals, api.CollectionBalanceReturns:
		return m.reload()
	}
	return nil
}

func (m *statementModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statementLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return nil
		}
		m.st = msg.st
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return events.NavigateCmd(events.ViewCreditNotes)
		case "r":
			return m.reload()
		case "b":
			if m.st != nil {
				form := forms.NewBalanceReturn(m.deps.Theme, m.deps.Client, m.st.Note)
				return showOverlayCmd(form, overlay.Centered())
			}
		}
	}
	return nil
}

func (m *statementModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *statementModel) View() string {
	th := m.deps.Theme
	title := th.Title.Render("Extrato da Nota de Crédito")
	switch {
	case m.noteID == 0:
		return title + "\n\n" + th.Faint.Render("Selecione uma nota na aba Notas de Crédito (enter).")
	case m.loading:
		return title + "\n\n" + th.Faint.Render("Carregando…")
	case m.errText != "":
		return title + "\n\n" + th.Error.Render("Erro: "+m.errText)
	case m.st == nil:
		return title
	}

	st := m.st
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(m.renderHeaderBlock())
	b.WriteString("\n\n")

	b.WriteString(th.Header.Render("Empenhos"))
	b.WriteString("\n")
	if len(st.Encumbrances) == 0 {
		b.WriteString(th.Faint.Render("Nenhum empenho."))
	} else {
		for _, e := range st.Encumbrances {
			b.WriteString(fmt.Sprintf("  %-14s %16s  %s  %s\n",
				e.Number, format.Currency(e.Amount), format.Date(e.Date.Time), e.SectionName()))
		}
	}
	b.WriteString("\n")

	b.WriteString(th.Header.Render("Anulações de Empenho"))
	b.WriteString("\n")
	if len(st.Reversals) == 0 {
		b.WriteString(th.Faint.Render("Nenhuma anulação."))
	} else {
		for _, r := range st.Reversals {
			b.WriteString(fmt.Sprintf("  NE %-11s %16s  %s  %s\n",
				r.EncumbranceNumber, format.Currency(r.Amount), format.Date(r.Date.Time), r.Note))
		}
	}
	b.WriteString("\n")

	b.WriteString(th.Header.Render("Recolhimentos de Saldo"))
	b.WriteString("\n")
	if len(st.Returns) == 0 {
		b.WriteString(th.Faint.Render("Nenhum recolhimento."))
	} else {
		for _, r := range st.Returns {
			b.WriteString(fmt.Sprintf("  %16s  %s  %s\n",
				format.Currency(r.Amount), format.Date(r.Date.Time), r.Note))
		}
	}

	if st.Partial {
		b.WriteString("\n")
		for _, w := range st.Warnings {
			b.WriteString(th.Warning.Render("⚠ " + w))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(th.Faint.Render("b recolhe saldo · r recarrega · esc volta"))
	return b.String()
}

func (m *statementModel) renderHeaderBlock() string {
	th := m.deps.Theme
	n := m.st.Note
	status := string(n.Status)
	switch n.Status {
	case api.StatusActive:
		status = th.Success.Render(status)
	case api.StatusExpired:
		status = th.Error.Render(status)
	default:
		status = th.Faint.Render(status)
	}
	lines := []string{
		th.Title.Render("NC "+n.Number) + "  " + status,
		fmt.Sprintf("Valor: %s · Saldo disponível: %s",
			format.Currency(n.Amount), format.Currency(n.AvailableBalance)),
		fmt.Sprintf("PI %s · ND %s · Fonte %s · PTRES %s · Esfera %s",
			n.InternalPlan, n.ExpenseNature, n.Source, n.PTRES, n.Sphere),
		fmt.Sprintf("Chegada %s · Prazo p/ empenho %s · Seção %s",
			format.Date(n.ArrivalDate.Time), format.Date(n.CommitmentDeadline.Time), n.SectionName()),
	}
	if n.Description != "" {
		lines = append(lines, th.Faint.Render(n.Description))
	}
	return m.deps.Theme.Frame.Render(strings.Join(lines, "\n"))
}
