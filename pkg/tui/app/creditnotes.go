package app

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/cache"
	"github.com/salcops/ncadmin/pkg/format"
	"github.com/salcops/ncadmin/pkg/tui/components/listpane"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/forms"
	"github.com/salcops/ncadmin/pkg/tui/ui/overlay"
)

// creditNotesModel is the filtered, paginated credit-note listing with its
// create/edit/delete/statement/report actions.
type creditNotesModel struct {
	deps Deps

	store *cache.Store[api.CreditNote]
	list  *listpane.Model
	snap  cache.Snapshot[api.CreditNote]

	width  int
	height int
}

type notesLoadedMsg struct {
	snap cache.Snapshot[api.CreditNote]
	err  error
}

type noteFiltersMsg struct{ filters api.Filters }

func newCreditNotes(deps Deps) *creditNotesModel {
	client := deps.Client
	m := &creditNotesModel{
		deps: deps,
		store: cache.New(deps.PageSize, func(ctx context.Context, f api.Filters, page, size int) (api.Page[api.CreditNote], error) {
			return client.ListCreditNotes(ctx, f, page, size)
		}),
	}
	m.list = listpane.New(deps.Theme, []listpane.Column{
		{Title: "Número", Width: 14},
		{Title: "Valor", Width: 16},
		{Title: "Saldo", Width: 16},
		{Title: "PI", Width: 10},
		{Title: "ND", Width: 6},
		{Title: "Prazo", Width: 10},
		{Title: "Seção", Width: 14},
		{Title: "Status", Width: 20},
	})
	return m
}

func (m *creditNotesModel) reload() tea.Cmd {
	return m.load(m.snap.Filters, m.pageOr(1))
}

func (m *creditNotesModel) load(filters api.Filters, page int) tea.Cmd {
	m.list.SetLoading()
	store := m.store
	return func() tea.Msg {
		if err := store.Load(context.Background(), filters, page); err != nil {
			return failure(err, func(err error) tea.Msg { return notesLoadedMsg{err: err} })
		}
		return notesLoadedMsg{snap: store.Snapshot()}
	}
}

func (m *creditNotesModel) refresh() tea.Cmd {
	m.list.SetLoading()
	store := m.store
	return func() tea.Msg {
		if err := store.InvalidateAndReload(context.Background()); err != nil {
			return failure(err, func(err error) tea.Msg { return notesLoadedMsg{err: err} })
		}
		return notesLoadedMsg{snap: store.Snapshot()}
	}
}

func (m *creditNotesModel) onChange(msg events.EntityChangeMsg) tea.Cmd {
	if msg.Collection == api.CollectionCreditNotes {
		return m.refresh()
	}
	return nil
}

func (m *creditNotesModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if msg.err != nil {
			m.list.SetError(msg.err.Error())
			return nil
		}
		m.snap = msg.snap
		m.list.SetRows(m.rows())
		m.list.SetWindow(m.snap.Total, m.snap.Size, m.snap.Window())
	case noteFiltersMsg:
		return m.load(msg.filters, 1)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *creditNotesModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.list.Move(-1)
	case "down", "j":
		m.list.Move(1)
	case "left", "h":
		if m.snap.Window().CanPrev {
			return m.load(m.snap.Filters, m.snap.Page-1)
		}
	case "right", "l":
		if m.snap.Window().CanNext {
			return m.load(m.snap.Filters, m.snap.Page+1)
		}
	case "n":
		return m.openForm(nil)
	case "e":
		if note, ok := m.selected(); ok {
			return m.openForm(&note)
		}
	case "d":
		if note, ok := m.selected(); ok {
			return m.confirmDelete(note)
		}
	case "enter", "s":
		if note, ok := m.selected(); ok {
			return events.StatementCmd(note.ID)
		}
	case "f", "/":
		return m.openFilter()
	case "c":
		if len(m.snap.Filters) > 0 {
			return tea.Batch(m.load(api.Filters{}, 1), events.StatusCmd("Filtros limpos"))
		}
	case "p":
		return m.downloadReport()
	}
	return nil
}

func (m *creditNotesModel) selected() (api.CreditNote, bool) {
	i := m.list.Cursor()
	if i < 0 || i >= len(m.snap.Results) {
		return api.CreditNote{}, false
	}
	return m.snap.Results[i], true
}

func (m *creditNotesModel) openForm(existing *api.CreditNote) tea.Cmd {
	form, err := forms.NewCreditNote(m.deps.Theme, m.deps.Client, m.deps.Sections.Items(), existing)
	if err != nil {
		return events.StatusCmd("%v", err)
	}
	return showOverlayCmd(form, overlay.Centered())
}

func (m *creditNotesModel) confirmDelete(note api.CreditNote) tea.Cmd {
	client := m.deps.Client
	confirm := forms.NewConfirm(m.deps.Theme,
		"Excluir Nota de Crédito",
		fmt.Sprintf("Excluir a NC %s (%s)? Notas com empenhos não podem ser excluídas.",
			note.Number, format.Currency(note.Amount)),
		func(ctx context.Context) error {
			return client.DeleteCreditNote(ctx, note.ID)
		},
		tea.Batch(
			events.EntityChangeCmd("credit-notes", api.CollectionCreditNotes, events.ChangeDelete),
			events.StatusCmd("NC %s excluída", note.Number),
		),
	)
	return showOverlayCmd(confirm, overlay.Centered())
}

// openFilter fetches the full collection first so the plan and
// expense-nature selects offer every known value, then mounts the dialog.
func (m *creditNotesModel) openFilter() tea.Cmd {
	deps := m.deps
	current := m.snap.Filters.Clone()
	return func() tea.Msg {
		page, err := deps.Client.ListCreditNotes(context.Background(), nil, 1, api.MaxPageSize)
		if err != nil {
			return failure(err, func(err error) tea.Msg { return errMsg{err} })
		}
		plans := cache.Distinct(page.Results, func(n api.CreditNote) string { return n.InternalPlan })
		natures := cache.Distinct(page.Results, func(n api.CreditNote) string { return n.ExpenseNature })
		form := forms.NewCreditNoteFilter(deps.Theme, deps.Sections.Items(), plans, natures, current,
			func(f api.Filters) tea.Cmd {
				return func() tea.Msg { return noteFiltersMsg{filters: f} }
			})
		return showOverlayMsg{overlay: form, placement: overlay.Centered()}
	}
}

func (m *creditNotesModel) downloadReport() tea.Cmd {
	deps := m.deps
	filters := m.snap.Filters.Clone()
	return func() tea.Msg {
		pdf, err := deps.Client.ReportPDF(context.Background(), filters, true)
		if err != nil {
			return failure(err, func(err error) tea.Msg { return errMsg{err} })
		}
		if err := os.WriteFile(deps.ReportFile, pdf, 0o644); err != nil {
			return errMsg{fmt.Errorf("salvar relatório: %w", err)}
		}
		return events.StatusMsg{Text: fmt.Sprintf("Relatório salvo em %s", deps.ReportFile)}
	}
}

func (m *creditNotesModel) rows() [][]string {
	rows := make([][]string, len(m.snap.Results))
	for i, n := range m.snap.Results {
		rows[i] = []string{
			n.Number,
			format.Currency(n.Amount),
			format.Currency(n.AvailableBalance),
			n.InternalPlan,
			n.ExpenseNature,
			format.Date(n.CommitmentDeadline.Time),
			n.SectionName(),
			string(n.Status),
		}
	}
	return rows
}

func (m *creditNotesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
}

func (m *creditNotesModel) View() string {
	th := m.deps.Theme
	title := th.Title.Render("Notas de Crédito")
	if len(m.snap.Filters) > 0 {
		title += "  " + th.Warning.Render(fmt.Sprintf("(%d filtros ativos)", len(m.snap.Filters)))
	}
	help := th.Faint.Render("n nova · e edita · d exclui · enter extrato · f filtra · c limpa · p relatório · ←/→ página")
	return title + "\n\n" + m.list.View() + "\n" + help
}

func (m *creditNotesModel) pageOr(fallback int) int {
	if m.snap.Page > 0 {
		return m.snap.Page
	}
	return fallback
}
