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

// encumbrancesModel is the paginated encumbrance listing, filterable by
// owning credit note, with its create/delete/reversal actions.
type encumbrancesModel struct {
	deps Deps

	store *cache.Store[api.Encumbrance]
	list  *listpane.Model
	snap  cache.Snapshot[api.Encumbrance]

	width  int
	height int
}

type encsLoadedMsg struct {
	snap cache.Snapshot[api.Encumbrance]
	err  error
}

type encFiltersMsg struct{ filters api.Filters }

func newEncumbrances(deps Deps) *encumbrancesModel {
	client := deps.Client
	m := &encumbrancesModel{
		deps: deps,
		store: cache.New(deps.PageSize, func(ctx context.Context, f api.Filters, page, size int) (api.Page[api.Encumbrance], error) {
			return client.ListEncumbrances(ctx, f, page, size)
		}),
	}
	m.list = listpane.New(deps.Theme, []listpane.Column{
		{Title: "Número", Width: 14},
		{Title: "Valor", Width: 16},
		{Title: "Data", Width: 10},
		{Title: "NC", Width: 14},
		{Title: "Seção", Width: 14},
		{Title: "Observação", Width: 24},
	})
	return m
}

func (m *encumbrancesModel) reload() tea.Cmd {
	page := m.snap.Page
	if page < 1 {
		page = 1
	}
	return m.load(m.snap.Filters, page)
}

func (m *encumbrancesModel) load(filters api.Filters, page int) tea.Cmd {
	m.list.SetLoading()
	store := m.store
	return func() tea.Msg {
		if err := store.Load(context.Background(), filters, page); err != nil {
			return failure(err, func(err error) tea.Msg { return encsLoadedMsg{err: err} })
		}
		return encsLoadedMsg{snap: store.Snapshot()}
	}
}

func (m *encumbrancesModel) refresh() tea.Cmd {
	m.list.SetLoading()
	store := m.store
	return func() tea.Msg {
		if err := store.InvalidateAndReload(context.Background()); err != nil {
			return failure(err, func(err error) tea.Msg { return encsLoadedMsg{err: err} })
		}
		return encsLoadedMsg{snap: store.Snapshot()}
	}
}

func (m *encumbrancesModel) onChange(msg events.EntityChangeMsg) tea.Cmd {
	if msg.Collection == api.CollectionEncumbrances {
		return m.refresh()
	}
	return nil
}

func (m *encumbrancesModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case encsLoadedMsg:
		if msg.err != nil {
			m.list.SetError(msg.err.Error())
			return nil
		}
		m.snap = msg.snap
		m.list.SetRows(m.rows())
		m.list.SetWindow(m.snap.Total, m.snap.Size, m.snap.Window())
	case encFiltersMsg:
		return m.load(msg.filters, 1)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *encumbrancesModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
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
		return m.openForm()
	case "d":
		if enc, ok := m.selected(); ok {
			return m.confirmDelete(enc)
		}
	case "a":
		if enc, ok := m.selected(); ok {
			form := forms.NewReversal(m.deps.Theme, m.deps.Client, enc)
			return showOverlayCmd(form, overlay.Centered())
		}
	case "f", "/":
		return m.openFilter()
	case "c":
		if len(m.snap.Filters) > 0 {
			return tea.Batch(m.load(api.Filters{}, 1), events.StatusCmd("Filtros limpos"))
		}
	}
	return nil
}

func (m *encumbrancesModel) selected() (api.Encumbrance, bool) {
	i := m.list.Cursor()
	if i < 0 || i >= len(m.snap.Results) {
		return api.Encumbrance{}, false
	}
	return m.snap.Results[i], true
}

// openForm fetches the active notes first; the dialog only offers notes that
// can still be committed against.
func (m *encumbrancesModel) openForm() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		page, err := deps.Client.ListCreditNotes(context.Background(),
			api.Filters{"status": string(api.StatusActive)}, 1, api.MaxPageSize)
		if err != nil {
			return failure(err, func(err error) tea.Msg { return errMsg{err} })
		}
		form, err := forms.NewEncumbrance(deps.Theme, deps.Client, page.Results, deps.Sections.Items())
		if err != nil {
			return events.StatusMsg{Text: err.Error()}
		}
		return showOverlayMsg{overlay: form, placement: overlay.Centered()}
	}
}

func (m *encumbrancesModel) confirmDelete(enc api.Encumbrance) tea.Cmd {
	client := m.deps.Client
	confirm := forms.NewConfirm(m.deps.Theme,
		"Excluir Empenho",
		fmt.Sprintf("Excluir a NE %s (%s)? Empenhos com anulações não podem ser excluídos.",
			enc.Number, format.Currency(enc.Amount)),
		func(ctx context.Context) error {
			return client.DeleteEncumbrance(ctx, enc.ID)
		},
		tea.Batch(
			events.EntityChangeCmd("encumbrances", api.CollectionEncumbrances, events.ChangeDelete),
			events.EntityChangeCmd("encumbrances", api.CollectionCreditNotes, events.ChangeUpdate),
			events.StatusCmd("NE %s excluída", enc.Number),
		),
	)
	return showOverlayCmd(confirm, overlay.Centered())
}

// openFilter offers the known credit notes as the single filter dimension.
func (m *encumbrancesModel) openFilter() tea.Cmd {
	deps := m.deps
	current := m.snap.Filters.Clone()
	return func() tea.Msg {
		page, err := deps.Client.ListCreditNotes(context.Background(), nil, 1, api.MaxPageSize)
		if err != nil {
			return failure(err, func(err error) tea.Msg { return errMsg{err} })
		}
		notes := page.Results
		labels := make([]string, 0, len(notes)+1)
		labels = append(labels, "(todas)")
		for _, n := range notes {
			labels = append(labels, n.Number)
		}
		value := "(todas)"
		if raw := current["nota_credito_id"]; raw != "" {
			for _, n := range notes {
				if fmt.Sprintf("%d", n.ID) == raw {
					value = n.Number
				}
			}
		}
		form := forms.New(deps.Theme, forms.Config{
			ID:    events.ComponentID("form-enc-filter"),
			Title: "Filtrar Empenhos",
			Fields: []forms.Field{
				{Key: "nota", Label: "Nota de Crédito", Options: labels, Value: value},
			},
			OnDone: func(v forms.Values) tea.Cmd {
				f := api.Filters{}
				if sel := v["nota"]; sel != "(todas)" {
					for _, n := range notes {
						if n.Number == sel {
							f["nota_credito_id"] = fmt.Sprintf("%d", n.ID)
						}
					}
				}
				return func() tea.Msg { return encFiltersMsg{filters: f} }
			},
		})
		return showOverlayMsg{overlay: form, placement: overlay.Centered()}
	}
}

func (m *encumbrancesModel) rows() [][]string {
	rows := make([][]string, len(m.snap.Results))
	for i, e := range m.snap.Results {
		rows[i] = []string{
			e.Number,
			format.Currency(e.Amount),
			format.Date(e.Date.Time),
			e.NoteNumber(),
			e.SectionName(),
			e.Note,
		}
	}
	return rows
}

func (m *encumbrancesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
}

func (m *encumbrancesModel) View() string {
	th := m.deps.Theme
	title := th.Title.Render("Empenhos")
	if len(m.snap.Filters) > 0 {
		title += "  " + th.Warning.Render("(filtrado por NC)")
	}
	help := th.Faint.Render("n novo · d exclui · a anula · f filtra · c limpa · ←/→ página")
	return title + "\n\n" + m.list.View() + "\n" + help
}
