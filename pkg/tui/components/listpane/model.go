// Package listpane renders a paginated table with a cursor, shared by every
// collection view.
package listpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"github.com/salcops/ncadmin/pkg/pagination"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// Model is the table state. Rows are plain cells; the caller formats values
// before handing them over.
type Model struct {
	th     theme.Theme
	cols   []Column
	rows   [][]string
	cursor int

	width  int
	height int

	loading bool
	errText string

	// pagination footer state; zero Window means no controls.
	total  int
	size   int
	window pagination.Window
}

// New builds an empty table with the given columns.
func New(th theme.Theme, cols []Column) *Model {
	return &Model{th: th, cols: cols}
}

// SetSize bounds the rendered table.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRows replaces the visible rows and clamps the cursor.
func (m *Model) SetRows(rows [][]string) {
	m.rows = rows
	m.loading = false
	m.errText = ""
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetWindow records the pagination state rendered in the footer.
func (m *Model) SetWindow(total, size int, w pagination.Window) {
	m.total = total
	m.size = size
	m.window = w
}

// SetLoading switches the pane to its loading placeholder.
func (m *Model) SetLoading() {
	m.loading = true
	m.errText = ""
}

// SetError switches the pane to an error panel; existing rows are dropped.
func (m *Model) SetError(text string) {
	m.loading = false
	m.errText = text
	m.rows = nil
}

// Move shifts the cursor by delta, clamped to the visible rows.
func (m *Model) Move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Cursor returns the selected row index, or -1 when the table is empty.
func (m *Model) Cursor() int {
	if len(m.rows) == 0 {
		return -1
	}
	return m.cursor
}

// Len returns the number of visible rows.
func (m *Model) Len() int { return len(m.rows) }

// Window returns the current pagination window.
func (m *Model) Window() pagination.Window { return m.window }

// View renders the table, or the loading/error placeholder.
func (m *Model) View() string {
	switch {
	case m.loading:
		return m.th.Faint.Render("Carregando…")
	case m.errText != "":
		return m.th.Error.Render("Erro: " + m.errText)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(m.th.Faint.Render("Nenhum registro encontrado."))
		return b.String()
	}

	for i, row := range m.rows {
		line := m.renderRow(row)
		if i == m.cursor {
			line = m.th.Selected.Render("› ") + m.th.Selected.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if footer := m.renderFooter(); footer != "" {
		b.WriteString(footer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderHeader() string {
	cells := make([]string, len(m.cols))
	for i, col := range m.cols {
		cells[i] = cell(col.Title, col.Width)
	}
	return "  " + m.th.Header.Render(strings.Join(cells, "  "))
}

func (m *Model) renderRow(row []string) string {
	cells := make([]string, len(m.cols))
	for i, col := range m.cols {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		cells[i] = cell(v, col.Width)
	}
	return strings.Join(cells, "  ")
}

func (m *Model) renderFooter() string {
	if !pagination.Visible(m.total, m.size) {
		return ""
	}
	w := m.window
	page := (w.StartItem-1)/max(m.size, 1) + 1
	text := fmt.Sprintf("Página %d/%d · %d–%d de %d", page, w.TotalPages, w.StartItem, w.EndItem, m.total)
	hints := make([]string, 0, 2)
	if w.CanPrev {
		hints = append(hints, "← anterior")
	}
	if w.CanNext {
		hints = append(hints, "próxima →")
	}
	if len(hints) > 0 {
		text += "   " + strings.Join(hints, " · ")
	}
	return m.th.Faint.Render(text)
}

func cell(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = truncate.StringWithTail(s, uint(width), "…")
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
