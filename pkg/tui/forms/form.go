// Package forms implements the modal create/edit dialogs. Every dialog is a
// Model built from field definitions plus validate/submit closures; the
// shared plumbing handles focus traversal, select cycling, busy state, and
// the success events.
package forms

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/tui/components/overlaypane"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

// Values holds the raw field values keyed by Field.Key.
type Values map[string]string

// Field describes one form row. A non-empty Options slice makes it a select
// cycled with left/right; otherwise it is a text input.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Options     []string
	Value       string
}

// Config wires a dialog together.
type Config struct {
	ID     events.ComponentID
	Title  string
	Fields []Field

	// Validate runs before Submit; a non-nil error is shown inline and
	// nothing is sent.
	Validate func(Values) error
	// Submit performs the mutation. Nil means the form is local-only and
	// completes immediately.
	Submit func(context.Context, Values) error
	// OnDone produces the follow-up command after success, alongside the
	// overlay close.
	OnDone func(Values) tea.Cmd
}

// Model is a hosted modal form.
type Model struct {
	th  theme.Theme
	cfg Config

	inputs  []textinput.Model
	indexes []int
	focus   int

	busy   bool
	errMsg string

	width  int
	height int
}

// New builds the form with the first field focused.
func New(th theme.Theme, cfg Config) *Model {
	m := &Model{
		th:      th,
		cfg:     cfg,
		inputs:  make([]textinput.Model, len(cfg.Fields)),
		indexes: make([]int, len(cfg.Fields)),
	}
	for i, f := range cfg.Fields {
		if len(f.Options) > 0 {
			m.indexes[i] = optionIndex(f.Options, f.Value)
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 256
		ti.VirtualCursor = true
		ti.SetValue(f.Value)
		m.inputs[i] = ti
	}
	m.syncFocus()
	return m
}

// ID exposes the component identifier used in emitted events.
func (m *Model) ID() events.ComponentID { return m.cfg.ID }

// Values snapshots the current field values.
func (m *Model) Values() Values {
	v := make(Values, len(m.cfg.Fields))
	for i, f := range m.cfg.Fields {
		if len(f.Options) > 0 {
			v[f.Key] = f.Options[m.indexes[i]]
		} else {
			v[f.Key] = strings.TrimSpace(m.inputs[i].Value())
		}
	}
	return v
}

// Init implements overlaypane.Overlay.
func (m *Model) Init() tea.Cmd {
	if cmd := m.syncFocus(); cmd != nil {
		return cmd
	}
	return nil
}

// SetSize implements overlaypane.Overlay.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	inner := width - 10
	if inner < 20 {
		inner = 20
	}
	for i := range m.inputs {
		if len(m.cfg.Fields[i].Options) == 0 {
			m.inputs[i].SetWidth(inner - 22)
		}
	}
}

type submitDoneMsg struct {
	id  events.ComponentID
	err error
}

// Update implements overlaypane.Overlay.
func (m *Model) Update(msg tea.Msg) (overlaypane.Overlay, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		if msg.id != m.cfg.ID {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, m.doneCmd()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.textFocused() {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.busy {
		return nil
	}
	switch msg.String() {
	case "esc":
		return events.OverlayCloseCmd(m.cfg.ID)
	case "enter":
		return m.submit()
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "left":
		if m.cycle(-1) {
			return nil
		}
	case "right":
		if m.cycle(1) {
			return nil
		}
	}

	if m.textFocused() {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.errMsg = ""
		return cmd
	}
	return nil
}

func (m *Model) submit() tea.Cmd {
	values := m.Values()
	if m.cfg.Validate != nil {
		if err := m.cfg.Validate(values); err != nil {
			m.errMsg = err.Error()
			return nil
		}
	}
	m.errMsg = ""
	if m.cfg.Submit == nil {
		return m.doneCmd()
	}
	m.busy = true
	id := m.cfg.ID
	submit := m.cfg.Submit
	return func() tea.Msg {
		return submitDoneMsg{id: id, err: submit(context.Background(), values)}
	}
}

func (m *Model) doneCmd() tea.Cmd {
	cmds := []tea.Cmd{events.OverlayCloseCmd(m.cfg.ID)}
	if m.cfg.OnDone != nil {
		if cmd := m.cfg.OnDone(m.Values()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.cfg.Fields)
	if n == 0 {
		return nil
	}
	m.focus = (m.focus + n + delta) % n
	return m.syncFocus()
}

func (m *Model) cycle(delta int) bool {
	opts := m.cfg.Fields[m.focus].Options
	if len(opts) == 0 {
		return false
	}
	m.indexes[m.focus] = (m.indexes[m.focus] + len(opts) + delta) % len(opts)
	return true
}

func (m *Model) textFocused() bool {
	return m.focus < len(m.cfg.Fields) && len(m.cfg.Fields[m.focus].Options) == 0
}

func (m *Model) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if len(m.cfg.Fields[i].Options) > 0 {
			continue
		}
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// View implements overlaypane.Overlay.
func (m *Model) View() string {
	lines := []string{m.th.Title.Render(m.cfg.Title), ""}
	for i, f := range m.cfg.Fields {
		lines = append(lines, m.renderRow(i, f))
	}
	lines = append(lines, "", m.statusLine())
	return m.th.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderRow(i int, f Field) string {
	indicator := "  "
	label := fmt.Sprintf("%-18s", f.Label)
	var value string
	if len(f.Options) > 0 {
		value = "‹ " + f.Options[m.indexes[i]] + " ›"
	} else {
		value = m.inputs[i].View()
	}
	if i == m.focus {
		indicator = m.th.Selected.Render("➤ ")
		label = m.th.Selected.Render(label)
	}
	return indicator + label + " " + value
}

func (m *Model) statusLine() string {
	switch {
	case m.busy:
		return m.th.Faint.Render("Enviando…")
	case m.errMsg != "":
		return m.th.Error.Render(m.errMsg)
	default:
		return m.th.Faint.Render("Enter envia · Esc cancela · Tab entre campos")
	}
}

func optionIndex(opts []string, value string) int {
	for i, o := range opts {
		if o == value {
			return i
		}
	}
	return 0
}
