package forms

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/tui/components/overlaypane"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

// Confirm is the destructive-action dialog: nothing happens until the user
// explicitly confirms, and esc always cancels.
type Confirm struct {
	th     theme.Theme
	id     events.ComponentID
	title  string
	prompt string

	do     func(context.Context) error
	onDone tea.Cmd

	busy   bool
	errMsg string

	width  int
	height int
}

// NewConfirm builds a confirmation dialog around the given action. onDone
// runs after the action succeeds, alongside the overlay close.
func NewConfirm(th theme.Theme, title, prompt string, do func(context.Context) error, onDone tea.Cmd) *Confirm {
	return &Confirm{
		th:     th,
		id:     events.ComponentID("confirm"),
		title:  title,
		prompt: prompt,
		do:     do,
		onDone: onDone,
	}
}

// Init implements overlaypane.Overlay.
func (c *Confirm) Init() tea.Cmd { return nil }

// SetSize implements overlaypane.Overlay.
func (c *Confirm) SetSize(width, height int) {
	c.width = width
	c.height = height
}

type confirmDoneMsg struct {
	id  events.ComponentID
	err error
}

// Update implements overlaypane.Overlay.
func (c *Confirm) Update(msg tea.Msg) (overlaypane.Overlay, tea.Cmd) {
	switch msg := msg.(type) {
	case confirmDoneMsg:
		if msg.id != c.id {
			return c, nil
		}
		c.busy = false
		if msg.err != nil {
			c.errMsg = msg.err.Error()
			return c, nil
		}
		cmds := []tea.Cmd{events.OverlayCloseCmd(c.id)}
		if c.onDone != nil {
			cmds = append(cmds, c.onDone)
		}
		return c, tea.Batch(cmds...)
	case tea.KeyPressMsg:
		if c.busy {
			return c, nil
		}
		switch msg.String() {
		case "enter", "y":
			c.busy = true
			c.errMsg = ""
			id, do := c.id, c.do
			return c, func() tea.Msg {
				return confirmDoneMsg{id: id, err: do(context.Background())}
			}
		case "esc", "n", "q":
			return c, events.OverlayCloseCmd(c.id)
		}
	}
	return c, nil
}

// View implements overlaypane.Overlay.
func (c *Confirm) View() string {
	lines := []string{
		c.th.Title.Render(c.title),
		"",
		c.prompt,
		"",
	}
	switch {
	case c.busy:
		lines = append(lines, c.th.Faint.Render("Executando…"))
	case c.errMsg != "":
		lines = append(lines, c.th.Error.Render(c.errMsg))
	default:
		lines = append(lines, c.th.Faint.Render("Enter confirma · Esc cancela"))
	}
	return c.th.Frame.Render(strings.Join(lines, "\n"))
}
