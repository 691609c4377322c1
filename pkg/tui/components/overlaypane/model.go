// Package overlaypane hosts the single active modal of the application.
// Opening a modal while another is active replaces it; closing always
// restores the background untouched.
package overlaypane

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/tui/ui/overlay"
)

// Overlay is what a modal must implement to be hosted by the pane. The host
// never inspects the modal beyond this contract.
type Overlay interface {
	Init() tea.Cmd
	Update(tea.Msg) (Overlay, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Model composes a background surface with at most one overlay.
type Model struct {
	width  int
	height int

	background string

	overlay   Overlay
	placement overlay.Placement
}

// New constructs a pane sized to width x height.
func New(width, height int) *Model {
	m := &Model{}
	m.SetSize(width, height)
	return m
}

// SetSize updates the pane bounds and resizes any mounted overlay.
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	m.width = width
	m.height = height
	if m.overlay != nil {
		m.overlay.SetSize(m.overlayWidth(), m.height)
	}
}

// SetBackground records the view rendered under the overlay.
func (m *Model) SetBackground(view string) { m.background = view }

// Show mounts an overlay, replacing any active one.
func (m *Model) Show(o Overlay, placement overlay.Placement) tea.Cmd {
	if o == nil {
		return nil
	}
	m.overlay = o
	m.placement = placement
	m.overlay.SetSize(m.overlayWidth(), m.height)
	return m.overlay.Init()
}

// Close removes the active overlay, if any.
func (m *Model) Close() { m.overlay = nil }

// Active reports whether an overlay is mounted.
func (m *Model) Active() bool { return m.overlay != nil }

// Update forwards a message to the overlay. A nil successor closes it.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.overlay == nil {
		return nil
	}
	next, cmd := m.overlay.Update(msg)
	m.overlay = next
	return cmd
}

// View renders the composed surface.
func (m *Model) View() string {
	if m.overlay == nil {
		return overlay.Compose(m.background, m.width, m.height, "", m.placement)
	}
	return overlay.Compose(m.background, m.width, m.height, m.overlay.View(), m.placement)
}

func (m *Model) overlayWidth() int {
	if m.placement.Width > 0 && m.placement.Width < m.width {
		return m.placement.Width
	}
	return m.width
}
