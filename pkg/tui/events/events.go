// Package events defines the typed messages exchanged between the root model
// and its views, forms, and overlays.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// View names a top-level tab.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewCreditNotes  View = "credit-notes"
	ViewEncumbrances View = "encumbrances"
	ViewStatement    View = "statement"
	ViewAdmin        View = "admin"
)

// AdminTab names a nested tab inside the administration area.
type AdminTab string

const (
	AdminSections AdminTab = "sections"
	AdminUsers    AdminTab = "users"
	AdminAudit    AdminTab = "audit-log"
)

// ChangeType enumerates mutation kinds announced by forms.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// NavigateMsg asks the router to activate a view.
type NavigateMsg struct {
	View     View
	AdminTab AdminTab
	// NoteID carries the target credit note for the statement view.
	NoteID int64
}

// Describe renders the navigation for logs.
func (m NavigateMsg) Describe() string {
	return fmt.Sprintf(`view:%q sub:%q`, m.View, m.AdminTab)
}

// NavigateCmd wraps NavigateMsg in a tea.Cmd.
func NavigateCmd(view View) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{View: view} }
}

// StatementCmd navigates to the statement view for one credit note.
func StatementCmd(noteID int64) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{View: ViewStatement, NoteID: noteID} }
}

// EntityChangeMsg announces that a mutation against a collection succeeded
// and its cache must be invalidated and reloaded.
type EntityChangeMsg struct {
	Component  ComponentID
	Collection string
	Action     ChangeType
}

// Describe renders the change for logs.
func (m EntityChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q collection:%q`, m.Action, m.Collection)
}

// EntityChangeCmd wraps EntityChangeMsg in a tea.Cmd.
func EntityChangeCmd(component ComponentID, collection string, action ChangeType) tea.Cmd {
	return func() tea.Msg {
		return EntityChangeMsg{Component: component, Collection: collection, Action: action}
	}
}

// OverlayCloseMsg asks the root model to dismiss the active overlay.
type OverlayCloseMsg struct {
	Component ComponentID
}

// Describe renders the close request for logs.
func (m OverlayCloseMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// OverlayCloseCmd wraps OverlayCloseMsg in a tea.Cmd.
func OverlayCloseCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg { return OverlayCloseMsg{Component: component} }
}

// StatusMsg sets the transient status-bar text.
type StatusMsg struct {
	Text string
}

// StatusCmd wraps StatusMsg in a tea.Cmd.
func StatusCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// SessionExpiredMsg forces the redirect-to-login path; it always escalates to
// the root model regardless of which view's request observed the 401.
type SessionExpiredMsg struct{}

// Describe renders the expiry for logs.
func (m SessionExpiredMsg) Describe() string { return "session expired" }
