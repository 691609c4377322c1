package forms

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

const anyOption = "(todos)"

// NewCreditNoteFilter builds the filter dialog for the credit-note listing.
// Plan and expense-nature options come from the distinct values of the full
// collection; applying always resets to the first page.
func NewCreditNoteFilter(th theme.Theme, sections []api.Section, plans, natures []string, current api.Filters, apply func(api.Filters) tea.Cmd) *Model {
	statuses := []string{
		anyOption,
		string(api.StatusActive),
		string(api.StatusFullyCommitted),
		string(api.StatusExpired),
	}
	sectionOpts := append([]string{anyOption}, sectionNames(sections)...)

	currentSection := anyOption
	if raw := current["secao_responsavel_id"]; raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if name := sectionValue(sections, id); name != "" {
				currentSection = name
			}
		}
	}

	return New(th, Config{
		ID:    events.ComponentID("form-note-filter"),
		Title: "Filtrar Notas de Crédito",
		Fields: []Field{
			{Key: "plano_interno", Label: "Plano Interno", Options: withAny(plans), Value: orAny(current["plano_interno"])},
			{Key: "nd", Label: "ND", Options: withAny(natures), Value: orAny(current["nd"])},
			{Key: "status", Label: "Status", Options: statuses, Value: orAny(current["status"])},
			{Key: "secao", Label: "Seção Responsável", Options: sectionOpts, Value: currentSection},
		},
		OnDone: func(v Values) tea.Cmd {
			f := api.Filters{}
			if s := v["plano_interno"]; s != anyOption {
				f["plano_interno"] = s
			}
			if s := v["nd"]; s != anyOption {
				f["nd"] = s
			}
			if s := v["status"]; s != anyOption {
				f["status"] = s
			}
			if s := v["secao"]; s != anyOption {
				if id, ok := sectionID(sections, s); ok {
					f["secao_responsavel_id"] = strconv.FormatInt(id, 10)
				}
			}
			return apply(f)
		},
	})
}

func withAny(opts []string) []string {
	return append([]string{anyOption}, opts...)
}

func orAny(s string) string {
	if s == "" {
		return anyOption
	}
	return s
}
