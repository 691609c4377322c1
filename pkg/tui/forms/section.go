package forms

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

// NewSection builds the create/rename dialog for a section.
func NewSection(th theme.Theme, client *api.Client, existing *api.Section) *Model {
	title := "Nova Seção"
	action := events.ChangeCreate
	value := ""
	if existing != nil {
		title = "Renomear Seção"
		action = events.ChangeUpdate
		value = existing.Name
	}

	return New(th, Config{
		ID:    events.ComponentID("form-section"),
		Title: title,
		Fields: []Field{
			{Key: "nome", Label: "Nome", Placeholder: "SALC", Value: value},
		},
		Validate: func(v Values) error {
			return required(v, "nome", "Nome")
		},
		Submit: func(ctx context.Context, v Values) error {
			in := api.SectionInput{Name: v["nome"]}
			if existing != nil {
				_, err := client.UpdateSection(ctx, existing.ID, in)
				return err
			}
			_, err := client.CreateSection(ctx, in)
			return err
		},
		OnDone: func(v Values) tea.Cmd {
			return tea.Batch(
				events.EntityChangeCmd("form-section", api.CollectionSections, action),
				events.StatusCmd("Seção %s salva", v["nome"]),
			)
		},
	})
}
