package forms

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/format"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

// NewReversal builds the dialog recording a reversal against an encumbrance,
// which gives the amount back to the owning credit note.
func NewReversal(th theme.Theme, client *api.Client, enc api.Encumbrance) *Model {
	decode := func(v Values) (api.ReversalInput, error) {
		var in api.ReversalInput
		valor, err := amount(v, "valor", "Valor")
		if err != nil {
			return in, err
		}
		if valor > enc.Amount {
			return in, fmt.Errorf("valor excede o empenhado de %s", format.Currency(enc.Amount))
		}
		when, err := date(v, "data", "Data")
		if err != nil {
			return in, err
		}
		in = api.ReversalInput{
			EncumbranceID: enc.ID,
			Amount:        valor,
			Date:          api.Date{Time: when},
			Note:          v["observacao"],
		}
		return in, nil
	}

	return New(th, Config{
		ID:    events.ComponentID("form-reversal"),
		Title: fmt.Sprintf("Anular Empenho · NE %s", enc.Number),
		Fields: []Field{
			{Key: "valor", Label: "Valor", Placeholder: "1.234,56"},
			{Key: "data", Label: "Data", Placeholder: "dd/mm/aaaa"},
			{Key: "observacao", Label: "Observação"},
		},
		Validate: func(v Values) error {
			_, err := decode(v)
			return err
		},
		Submit: func(ctx context.Context, v Values) error {
			in, err := decode(v)
			if err != nil {
				return err
			}
			_, err = client.CreateReversal(ctx, in)
			return err
		},
		OnDone: func(v Values) tea.Cmd {
			return tea.Batch(
				events.EntityChangeCmd("form-reversal", api.CollectionReversals, events.ChangeCreate),
				events.EntityChangeCmd("form-reversal", api.CollectionEncumbrances, events.ChangeUpdate),
				events.EntityChangeCmd("form-reversal", api.CollectionCreditNotes, events.ChangeUpdate),
				events.StatusCmd("Anulação registrada para a NE %s", enc.Number),
			)
		},
	})
}
