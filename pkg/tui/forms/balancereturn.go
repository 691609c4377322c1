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

// NewBalanceReturn builds the dialog returning available balance from a
// credit note.
func NewBalanceReturn(th theme.Theme, client *api.Client, note api.CreditNote) *Model {
	decode := func(v Values) (api.BalanceReturnInput, error) {
		var in api.BalanceReturnInput
		valor, err := amount(v, "valor", "Valor")
		if err != nil {
			return in, err
		}
		if valor > note.AvailableBalance {
			return in, fmt.Errorf("valor excede o saldo disponível de %s", format.Currency(note.AvailableBalance))
		}
		when, err := date(v, "data", "Data")
		if err != nil {
			return in, err
		}
		in = api.BalanceReturnInput{
			CreditNoteID: note.ID,
			Amount:       valor,
			Date:         api.Date{Time: when},
			Note:         v["observacao"],
		}
		return in, nil
	}

	return New(th, Config{
		ID:    events.ComponentID("form-balance-return"),
		Title: fmt.Sprintf("Recolher Saldo · NC %s", note.Number),
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
			_, err = client.CreateBalanceReturn(ctx, in)
			return err
		},
		OnDone: func(v Values) tea.Cmd {
			return tea.Batch(
				events.EntityChangeCmd("form-balance-return", api.CollectionBalanceReturns, events.ChangeCreate),
				events.EntityChangeCmd("form-balance-return", api.CollectionCreditNotes, events.ChangeUpdate),
				events.StatusCmd("Recolhimento registrado para a NC %s", note.Number),
			)
		},
	})
}
