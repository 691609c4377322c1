package forms

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/format"
	"github.com/salcops/ncadmin/pkg/tui/events"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

// NewEncumbrance builds the dialog committing funds against an active credit
// note. Only active notes are offered; the amount is checked against the
// selected note's available balance before the request goes out.
func NewEncumbrance(th theme.Theme, client *api.Client, notes []api.CreditNote, sections []api.Section) (*Model, error) {
	active := make([]api.CreditNote, 0, len(notes))
	for _, n := range notes {
		if n.Status == api.StatusActive {
			active = append(active, n)
		}
	}
	if len(active) == 0 {
		return nil, errors.New("nenhuma nota de crédito ativa disponível para empenho")
	}
	if len(sections) == 0 {
		return nil, errors.New("cadastre uma seção antes de criar empenhos")
	}

	noteLabels := make([]string, len(active))
	for i, n := range active {
		noteLabels[i] = fmt.Sprintf("%s (%s)", n.Number, format.Currency(n.AvailableBalance))
	}
	noteByLabel := func(label string) (api.CreditNote, bool) {
		for i, l := range noteLabels {
			if l == label {
				return active[i], true
			}
		}
		return api.CreditNote{}, false
	}

	fields := []Field{
		{Key: "numero", Label: "Número NE", Placeholder: "2024NE000321"},
		{Key: "nota", Label: "Nota de Crédito", Options: noteLabels},
		{Key: "valor", Label: "Valor", Placeholder: "1.234,56"},
		{Key: "data", Label: "Data do Empenho", Placeholder: "dd/mm/aaaa"},
		{Key: "secao", Label: "Seção Requisitante", Options: sectionNames(sections)},
		{Key: "observacao", Label: "Observação"},
	}

	decode := func(v Values) (api.EncumbranceInput, error) {
		var in api.EncumbranceInput
		if err := required(v, "numero", "Número NE"); err != nil {
			return in, err
		}
		valor, err := amount(v, "valor", "Valor")
		if err != nil {
			return in, err
		}
		when, err := date(v, "data", "Data do Empenho")
		if err != nil {
			return in, err
		}
		note, ok := noteByLabel(v["nota"])
		if !ok {
			return in, errors.New("selecione a nota de crédito")
		}
		if valor > note.AvailableBalance {
			return in, fmt.Errorf("valor excede o saldo disponível de %s", format.Currency(note.AvailableBalance))
		}
		secID, ok := sectionID(sections, v["secao"])
		if !ok {
			return in, errors.New("selecione a seção requisitante")
		}
		in = api.EncumbranceInput{
			Number:       v["numero"],
			Amount:       valor,
			Date:         api.Date{Time: when},
			Note:         v["observacao"],
			CreditNoteID: note.ID,
			SectionID:    secID,
		}
		return in, nil
	}

	return New(th, Config{
		ID:     events.ComponentID("form-encumbrance"),
		Title:  "Novo Empenho",
		Fields: fields,
		Validate: func(v Values) error {
			_, err := decode(v)
			return err
		},
		Submit: func(ctx context.Context, v Values) error {
			in, err := decode(v)
			if err != nil {
				return err
			}
			_, err = client.CreateEncumbrance(ctx, in)
			return err
		},
		OnDone: func(v Values) tea.Cmd {
			return tea.Batch(
				events.EntityChangeCmd("form-encumbrance", api.CollectionEncumbrances, events.ChangeCreate),
				events.EntityChangeCmd("form-encumbrance", api.CollectionCreditNotes, events.ChangeUpdate),
				events.StatusCmd("Empenho %s registrado", v["numero"]),
			)
		},
	}), nil
}
