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

// NewCreditNote builds the create/edit dialog for a credit note. A nil
// existing note creates; otherwise the note's fields are pre-filled and the
// submit updates in place.
func NewCreditNote(th theme.Theme, client *api.Client, sections []api.Section, existing *api.CreditNote) (*Model, error) {
	if len(sections) == 0 {
		return nil, errors.New("cadastre uma seção antes de criar notas de crédito")
	}
	names := sectionNames(sections)

	title := "Nova Nota de Crédito"
	action := events.ChangeCreate
	var initial api.CreditNote
	if existing != nil {
		initial = *existing
		title = "Editar Nota de Crédito " + existing.Number
		action = events.ChangeUpdate
	}

	fields := []Field{
		{Key: "numero", Label: "Número NC", Placeholder: "2024NC000123", Value: initial.Number},
		{Key: "valor", Label: "Valor", Placeholder: "1.234,56", Value: amountValue(initial.Amount)},
		{Key: "esfera", Label: "Esfera", Value: initial.Sphere},
		{Key: "fonte", Label: "Fonte", Value: initial.Source},
		{Key: "ptres", Label: "PTRES", Value: initial.PTRES},
		{Key: "plano_interno", Label: "Plano Interno", Value: initial.InternalPlan},
		{Key: "nd", Label: "ND", Placeholder: "339030", Value: initial.ExpenseNature},
		{Key: "data_chegada", Label: "Data de Chegada", Placeholder: "dd/mm/aaaa", Value: dateValue(initial.ArrivalDate)},
		{Key: "prazo", Label: "Prazo p/ Empenho", Placeholder: "dd/mm/aaaa", Value: dateValue(initial.CommitmentDeadline)},
		{Key: "descricao", Label: "Descrição", Value: initial.Description},
		{Key: "secao", Label: "Seção Responsável", Options: names, Value: sectionValue(sections, initial.SectionID)},
	}

	decode := func(v Values) (api.CreditNoteInput, error) {
		var in api.CreditNoteInput
		for _, check := range []struct{ key, label string }{
			{"numero", "Número NC"}, {"esfera", "Esfera"}, {"fonte", "Fonte"},
			{"ptres", "PTRES"}, {"plano_interno", "Plano Interno"},
		} {
			if err := required(v, check.key, check.label); err != nil {
				return in, err
			}
		}
		valor, err := amount(v, "valor", "Valor")
		if err != nil {
			return in, err
		}
		if err := expenseNature(v["nd"]); err != nil {
			return in, err
		}
		arrival, err := date(v, "data_chegada", "Data de Chegada")
		if err != nil {
			return in, err
		}
		deadline, err := date(v, "prazo", "Prazo p/ Empenho")
		if err != nil {
			return in, err
		}
		if deadline.Before(arrival) {
			return in, errors.New("prazo para empenho não pode ser anterior à data de chegada")
		}
		sectionID, ok := sectionID(sections, v["secao"])
		if !ok {
			return in, errors.New("selecione a seção responsável")
		}
		in = api.CreditNoteInput{
			Number:             v["numero"],
			Amount:             valor,
			Sphere:             v["esfera"],
			Source:             v["fonte"],
			PTRES:              v["ptres"],
			InternalPlan:       v["plano_interno"],
			ExpenseNature:      v["nd"],
			ArrivalDate:        api.Date{Time: arrival},
			CommitmentDeadline: api.Date{Time: deadline},
			Description:        v["descricao"],
			SectionID:          sectionID,
		}
		return in, nil
	}

	return New(th, Config{
		ID:     events.ComponentID("form-credit-note"),
		Title:  title,
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
			if existing != nil {
				_, err = client.UpdateCreditNote(ctx, existing.ID, in)
				return err
			}
			_, err = client.CreateCreditNote(ctx, in)
			return err
		},
		OnDone: func(v Values) tea.Cmd {
			return tea.Batch(
				events.EntityChangeCmd("form-credit-note", api.CollectionCreditNotes, action),
				events.StatusCmd("Nota de crédito %s salva", v["numero"]),
			)
		},
	}), nil
}

func sectionNames(sections []api.Section) []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}

func sectionValue(sections []api.Section, id int64) string {
	for _, s := range sections {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}

func sectionID(sections []api.Section, name string) (int64, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s.ID, true
		}
	}
	return 0, false
}

func amountValue(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}

func dateValue(d api.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(format.DisplayDate)
}
