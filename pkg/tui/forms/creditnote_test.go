package forms

import (
	"strings"
	"testing"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

func testSections() []api.Section {
	return []api.Section{{ID: 1, Name: "SALC"}, {ID: 2, Name: "Fiscal"}}
}

func validNoteValues() Values {
	return Values{
		"numero":        "2026NC000123",
		"valor":         "10.000,00",
		"esfera":        "1",
		"fonte":         "0100",
		"ptres":         "123456",
		"plano_interno": "ABC123",
		"nd":            "339030",
		"data_chegada":  "01/03/2026",
		"prazo":         "31/03/2026",
		"descricao":     "",
		"secao":         "SALC",
	}
}

func TestNewCreditNoteRequiresSections(t *testing.T) {
	_, err := NewCreditNote(theme.New(), nil, nil, nil)
	if err == nil {
		t.Fatalf("expected error without sections")
	}
}

func TestCreditNoteValidateAccepts(t *testing.T) {
	m, err := NewCreditNote(theme.New(), nil, testSections(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.cfg.Validate(validNoteValues()); err != nil {
		t.Fatalf("valid values rejected: %v", err)
	}
}

func TestCreditNoteValidateDeadlineBeforeArrival(t *testing.T) {
	m, err := NewCreditNote(theme.New(), nil, testSections(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := validNoteValues()
	v["prazo"] = "28/02/2026"
	err = m.cfg.Validate(v)
	if err == nil || !strings.Contains(err.Error(), "anterior à data de chegada") {
		t.Fatalf("expected deadline ordering error, got %v", err)
	}
}

func TestCreditNoteValidateSameDayDeadline(t *testing.T) {
	m, err := NewCreditNote(theme.New(), nil, testSections(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := validNoteValues()
	v["prazo"] = v["data_chegada"]
	if err := m.cfg.Validate(v); err != nil {
		t.Fatalf("same-day deadline must be allowed: %v", err)
	}
}

func TestCreditNoteValidateRejectsBadNature(t *testing.T) {
	m, err := NewCreditNote(theme.New(), nil, testSections(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := validNoteValues()
	v["nd"] = "33903"
	if err := m.cfg.Validate(v); err == nil {
		t.Fatalf("expected error for 5-digit nature code")
	}
}

func TestCreditNoteEditPrefillsFields(t *testing.T) {
	existing := &api.CreditNote{
		ID: 9, Number: "2026NC000009", Amount: 500.5, SectionID: 2,
		Sphere: "1", Source: "0100", PTRES: "123456", InternalPlan: "ABC",
		ExpenseNature: "339030",
		ArrivalDate:   api.NewDate(2026, 3, 1),
	}
	m, err := NewCreditNote(theme.New(), nil, testSections(), existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := m.Values()
	if v["numero"] != "2026NC000009" {
		t.Fatalf("number not prefilled: %q", v["numero"])
	}
	if v["valor"] != "500.50" {
		t.Fatalf("amount not prefilled: %q", v["valor"])
	}
	if v["secao"] != "Fiscal" {
		t.Fatalf("section select not resolved: %q", v["secao"])
	}
	if v["data_chegada"] != "01/03/2026" {
		t.Fatalf("arrival date not prefilled: %q", v["data_chegada"])
	}
	if !strings.Contains(m.cfg.Title, "Editar") {
		t.Fatalf("edit dialog must carry the edit title: %q", m.cfg.Title)
	}
}

func TestFormSelectCycling(t *testing.T) {
	m := New(theme.New(), Config{
		Fields: []Field{{Key: "secao", Options: []string{"SALC", "Fiscal", "Almox"}, Value: "Fiscal"}},
	})
	if got := m.Values()["secao"]; got != "Fiscal" {
		t.Fatalf("initial option wrong: %q", got)
	}
	if !m.cycle(1) {
		t.Fatalf("cycle must report handling a select field")
	}
	if got := m.Values()["secao"]; got != "Almox" {
		t.Fatalf("expected Almox after cycling right, got %q", got)
	}
	m.cycle(1)
	if got := m.Values()["secao"]; got != "SALC" {
		t.Fatalf("cycling must wrap around, got %q", got)
	}
	m.cycle(-1)
	if got := m.Values()["secao"]; got != "Almox" {
		t.Fatalf("cycling left must wrap back, got %q", got)
	}
}

func TestFormFocusTraversalSkipsNothing(t *testing.T) {
	m := New(theme.New(), Config{
		Fields: []Field{
			{Key: "a"},
			{Key: "b", Options: []string{"x", "y"}},
			{Key: "c"},
		},
	})
	if m.focus != 0 {
		t.Fatalf("first field must start focused")
	}
	m.moveFocus(1)
	if m.focus != 1 {
		t.Fatalf("expected focus 1, got %d", m.focus)
	}
	m.moveFocus(1)
	m.moveFocus(1)
	if m.focus != 0 {
		t.Fatalf("focus must wrap to 0, got %d", m.focus)
	}
	m.moveFocus(-1)
	if m.focus != 2 {
		t.Fatalf("reverse focus must wrap to last, got %d", m.focus)
	}
}
