package api

import (
	"net/url"
	"testing"
)

func TestQueryDropsEmptyValues(t *testing.T) {
	f := Filters{"status": "Ativa", "nd": "", "  ": "x"}
	q := f.Query()
	if got := q.Encode(); got != "status=Ativa" {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := Filters{"status": "Ativa"}
	c := f.Clone()
	c["status"] = "Vencida"
	if f["status"] != "Ativa" {
		t.Fatalf("clone mutated the original")
	}
	if Filters(nil).Clone() != nil {
		t.Fatalf("nil clone should stay nil")
	}
}

func TestEqualIgnoresEmptyValues(t *testing.T) {
	a := Filters{"status": "Ativa", "nd": ""}
	b := Filters{"status": "Ativa"}
	if !a.Equal(b) {
		t.Fatalf("expected %v and %v to be equal", a, b)
	}
	if a.Equal(Filters{"status": "Vencida"}) {
		t.Fatalf("different values must not be equal")
	}
}

func TestParseFiltersRoundTrip(t *testing.T) {
	f := Filters{"plano_interno": "ABC123", "secao_responsavel_id": "3"}
	got := ParseFilters(f.Query())
	if !got.Equal(f) {
		t.Fatalf("round trip changed filters: %v", got)
	}
}

func TestParseFiltersSkipsBlank(t *testing.T) {
	q := url.Values{"nd": {" ", "339030"}, "status": {""}}
	got := ParseFilters(q)
	if got["nd"] != "339030" {
		t.Fatalf("expected first non-blank value, got %q", got["nd"])
	}
	if _, ok := got["status"]; ok {
		t.Fatalf("blank-only key must be dropped")
	}
}
