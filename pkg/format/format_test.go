package format

import (
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 1,00"},
		{1234.5, "R$ 1.234,50"},
		{1234567.89, "R$ 1.234.567,89"},
		{0.1 + 0.2, "R$ 0,30"},
		{-99.9, "-R$ 99,90"},
	}
	for _, c := range cases {
		if got := Currency(c.in); got != c.want {
			t.Fatalf("Currency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseAmountBrazilianNotation(t *testing.T) {
	got, err := ParseAmount("R$ 1.234,56")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1234.56 {
		t.Fatalf("expected 1234.56, got %v", got)
	}
}

func TestParseAmountPlainNotation(t *testing.T) {
	got, err := ParseAmount("1234.56")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1234.56 {
		t.Fatalf("expected 1234.56, got %v", got)
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12,34,56x"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestDateZeroValue(t *testing.T) {
	if got := Date(time.Time{}); got != "—" {
		t.Fatalf("expected dash for zero date, got %q", got)
	}
}

func TestParseDateBothLayouts(t *testing.T) {
	want := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"09/03/2026", "2026-03-09"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("31/02/2026"); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}
