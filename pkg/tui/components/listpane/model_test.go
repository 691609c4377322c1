package listpane

import (
	"strings"
	"testing"

	"github.com/salcops/ncadmin/pkg/pagination"
	"github.com/salcops/ncadmin/pkg/tui/theme"
)

func newTestPane() *Model {
	return New(theme.New(), []Column{
		{Title: "Número", Width: 12},
		{Title: "Valor", Width: 10},
	})
}

func TestCursorClampsOnShrinkingRows(t *testing.T) {
	m := newTestPane()
	m.SetRows([][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}})
	m.Move(2)
	if m.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", m.Cursor())
	}
	m.SetRows([][]string{{"a", "1"}})
	if m.Cursor() != 0 {
		t.Fatalf("cursor must clamp to the last row, got %d", m.Cursor())
	}
}

func TestCursorOnEmptyTable(t *testing.T) {
	m := newTestPane()
	m.SetRows(nil)
	if m.Cursor() != -1 {
		t.Fatalf("empty table must report cursor -1, got %d", m.Cursor())
	}
	m.Move(1)
	if m.Cursor() != -1 {
		t.Fatalf("moving on an empty table must stay -1, got %d", m.Cursor())
	}
}

func TestMoveDoesNotUnderflow(t *testing.T) {
	m := newTestPane()
	m.SetRows([][]string{{"a", "1"}, {"b", "2"}})
	m.Move(-5)
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor())
	}
	m.Move(99)
	if m.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", m.Cursor())
	}
}

func TestViewPlaceholders(t *testing.T) {
	m := newTestPane()
	m.SetLoading()
	if !strings.Contains(m.View(), "Carregando") {
		t.Fatalf("expected loading placeholder, got %q", m.View())
	}
	m.SetError("falha de rede")
	if !strings.Contains(m.View(), "falha de rede") {
		t.Fatalf("expected error text, got %q", m.View())
	}
	m.SetRows(nil)
	if !strings.Contains(m.View(), "Nenhum registro encontrado") {
		t.Fatalf("expected empty placeholder, got %q", m.View())
	}
}

func TestViewFooterRendersPaging(t *testing.T) {
	m := newTestPane()
	m.SetRows([][]string{{"a", "1"}, {"b", "2"}})
	m.SetWindow(45, 10, pagination.Compute(45, 2, 10))
	out := m.View()
	if !strings.Contains(out, "Página 2/5") {
		t.Fatalf("expected page position in footer:\n%s", out)
	}
	if !strings.Contains(out, "11–20 de 45") {
		t.Fatalf("expected item range in footer:\n%s", out)
	}
	if !strings.Contains(out, "anterior") || !strings.Contains(out, "próxima") {
		t.Fatalf("expected both nav hints:\n%s", out)
	}
}

func TestViewFooterHiddenForSinglePage(t *testing.T) {
	m := newTestPane()
	m.SetRows([][]string{{"a", "1"}})
	m.SetWindow(1, 10, pagination.Compute(1, 1, 10))
	if strings.Contains(m.View(), "Página") {
		t.Fatalf("single-page collection must hide the footer:\n%s", m.View())
	}
}

func TestLongCellsAreTruncated(t *testing.T) {
	m := newTestPane()
	m.SetRows([][]string{{"um número muito comprido mesmo", "1"}})
	if !strings.Contains(m.View(), "…") {
		t.Fatalf("expected truncation tail in view:\n%s", m.View())
	}
}
