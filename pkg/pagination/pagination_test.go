package pagination

import "testing"

func TestComputeMiddlePage(t *testing.T) {
	w := Compute(45, 2, 10)
	if w.TotalPages != 5 {
		t.Fatalf("expected 5 pages, got %d", w.TotalPages)
	}
	if w.StartItem != 11 || w.EndItem != 20 {
		t.Fatalf("expected items 11-20, got %d-%d", w.StartItem, w.EndItem)
	}
	if !w.CanPrev || !w.CanNext {
		t.Fatalf("expected both directions available: %+v", w)
	}
}

func TestComputeLastPartialPage(t *testing.T) {
	w := Compute(45, 5, 10)
	if w.StartItem != 41 || w.EndItem != 45 {
		t.Fatalf("expected items 41-45, got %d-%d", w.StartItem, w.EndItem)
	}
	if w.CanNext {
		t.Fatalf("expected no next page on the last page")
	}
}

func TestComputeEmptyCollection(t *testing.T) {
	w := Compute(0, 1, 10)
	if w.TotalPages != 1 {
		t.Fatalf("expected a single page for an empty collection, got %d", w.TotalPages)
	}
	if w.StartItem != 0 || w.EndItem != 0 {
		t.Fatalf("expected 0-0 items, got %d-%d", w.StartItem, w.EndItem)
	}
	if w.CanPrev || w.CanNext {
		t.Fatalf("expected no navigation: %+v", w)
	}
}

func TestComputeClampsPage(t *testing.T) {
	w := Compute(30, 99, 10)
	if w.StartItem != 21 || w.EndItem != 30 {
		t.Fatalf("expected clamp to last page, got %d-%d", w.StartItem, w.EndItem)
	}
	if w.CanNext {
		t.Fatalf("clamped page must not have a next page")
	}
}

func TestVisible(t *testing.T) {
	if Visible(10, 10) {
		t.Fatalf("collection that fits one page should hide controls")
	}
	if !Visible(11, 10) {
		t.Fatalf("collection spanning pages should show controls")
	}
}
