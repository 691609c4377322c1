// Package pagination derives page bounds and navigation state from a page
// envelope. It is a pure function of (total, page, size); page changes always
// go back through the entity cache's Load.
package pagination

// Window describes the pagination controls for one cached page.
type Window struct {
	StartItem  int
	EndItem    int
	TotalPages int
	CanPrev    bool
	CanNext    bool
}

// Compute derives the window. Size must be positive; page is clamped into
// [1, TotalPages].
func Compute(total, page, size int) Window {
	if size <= 0 {
		size = 1
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := 0
	end := 0
	if total > 0 {
		start = (page-1)*size + 1
		end = page * size
		if end > total {
			end = total
		}
	}
	return Window{
		StartItem:  start,
		EndItem:    end,
		TotalPages: totalPages,
		CanPrev:    page > 1,
		CanNext:    page < totalPages,
	}
}

// Visible reports whether controls should be rendered at all: a collection
// that fits on one page gets none.
func Visible(total, size int) bool {
	if size <= 0 {
		return false
	}
	return total > size
}
