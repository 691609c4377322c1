// Package cache keeps the client-side state of each entity collection: the
// last requested filter set, page and size, plus the page envelope the server
// returned for them. Every reload attaches a monotonically increasing request
// id so that when two loads race, the response of a superseded request is
// discarded instead of stomping newer state.
package cache

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/salcops/ncadmin/pkg/api"
	"github.com/salcops/ncadmin/pkg/pagination"
)

// ErrSuperseded is returned when a load completed but a newer load had
// already been issued for the same collection; the result was dropped.
var ErrSuperseded = errors.New("load superseded by a newer request")

// LoadFunc fetches one page of a collection from the server.
type LoadFunc[T any] func(ctx context.Context, filters api.Filters, page, size int) (api.Page[T], error)

// Snapshot is an immutable copy of a collection's cached state.
type Snapshot[T any] struct {
	Filters api.Filters
	Page    int
	Size    int
	Total   int
	Results []T
}

// Window derives the pagination controls for the snapshot.
func (s Snapshot[T]) Window() pagination.Window {
	return pagination.Compute(s.Total, s.Page, s.Size)
}

// Store caches one paginated, filtered collection.
type Store[T any] struct {
	mu   sync.Mutex
	load LoadFunc[T]
	size int

	// last issued request; InvalidateAndReload replays these.
	filters api.Filters
	page    int

	total   int
	results []T

	seq uint64
}

// New builds an empty store with the given default page size.
func New[T any](size int, load LoadFunc[T]) *Store[T] {
	if size < 1 {
		size = 10
	}
	return &Store[T]{load: load, size: size, page: 1}
}

// Load fetches the requested page under the given filters and replaces the
// cached envelope on success. If the page comes back empty while the
// collection still has items (the last row of a page was deleted), it steps
// back to the last non-empty page. Returns ErrSuperseded when a newer load
// was issued while this one was in flight.
func (s *Store[T]) Load(ctx context.Context, filters api.Filters, page int) error {
	if page < 1 {
		page = 1
	}
	id, size := s.begin(filters, page)

	env, err := s.load(ctx, filters, page, size)
	if err != nil {
		return err
	}

	if len(env.Results) == 0 && env.Total > 0 && page > 1 {
		if last := pagination.Compute(env.Total, page, size).TotalPages; last < page {
			env, err = s.load(ctx, filters, last, size)
			if err != nil {
				return err
			}
			page = last
		}
	}

	if !s.commit(id, filters, page, env) {
		return ErrSuperseded
	}
	return nil
}

// InvalidateAndReload is the standard post-mutation refresh: it reloads using
// the last issued filters and page.
func (s *Store[T]) InvalidateAndReload(ctx context.Context) error {
	s.mu.Lock()
	filters := s.filters.Clone()
	page := s.page
	s.mu.Unlock()
	return s.Load(ctx, filters, page)
}

// Snapshot returns a copy of the cached state.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]T, len(s.results))
	copy(results, s.results)
	return Snapshot[T]{
		Filters: s.filters.Clone(),
		Page:    s.page,
		Size:    s.size,
		Total:   s.total,
		Results: results,
	}
}

// SetPageSize changes the page size used by subsequent loads.
func (s *Store[T]) SetPageSize(size int) {
	if size < 1 {
		return
	}
	s.mu.Lock()
	s.size = size
	s.mu.Unlock()
}

func (s *Store[T]) begin(filters api.Filters, page int) (uint64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.filters = filters.Clone()
	s.page = page
	return s.seq, s.size
}

func (s *Store[T]) commit(id uint64, filters api.Filters, page int, env api.Page[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.seq {
		return false
	}
	s.filters = filters.Clone()
	s.page = page
	s.total = env.Total
	s.results = env.Results
	return true
}

// ListStore caches an unfiltered, unpaginated collection (sections, users);
// it simply reloads in full on change.
type ListStore[T any] struct {
	mu    sync.Mutex
	load  func(ctx context.Context) ([]T, error)
	items []T
	seq   uint64
}

// NewList builds an empty full-collection store.
func NewList[T any](load func(ctx context.Context) ([]T, error)) *ListStore[T] {
	return &ListStore[T]{load: load}
}

// Reload replaces the cached items, discarding superseded responses.
func (l *ListStore[T]) Reload(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	id := l.seq
	l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if id != l.seq {
		return ErrSuperseded
	}
	l.items = items
	return nil
}

// Items returns a copy of the cached collection.
func (l *ListStore[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Distinct extracts the sorted set of non-empty values of key across items.
// It backs the filter dropdowns (known internal plans, expense-nature codes):
// population data derived from a full listing, not paginated data.
func Distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		v := strings.TrimSpace(key(item))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
