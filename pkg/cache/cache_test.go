package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/salcops/ncadmin/pkg/api"
)

type fakeLoader struct {
	mu    sync.Mutex
	pages map[int]api.Page[string]
	calls []int
}

func (f *fakeLoader) load(_ context.Context, _ api.Filters, page, _ int) (api.Page[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	env, ok := f.pages[page]
	if !ok {
		return api.Page[string]{}, errors.New("no such page")
	}
	return env, nil
}

func TestLoadCachesEnvelope(t *testing.T) {
	f := &fakeLoader{pages: map[int]api.Page[string]{
		1: {Total: 3, Page: 1, Size: 2, Results: []string{"a", "b"}},
	}}
	s := New(2, f.load)

	if err := s.Load(context.Background(), api.Filters{"status": "Ativa"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Total != 3 || len(snap.Results) != 2 || snap.Page != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Filters["status"] != "Ativa" {
		t.Fatalf("filters not retained: %v", snap.Filters)
	}
}

// Deleting the only row of the last page must land on the new last page, not
// an empty one.
func TestLoadStepsBackFromEmptyPage(t *testing.T) {
	f := &fakeLoader{pages: map[int]api.Page[string]{
		2: {Total: 2, Page: 2, Size: 2, Results: nil},
		1: {Total: 2, Page: 1, Size: 2, Results: []string{"a", "b"}},
	}}
	s := New(2, f.load)

	if err := s.Load(context.Background(), nil, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Page != 1 || len(snap.Results) != 2 {
		t.Fatalf("expected step back to page 1, got %+v", snap)
	}
}

// The first load is held in flight until a second one has fully committed;
// its late response must be discarded.
func TestSupersededLoadIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	s := New(2, func(_ context.Context, _ api.Filters, page, _ int) (api.Page[string], error) {
		if page == 1 {
			once.Do(func() { close(entered) })
			<-release
			return api.Page[string]{Total: 1, Page: 1, Size: 2, Results: []string{"old"}}, nil
		}
		return api.Page[string]{Total: 3, Page: 2, Size: 2, Results: []string{"new"}}, nil
	})

	done := make(chan error, 1)
	go func() {
		done <- s.Load(context.Background(), nil, 1)
	}()
	<-entered

	if err := s.Load(context.Background(), nil, 2); err != nil {
		t.Fatalf("unexpected error from newer load: %v", err)
	}
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded from the stale load, got %v", err)
	}
	snap := s.Snapshot()
	if snap.Page != 2 || len(snap.Results) != 1 || snap.Results[0] != "new" {
		t.Fatalf("stale load overwrote newer state: %+v", snap)
	}
}

func TestInvalidateAndReloadReplaysRequest(t *testing.T) {
	f := &fakeLoader{pages: map[int]api.Page[string]{
		2: {Total: 6, Page: 2, Size: 2, Results: []string{"c", "d"}},
	}}
	s := New(2, f.load)

	if err := s.Load(context.Background(), api.Filters{"nd": "339030"}, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.InvalidateAndReload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.mu.Lock()
	calls := append([]int(nil), f.calls...)
	f.mu.Unlock()
	if len(calls) != 2 || calls[0] != 2 || calls[1] != 2 {
		t.Fatalf("expected page 2 to be fetched twice, got %v", calls)
	}
	if s.Snapshot().Filters["nd"] != "339030" {
		t.Fatalf("filters lost on reload: %v", s.Snapshot().Filters)
	}
}

func TestListStoreSupersede(t *testing.T) {
	calls := 0
	l := NewList(func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	})
	if err := l.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Items(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected items %v", got)
	}
	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}
}

func TestDistinct(t *testing.T) {
	type row struct{ plan string }
	rows := []row{{"B"}, {"A"}, {" "}, {"B"}, {"C"}}
	got := Distinct(rows, func(r row) string { return r.plan })
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
