// Package statement assembles the full financial picture of one credit note:
// its encumbrances, the reversals recorded against them, and its balance
// returns.
package statement

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/salcops/ncadmin/pkg/api"
)

// ReversalRow is a reversal joined with the human-readable number of the
// encumbrance it belongs to.
type ReversalRow struct {
	api.Reversal
	EncumbranceNumber string
}

// Statement is the aggregated, read-only view of one credit note.
type Statement struct {
	Note         api.CreditNote
	Encumbrances []api.Encumbrance
	Returns      []api.BalanceReturn
	Reversals    []ReversalRow

	// Partial is set when AllowPartial swallowed reversal fetch failures;
	// Warnings then lists what is missing.
	Partial  bool
	Warnings []string
}

// Options control the aggregation failure policy.
type Options struct {
	// AllowPartial degrades a failed reversal sub-request to a warning
	// instead of failing the whole statement. The note detail fetch is
	// always fatal.
	AllowPartial bool
}

// Build fetches the credit note detail, its encumbrances, and its balance
// returns concurrently, then fans out one reversal fetch per encumbrance.
func Build(ctx context.Context, client *api.Client, noteID int64, opts Options) (*Statement, error) {
	st := &Statement{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		note, err := client.GetCreditNote(gctx, noteID)
		if err != nil {
			return fmt.Errorf("credit note %d: %w", noteID, err)
		}
		st.Note = note
		return nil
	})
	g.Go(func() error {
		page, err := client.ListEncumbrances(gctx,
			api.Filters{"nota_credito_id": fmt.Sprintf("%d", noteID)}, 1, api.MaxPageSize)
		if err != nil {
			return fmt.Errorf("encumbrances of note %d: %w", noteID, err)
		}
		st.Encumbrances = page.Results
		return nil
	})
	g.Go(func() error {
		returns, err := client.ListBalanceReturns(gctx, noteID)
		if err != nil {
			return fmt.Errorf("balance returns of note %d: %w", noteID, err)
		}
		st.Returns = returns
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := st.loadReversals(ctx, client, opts); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *Statement) loadReversals(ctx context.Context, client *api.Client, opts Options) error {
	numberByID := make(map[int64]string, len(st.Encumbrances))
	for _, enc := range st.Encumbrances {
		numberByID[enc.ID] = enc.Number
	}

	var mu sync.Mutex
	rows := make([]ReversalRow, 0)
	warnings := make([]string, 0)

	g, gctx := errgroup.WithContext(ctx)
	for _, enc := range st.Encumbrances {
		g.Go(func() error {
			reversals, err := client.ListReversals(gctx, enc.ID)
			if err != nil {
				if opts.AllowPartial {
					mu.Lock()
					warnings = append(warnings,
						fmt.Sprintf("reversals of encumbrance %s unavailable: %v", enc.Number, err))
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("reversals of encumbrance %s: %w", enc.Number, err)
			}
			mu.Lock()
			for _, rev := range reversals {
				rows = append(rows, ReversalRow{
					Reversal:          rev,
					EncumbranceNumber: numberByID[rev.EncumbranceID],
				})
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date.Equal(rows[j].Date.Time) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].Date.Before(rows[j].Date.Time)
	})
	sort.Strings(warnings)

	st.Reversals = rows
	st.Warnings = warnings
	st.Partial = len(warnings) > 0
	return nil
}
