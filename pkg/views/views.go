// Package views keeps read views of the API fresh after mutations.
//
// Every mutation reports the paths of the views whose data it changed
// to an Invalidator. Paths name pages, not owners: invalidating a path
// drops the view for all owners.
package views

import (
	"context"
	"fmt"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	Dashboard = "/dashboard"
	Budgets   = "/dashboard/budgets"
	Incomes   = "/dashboard/incomes"
	Expenses  = "/dashboard/expenses"
)

// BudgetDetail returns the path of the detail view of a budget.
func BudgetDetail(id uint) string {
	return fmt.Sprintf("%s/%d", Expenses, id)
}

// Invalidator marks views as stale.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string) error
}

// Nop discards all invalidations.
type Nop struct{}

func (Nop) Invalidate(context.Context, ...string) error {
	return nil
}

// Multi forwards invalidations to all of its invalidators concurrently.
type Multi []Invalidator

func (m Multi) Invalidate(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, i := range m {
		g.Go(func() error {
			return i.Invalidate(ctx, paths...)
		})
	}

	return g.Wait()
}

// unique returns paths in their original order without duplicates.
func unique(paths []string) []string {
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if !slices.Contains(result, p) {
			result = append(result, p)
		}
	}
	return result
}
