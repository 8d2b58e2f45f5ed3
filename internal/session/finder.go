package session

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/query"
	"github.com/sells-group/leadfinder/internal/store"
)

// Finder runs one search.
type Finder interface {
	Find(ctx context.Context, q string, filters model.LeadFilters) ([]model.Lead, error)
}

// FinderFunc adapts a function to Finder.
type FinderFunc func(ctx context.Context, q string, filters model.LeadFilters) ([]model.Lead, error)

// Find calls f.
func (f FinderFunc) Find(ctx context.Context, q string, filters model.LeadFilters) ([]model.Lead, error) {
	return f(ctx, q, filters)
}

// PoolFinder searches the store's pool after a fixed simulated latency.
type PoolFinder struct {
	store   store.Store
	latency time.Duration
}

// NewPoolFinder creates a PoolFinder.
func NewPoolFinder(st store.Store, latency time.Duration) *PoolFinder {
	return &PoolFinder{store: st, latency: latency}
}

// Find waits out the latency, then selects from the pool.
func (f *PoolFinder) Find(ctx context.Context, q string, filters model.LeadFilters) ([]model.Lead, error) {
	if f.latency > 0 {
		timer := time.NewTimer(f.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, eris.Wrap(ctx.Err(), "session: search cancelled")
		}
	}

	pool, err := f.store.List(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "session: list pool")
	}
	return query.Select(pool, q, filters), nil
}
