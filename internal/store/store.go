// Package store holds the session's lead pool.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadfinder/internal/model"
)

// ErrNotFound is returned when no lead has the requested id.
var ErrNotFound = eris.New("store: lead not found")

// Store is the lead pool owned by a session. List returns leads in pool
// order; Prepend places new leads ahead of the existing ones.
// Implementations are safe for concurrent use and never hand out slices
// that alias their own state.
type Store interface {
	Reset(ctx context.Context, leads []model.Lead) error
	List(ctx context.Context) ([]model.Lead, error)
	Get(ctx context.Context, id string) (*model.Lead, error)
	Prepend(ctx context.Context, leads []model.Lead) error
	Update(ctx context.Context, lead model.Lead) error
	Count(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Drivers lists the accepted values for store.driver.
var Drivers = []string{"memory", "sqlite"}

// Open returns the store for driver. An empty dsn for sqlite means an
// in-memory database.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "", "memory":
		s = NewMemory()
	case "sqlite":
		if dsn == "" {
			dsn = ":memory:"
		}
		s, err = NewSQLite(dsn)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
