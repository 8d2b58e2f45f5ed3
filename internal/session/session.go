// Package session owns one browsing session: the lead pool, the current
// search and its results, and the table's sort and page state.
//
// Searches are debounced and resolved asynchronously. Each call to Search
// gets a request id; only the result of the most recent request is ever
// applied, so a slow earlier search can never overwrite a newer one.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadfinder/internal/generator"
	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/monitoring"
	"github.com/sells-group/leadfinder/internal/query"
	"github.com/sells-group/leadfinder/internal/scorer"
	"github.com/sells-group/leadfinder/internal/store"
)

// Status is the state of the current search.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// FetchErrorMessage is shown when a search fails.
const FetchErrorMessage = "Failed to fetch leads."

// Options configures a Session.
type Options struct {
	PoolSize int
	Debounce time.Duration
	PageSize int
	Scorer   *scorer.Scorer
	Now      func() time.Time
}

// DefaultOptions returns the interactive defaults.
func DefaultOptions() Options {
	return Options{
		PoolSize: generator.DefaultCount,
		Debounce: 300 * time.Millisecond,
		PageSize: DefaultPageSize,
	}
}

// Snapshot describes the current search.
type Snapshot struct {
	RequestID uint64            `json:"request_id"`
	Status    Status            `json:"status"`
	Error     string            `json:"error,omitempty"`
	Query     string            `json:"query"`
	Filters   model.LeadFilters `json:"filters"`
	Chips     []string          `json:"chips"`
	Results   int               `json:"results"`
}

// Session is safe for concurrent use.
type Session struct {
	store     store.Store
	finder    Finder
	scorer    *scorer.Scorer
	opts      Options
	debounced func(f func())
	log       *zap.Logger

	ctx  context.Context
	stop context.CancelFunc

	mu       sync.Mutex
	changed  chan struct{}
	latest   uint64
	resolved uint64
	cancel   context.CancelFunc
	status   Status
	errMsg   string
	query    string
	filters  model.LeadFilters
	results  []model.Lead
	sort     query.SortField
	dir      query.Direction
	page     int
	pageSize int
}

// New creates a session over st. Call Start to seed the pool.
func New(st store.Store, finder Finder, opts Options) *Session {
	if opts.PoolSize < 0 {
		opts.PoolSize = 0
	}
	if !validPageSize(opts.PageSize) {
		opts.PageSize = DefaultPageSize
	}
	if opts.Scorer == nil {
		opts.Scorer = scorer.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		store:     st,
		finder:    finder,
		scorer:    opts.Scorer,
		opts:      opts,
		debounced: debounce.New(opts.Debounce),
		log:       zap.L().With(zap.String("component", "session")),
		ctx:       ctx,
		stop:      cancel,
		changed:   make(chan struct{}),
		status:    StatusIdle,
		results:   []model.Lead{},
		sort:      query.SortByAddedAt,
		dir:       query.Desc,
		page:      1,
		pageSize:  opts.PageSize,
	}
}

// Start replaces the pool with freshly generated leads and issues the
// initial empty search.
func (s *Session) Start(ctx context.Context) (uint64, error) {
	pool := generator.GenerateAt(s.opts.PoolSize, s.opts.Now())
	if err := s.store.Reset(ctx, pool); err != nil {
		return 0, eris.Wrap(err, "session: seed pool")
	}
	monitoring.SetPoolSize(len(pool))
	s.log.Info("session started", zap.Int("pool_size", len(pool)))
	return s.Search("", model.LeadFilters{}), nil
}

// Close cancels any in-flight search. Pending searches never resolve.
func (s *Session) Close() {
	s.stop()
}

// Search schedules a search and returns its request id. Calls within the
// debounce window coalesce into one run.
func (s *Session) Search(q string, filters model.LeadFilters) uint64 {
	s.mu.Lock()
	s.latest++
	id := s.latest
	s.query = q
	s.filters = filters
	s.status = StatusLoading
	s.errMsg = ""
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.debounced(func() { s.run(ctx, id, q, filters) })
	return id
}

// Retry re-issues the last search.
func (s *Session) Retry() uint64 {
	s.mu.Lock()
	q, f := s.query, s.filters
	s.mu.Unlock()
	return s.Search(q, f)
}

func (s *Session) run(ctx context.Context, id uint64, q string, filters model.LeadFilters) {
	start := time.Now()
	leads, err := s.finder.Find(ctx, q, filters)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.latest {
		monitoring.RecordSearch(monitoring.SearchStale)
		s.log.Debug("discarding stale search", zap.Uint64("request_id", id), zap.Uint64("latest", s.latest))
		return
	}
	if s.ctx.Err() != nil {
		return
	}

	if err != nil {
		monitoring.RecordSearch(monitoring.SearchFailed)
		s.log.Warn("search failed", zap.Uint64("request_id", id), zap.Error(err))
		s.status = StatusError
		s.errMsg = FetchErrorMessage
		s.results = []model.Lead{}
	} else {
		monitoring.RecordSearch(monitoring.SearchApplied)
		s.results = leads
		s.status = StatusReady
		if len(leads) == 0 {
			s.status = StatusEmpty
		}
		s.log.Debug("search applied",
			zap.Uint64("request_id", id),
			zap.Int("results", len(leads)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	s.page = 1
	s.resolved = id
	s.notify()
}

// notify must be called with mu held.
func (s *Session) notify() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// Await blocks until request id, or a later request, has resolved.
func (s *Session) Await(ctx context.Context, id uint64) (Snapshot, error) {
	for {
		s.mu.Lock()
		if id > s.latest {
			s.mu.Unlock()
			return Snapshot{}, eris.Errorf("session: unknown request %d", id)
		}
		if s.resolved >= id {
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, nil
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return Snapshot{}, eris.Wrapf(ctx.Err(), "session: await request %d", id)
		case <-s.ctx.Done():
			return Snapshot{}, eris.New("session: closed")
		}
	}
}

// Snapshot returns the current search state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	chips := s.filters.Chips()
	if chips == nil {
		chips = []string{}
	}
	return Snapshot{
		RequestID: s.latest,
		Status:    s.status,
		Error:     s.errMsg,
		Query:     s.query,
		Filters:   s.filters,
		Chips:     chips,
		Results:   len(s.results),
	}
}

// Results returns a copy of the current result set in search order.
func (s *Session) Results() []model.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneAll(s.results)
}

// replaceResult must be called with mu held.
func (s *Session) replaceResult(lead model.Lead) {
	if i := slices.IndexFunc(s.results, func(l model.Lead) bool { return l.ID == lead.ID }); i >= 0 {
		s.results[i] = lead.Clone()
	}
}
