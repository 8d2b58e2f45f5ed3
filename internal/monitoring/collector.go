package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/samber/lo"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/store"
)

// PoolSnapshot is a point-in-time summary of the session pool.
type PoolSnapshot struct {
	Total         int                 `json:"total"`
	ByScore       map[model.Score]int `json:"by_score"`
	ByIndustry    map[string]int      `json:"by_industry"`
	AvgConfidence float64             `json:"avg_confidence"`
	BudgetSum     float64             `json:"budget_sum"`
	CollectedAt   time.Time           `json:"collected_at"`
}

// Collector gathers statistics from the store.
type Collector struct {
	store store.Store
}

// NewCollector creates a new pool collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// Collect summarizes the pool and refreshes the pool gauges.
func (c *Collector) Collect(ctx context.Context) (*PoolSnapshot, error) {
	leads, err := c.store.List(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list leads")
	}

	snap := &PoolSnapshot{
		Total:       len(leads),
		ByScore:     make(map[model.Score]int, len(model.Scores)),
		ByIndustry:  lo.CountValuesBy(leads, func(l model.Lead) string { return l.Industry }),
		BudgetSum:   lo.SumBy(leads, func(l model.Lead) float64 { return l.Budget }),
		CollectedAt: time.Now().UTC(),
	}
	for _, s := range model.Scores {
		snap.ByScore[s] = 0
	}
	for s, n := range lo.CountValuesBy(leads, func(l model.Lead) model.Score { return l.Score }) {
		snap.ByScore[s] = n
	}
	if len(leads) > 0 {
		snap.AvgConfidence = lo.MeanBy(leads, func(l model.Lead) float64 { return float64(l.ScoreConfidence) })
	}

	SetPoolSize(snap.Total)
	for s, n := range snap.ByScore {
		poolByScore.WithLabelValues(string(s)).Set(float64(n))
	}
	return snap, nil
}
