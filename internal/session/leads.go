package session

import (
	"context"
	"io"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadfinder/internal/leadcsv"
	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/monitoring"
)

// ImportResult reports a CSV import.
type ImportResult struct {
	Imported int          `json:"imported"`
	Errors   []string     `json:"errors"`
	Leads    []model.Lead `json:"leads"`
}

// Import parses CSV text, scores the accepted rows, and places them ahead
// of both the pool and the current results. Row problems are reported in
// the result; the error is only for store failures.
func (s *Session) Import(ctx context.Context, text string) (ImportResult, error) {
	parsed := leadcsv.Parse(text)
	s.scorer.ApplyAll(parsed.Leads)
	monitoring.RecordImport(len(parsed.Leads), len(parsed.Errors))

	res := ImportResult{
		Imported: len(parsed.Leads),
		Errors:   parsed.Errors,
		Leads:    parsed.Leads,
	}
	if len(parsed.Leads) == 0 {
		return res, nil
	}

	if err := s.store.Prepend(ctx, parsed.Leads); err != nil {
		return ImportResult{}, eris.Wrap(err, "session: import")
	}
	if n, err := s.store.Count(ctx); err == nil {
		monitoring.SetPoolSize(n)
	} else {
		s.log.Warn("pool size not refreshed", zap.Error(err))
	}

	s.mu.Lock()
	s.results = slices.Concat(model.CloneAll(parsed.Leads), s.results)
	// Imported rows replace an empty or failed view. A search still in
	// flight keeps its loading status.
	switch s.status {
	case StatusEmpty, StatusIdle, StatusError:
		s.status = StatusReady
		s.errMsg = ""
	}
	s.mu.Unlock()

	s.log.Info("imported leads",
		zap.Int("imported", res.Imported),
		zap.Int("rejected", len(res.Errors)),
	)
	return res, nil
}

// Get returns one lead from the pool.
func (s *Session) Get(ctx context.Context, id string) (*model.Lead, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, eris.Wrapf(err, "session: get %s", id)
	}
	return l, nil
}

// Save replaces an existing lead. The lead is validated and re-scored from
// its budget, industry, and email before it is stored. ID and AddedAt are
// fixed at creation and always come from the stored lead.
func (s *Session) Save(ctx context.Context, lead model.Lead) (model.Lead, error) {
	existing, err := s.store.Get(ctx, lead.ID)
	if err != nil {
		return model.Lead{}, eris.Wrapf(err, "session: save %s", lead.ID)
	}
	lead.ID = existing.ID
	lead.AddedAt = existing.AddedAt
	if lead.Tags == nil {
		lead.Tags = existing.Tags
	}

	lead = s.scorer.Apply(lead)
	if err := lead.Validate(); err != nil {
		return model.Lead{}, err
	}
	if err := s.store.Update(ctx, lead); err != nil {
		return model.Lead{}, eris.Wrapf(err, "session: save %s", lead.ID)
	}

	s.mu.Lock()
	s.replaceResult(lead)
	s.mu.Unlock()
	return lead, nil
}

// Export serializes the current results, in search order, as CSV.
func (s *Session) Export() string {
	return leadcsv.Serialize(s.Results())
}

// ExportXLSX writes the current results as an XLSX workbook.
func (s *Session) ExportXLSX(w io.Writer) error {
	return leadcsv.WriteXLSX(w, s.Results())
}
