// Package query selects, orders, and pages lead collections.
package query

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/sells-group/leadfinder/internal/model"
)

// dateLayouts are tried in order when parsing filter bounds.
var dateLayouts = []string{
	time.RFC3339Nano,
	model.TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a filter bound. ok is false for empty or unparsable input.
// Layouts without a zone are read as UTC.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Select returns the leads matching both the free-text query and the
// filters, preserving input order. The result never aliases leads.
func Select(leads []model.Lead, q string, filters model.LeadFilters) []model.Lead {
	m := newMatcher(q, filters)
	return model.CloneAll(lo.Filter(leads, func(l model.Lead, _ int) bool {
		return m.matches(l)
	}))
}

// matcher holds the normalized form of one query so it is computed once
// per Select rather than once per lead.
type matcher struct {
	query    string
	filters  model.LeadFilters
	location string
	keywords string
	from     time.Time
	hasFrom  bool
	to       time.Time
	hasTo    bool
}

func newMatcher(q string, f model.LeadFilters) matcher {
	m := matcher{
		query:    strings.ToLower(strings.TrimSpace(q)),
		filters:  f,
		location: strings.ToLower(f.Location),
		keywords: strings.ToLower(f.Keywords),
	}
	m.from, m.hasFrom = ParseDate(f.DateFrom)
	m.to, m.hasTo = ParseDate(f.DateTo)
	return m
}

func (m matcher) matches(l model.Lead) bool {
	return m.matchesQuery(l) && m.matchesFilters(l)
}

func (m matcher) matchesQuery(l model.Lead) bool {
	if m.query == "" {
		return true
	}
	for _, field := range []string{l.Name, l.Email, l.Company, l.Industry, l.Location} {
		if strings.Contains(strings.ToLower(field), m.query) {
			return true
		}
	}
	return false
}

func (m matcher) matchesFilters(l model.Lead) bool {
	f := m.filters
	if f.Industry != "" && l.Industry != f.Industry {
		return false
	}
	if f.Score != "" && l.Score != f.Score {
		return false
	}
	if f.MinBudget != nil && l.Budget < *f.MinBudget {
		return false
	}
	if f.MaxBudget != nil && l.Budget > *f.MaxBudget {
		return false
	}
	if m.location != "" && !strings.Contains(strings.ToLower(l.Location), m.location) {
		return false
	}
	if m.keywords != "" {
		text := strings.ToLower(strings.Join([]string{l.Name, l.Company, l.Email, l.Industry, l.Location}, " "))
		if !strings.Contains(text, m.keywords) {
			return false
		}
	}
	if m.hasFrom && l.AddedAt.Before(m.from) {
		return false
	}
	if m.hasTo && l.AddedAt.After(m.to) {
		return false
	}
	return true
}
