package model

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LeadFilters narrows a lead collection. Empty strings and nil pointers
// impose no constraint.
type LeadFilters struct {
	Industry  string   `json:"industry,omitempty" yaml:"industry,omitempty"`
	MinBudget *float64 `json:"min_budget,omitempty" yaml:"min_budget,omitempty"`
	MaxBudget *float64 `json:"max_budget,omitempty" yaml:"max_budget,omitempty"`
	Location  string   `json:"location,omitempty" yaml:"location,omitempty"`
	Keywords  string   `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Score     Score    `json:"score,omitempty" yaml:"score,omitempty"`
	DateFrom  string   `json:"date_from,omitempty" yaml:"date_from,omitempty"`
	DateTo    string   `json:"date_to,omitempty" yaml:"date_to,omitempty"`
}

// IsZero reports whether no filter is active.
func (f LeadFilters) IsZero() bool {
	return len(f.Chips()) == 0
}

// Chips renders each active filter as a short label, in sidebar order.
func (f LeadFilters) Chips() []string {
	p := message.NewPrinter(language.English)
	var chips []string
	if f.Industry != "" {
		chips = append(chips, "Industry: "+f.Industry)
	}
	if f.MinBudget != nil {
		chips = append(chips, p.Sprintf("Min Budget: $%v", *f.MinBudget))
	}
	if f.MaxBudget != nil {
		chips = append(chips, p.Sprintf("Max Budget: $%v", *f.MaxBudget))
	}
	if f.Location != "" {
		chips = append(chips, "Location: "+f.Location)
	}
	if f.Keywords != "" {
		chips = append(chips, "Keywords: "+f.Keywords)
	}
	if f.Score != "" {
		chips = append(chips, fmt.Sprintf("Score: %s", f.Score))
	}
	if f.DateFrom != "" {
		chips = append(chips, "From: "+f.DateFrom)
	}
	if f.DateTo != "" {
		chips = append(chips, "To: "+f.DateTo)
	}
	return chips
}
