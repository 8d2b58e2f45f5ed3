// Package scorer rates leads from their budget, industry, and email domain.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Config holds the weights and thresholds of the lead scoring heuristic.
type Config struct {
	// BudgetDivisor converts budget into points; BudgetCap bounds them.
	BudgetDivisor float64
	BudgetCap     float64

	IndustryWeights       map[string]float64
	DefaultIndustryWeight float64

	// Emails containing any of YoungDomainMarkers get YoungDomainPoints,
	// everything else gets EstablishedDomainPoints.
	YoungDomainMarkers      []string
	YoungDomainPoints       float64
	EstablishedDomainPoints float64

	MinTotal float64
	MaxTotal float64

	HighThreshold   float64
	MediumThreshold float64
}

// DefaultConfig returns the production scoring table.
func DefaultConfig() Config {
	return Config{
		BudgetDivisor: 1500,
		BudgetCap:     60,

		IndustryWeights: map[string]float64{
			"Software":      25,
			"Finance":       20,
			"E-commerce":    18,
			"Consulting":    16,
			"Marketing":     15,
			"Healthcare":    14,
			"Logistics":     12,
			"Real Estate":   10,
			"Education":     10,
			"Manufacturing": 8,
		},
		DefaultIndustryWeight: 8,

		// Newer-style domains score lower than .com and friends.
		YoungDomainMarkers:      []string{".io", ".ai"},
		YoungDomainPoints:       6,
		EstablishedDomainPoints: 10,

		MinTotal: 5,
		MaxTotal: 96,

		HighThreshold:   70,
		MediumThreshold: 40,
	}
}

// ValidateConfig checks that a Config is internally consistent.
func ValidateConfig(c Config) error {
	var errs []string

	if c.BudgetDivisor <= 0 {
		errs = append(errs, "budget_divisor must be > 0")
	}
	if c.BudgetCap < 0 {
		errs = append(errs, "budget_cap must be >= 0")
	}
	for industry, w := range c.IndustryWeights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("weight for %q must be >= 0", industry))
		}
	}
	if c.MinTotal < 0 || c.MaxTotal > 100 || c.MinTotal > c.MaxTotal {
		errs = append(errs, "total bounds must satisfy 0 <= min <= max <= 100")
	}
	if c.MediumThreshold > c.HighThreshold {
		errs = append(errs, "medium_threshold must be <= high_threshold")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
