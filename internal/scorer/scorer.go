package scorer

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/sells-group/leadfinder/internal/model"
)

// Result is the label and 0-100 confidence computed for a lead.
type Result struct {
	Label      model.Score `json:"label"`
	Confidence int         `json:"confidence"`
}

// Scorer applies a Config to leads. The zero value is not usable; use New.
type Scorer struct {
	cfg Config
}

// New creates a Scorer after validating cfg.
func New(cfg Config) (*Scorer, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

var defaultScorer = &Scorer{cfg: DefaultConfig()}

// Default returns the Scorer backed by DefaultConfig.
func Default() *Scorer {
	return defaultScorer
}

// Score rates a lead with the default table.
func Score(lead model.Lead) Result {
	return defaultScorer.Score(lead)
}

// Apply returns lead with its score fields recomputed by the default table.
func Apply(lead model.Lead) model.Lead {
	return defaultScorer.Apply(lead)
}

// Score rates a lead. It is pure and total.
func (s *Scorer) Score(lead model.Lead) Result {
	total := s.Total(lead)

	label := model.ScoreLow
	switch {
	case total >= s.cfg.HighThreshold:
		label = model.ScoreHigh
	case total >= s.cfg.MediumThreshold:
		label = model.ScoreMedium
	}

	return Result{
		Label:      label,
		Confidence: int(math.Floor(total + 0.5)),
	}
}

// Total returns the unrounded, clamped point total for a lead.
func (s *Scorer) Total(lead model.Lead) float64 {
	budget := lead.Budget
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		budget = 0
	}
	budgetScore := lo.Clamp(budget/s.cfg.BudgetDivisor, 0, s.cfg.BudgetCap)

	industryScore, ok := s.cfg.IndustryWeights[lead.Industry]
	if !ok {
		industryScore = s.cfg.DefaultIndustryWeight
	}

	domainScore := s.cfg.EstablishedDomainPoints
	for _, marker := range s.cfg.YoungDomainMarkers {
		if strings.Contains(lead.Email, marker) {
			domainScore = s.cfg.YoungDomainPoints
			break
		}
	}

	return lo.Clamp(budgetScore+industryScore+domainScore, s.cfg.MinTotal, s.cfg.MaxTotal)
}

// Apply returns lead with Score and ScoreConfidence set.
func (s *Scorer) Apply(lead model.Lead) model.Lead {
	r := s.Score(lead)
	lead.Score = r.Label
	lead.ScoreConfidence = r.Confidence
	return lead
}

// ApplyAll scores every lead in place.
func (s *Scorer) ApplyAll(leads []model.Lead) {
	for i := range leads {
		leads[i] = s.Apply(leads[i])
	}
}
