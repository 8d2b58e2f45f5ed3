package scorer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadfinder/internal/model"
)

func baseLead() model.Lead {
	return model.Lead{
		ID:       "1",
		Name:     "Test User",
		Email:    "test.user@example.com",
		Company:  "Example Co",
		Industry: "Software",
		Budget:   10000,
		Location: "San Francisco, CA",
	}
}

func TestScore_HighBudgetFavoredIndustry(t *testing.T) {
	lead := baseLead()
	lead.Budget = 120000

	r := Score(lead)
	assert.Equal(t, model.ScoreHigh, r.Label)
	assert.Greater(t, r.Confidence, 70)
	assert.Equal(t, 95, r.Confidence)
}

func TestScore_Table(t *testing.T) {
	tests := []struct {
		name       string
		budget     float64
		industry   string
		email      string
		wantLabel  model.Score
		wantConfid int
	}{
		{"moderate marketing", 30000, "Marketing", "a@b.com", model.ScoreMedium, 45},
		{"low manufacturing", 3000, "Manufacturing", "a@b.com", model.ScoreLow, 20},
		{"unknown industry young domain", 0, "Aerospace", "a@b.io", model.ScoreLow, 14},
		{"ai domain", 60000, "Finance", "cfo@fund.ai", model.ScoreMedium, 66},
		{"budget capped", 1_000_000, "Finance", "cfo@fund.com", model.ScoreHigh, 90},
		{"half rounds up", 750, "Aerospace", "a@b.com", model.ScoreLow, 19},
		{"medium boundary", 33000, "Software", "a@b.io", model.ScoreMedium, 53},
		{"high boundary", 52500, "Software", "a@b.com", model.ScoreHigh, 70},
		{"io substring anywhere", 30000, "Marketing", "a@company.iowa.com", model.ScoreMedium, 41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := baseLead()
			lead.Budget = tt.budget
			lead.Industry = tt.industry
			lead.Email = tt.email

			r := Score(lead)
			assert.Equal(t, tt.wantLabel, r.Label)
			assert.Equal(t, tt.wantConfid, r.Confidence)
		})
	}
}

func TestScore_NonFiniteBudget(t *testing.T) {
	for _, b := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		lead := baseLead()
		lead.Budget = b
		r := Score(lead)
		assert.Equal(t, 35, r.Confidence)
		assert.Equal(t, model.ScoreLow, r.Label)
	}
}

func TestScore_ConfidenceBounds(t *testing.T) {
	industries := []string{"Software", "Finance", "Manufacturing", "Unknown", ""}
	emails := []string{"a@b.com", "a@b.io", "a@b.ai", ""}
	for _, ind := range industries {
		for _, email := range emails {
			for budget := -10000.0; budget <= 300000; budget += 2500 {
				lead := model.Lead{Industry: ind, Email: email, Budget: budget}
				r := Score(lead)
				require.GreaterOrEqual(t, r.Confidence, 5)
				require.LessOrEqual(t, r.Confidence, 96)
			}
		}
	}
}

func TestScore_MonotonicInBudget(t *testing.T) {
	lead := baseLead()
	prev := -1
	for budget := 0.0; budget <= 200000; budget += 500 {
		lead.Budget = budget
		r := Score(lead)
		require.GreaterOrEqual(t, r.Confidence, prev, "budget %v", budget)
		prev = r.Confidence
	}
}

func TestScore_SoftwareAtLeast116k(t *testing.T) {
	lead := baseLead()
	for budget := 116000.0; budget <= 500000; budget += 7000 {
		lead.Budget = budget
		r := Score(lead)
		assert.Equal(t, model.ScoreHigh, r.Label)
		assert.Greater(t, r.Confidence, 70)
	}
}

func TestApply_SetsFields(t *testing.T) {
	lead := baseLead()
	lead.Budget = 120000
	lead.Score = model.ScoreLow
	lead.ScoreConfidence = 0

	got := Apply(lead)
	assert.Equal(t, model.ScoreHigh, got.Score)
	assert.Equal(t, 95, got.ScoreConfidence)
	assert.Equal(t, model.ScoreLow, lead.Score, "input must not be mutated")
}

func TestApplyAll(t *testing.T) {
	leads := []model.Lead{baseLead(), baseLead()}
	leads[1].Budget = 120000
	Default().ApplyAll(leads)
	assert.Equal(t, model.ScoreLow, leads[0].Score)
	assert.Equal(t, model.ScoreHigh, leads[1].Score)
}

func TestNew_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinTotal = 30
	s, err := New(cfg)
	require.NoError(t, err)

	lead := model.Lead{Industry: "Aerospace", Email: "a@b.io"}
	assert.Equal(t, 30, s.Score(lead).Confidence)
	assert.InDelta(t, 30.0, s.Total(lead), 0.0001)
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero divisor", func(c *Config) { c.BudgetDivisor = 0 }, "budget_divisor"},
		{"negative cap", func(c *Config) { c.BudgetCap = -1 }, "budget_cap"},
		{"negative weight", func(c *Config) { c.IndustryWeights["Software"] = -5 }, "Software"},
		{"inverted bounds", func(c *Config) { c.MinTotal = 90; c.MaxTotal = 10 }, "total bounds"},
		{"inverted thresholds", func(c *Config) { c.MediumThreshold = 80 }, "medium_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			_, err = New(cfg)
			assert.Error(t, err)
		})
	}
}
