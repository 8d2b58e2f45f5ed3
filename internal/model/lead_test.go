package model

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLead() Lead {
	return Lead{
		ID:              "lead_0001",
		Name:            "Ava Johnson",
		Email:           "ava@greenleaf.com",
		Company:         "GreenLeaf Labs",
		Industry:        "Software",
		Budget:          75000,
		Location:        "San Francisco, CA",
		Score:           ScoreHigh,
		ScoreConfidence: 88,
	}
}

func TestParseScore(t *testing.T) {
	for _, s := range Scores {
		got, err := ParseScore(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, bad := range []string{"high", "", "Very High"} {
		_, err := ParseScore(bad)
		assert.Error(t, err, bad)
	}
}

func TestLead_Validate(t *testing.T) {
	l := validLead()
	require.NoError(t, l.Validate())

	tests := []struct {
		name   string
		mutate func(*Lead)
	}{
		{"missing name", func(l *Lead) { l.Name = "" }},
		{"missing email", func(l *Lead) { l.Email = "" }},
		{"negative budget", func(l *Lead) { l.Budget = -1 }},
		{"bad score", func(l *Lead) { l.Score = "Great" }},
		{"confidence above 100", func(l *Lead) { l.ScoreConfidence = 101 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLead()
			tt.mutate(&l)
			err := l.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid lead")
			assert.True(t, eris.Is(err, ErrInvalidLead))
		})
	}
}

func TestLead_Clone(t *testing.T) {
	l := validLead()
	l.Tags = []string{"inbound"}

	c := l.Clone()
	c.Tags[0] = "partner"
	assert.Equal(t, "inbound", l.Tags[0])

	var bare Lead
	assert.Nil(t, bare.Clone().Tags)
}

func TestLead_AddedAtISO(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	l := Lead{AddedAt: time.Date(2025, 1, 15, 5, 30, 0, 0, loc)}
	assert.Equal(t, "2025-01-15T10:30:00.000Z", l.AddedAtISO())
}

func TestCloneAll(t *testing.T) {
	leads := []Lead{validLead(), validLead()}
	leads[1].Tags = []string{"outbound"}
	out := CloneAll(leads)
	require.Len(t, out, 2)
	out[1].Tags[0] = "x"
	assert.Equal(t, "outbound", leads[1].Tags[0])
	assert.Empty(t, CloneAll(nil))
}

func TestLeadFilters_Chips(t *testing.T) {
	assert.True(t, LeadFilters{}.IsZero())
	assert.Empty(t, LeadFilters{}.Chips())

	minB := 75000.0
	f := LeadFilters{
		Industry:  "Software",
		MinBudget: &minB,
		Location:  "CA",
		Score:     ScoreHigh,
		DateFrom:  "2025-01-01",
	}
	assert.False(t, f.IsZero())
	assert.Equal(t, []string{
		"Industry: Software",
		"Min Budget: $75,000",
		"Location: CA",
		"Score: High",
		"From: 2025-01-01",
	}, f.Chips())

	zero := 0.0
	assert.False(t, LeadFilters{MaxBudget: &zero}.IsZero())
}
