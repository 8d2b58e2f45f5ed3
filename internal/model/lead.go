package model

import (
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

// Score is the categorical rating assigned to a lead.
type Score string

const (
	ScoreHigh   Score = "High"
	ScoreMedium Score = "Medium"
	ScoreLow    Score = "Low"
)

// Scores lists the valid score labels, highest first.
var Scores = []Score{ScoreHigh, ScoreMedium, ScoreLow}

// ParseScore accepts exactly one of the score labels.
func ParseScore(s string) (Score, error) {
	for _, sc := range Scores {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", eris.Errorf("model: unknown score %q", s)
}

// TimestampLayout is the ISO 8601 form used for added_at on the wire and in CSV.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Lead is a sales prospect.
type Lead struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name" validate:"required"`
	Email           string    `json:"email" yaml:"email" validate:"required"`
	Company         string    `json:"company" yaml:"company" validate:"required"`
	Industry        string    `json:"industry" yaml:"industry" validate:"required"`
	Budget          float64   `json:"budget" yaml:"budget" validate:"gte=0"`
	Location        string    `json:"location" yaml:"location" validate:"required"`
	Score           Score     `json:"score" yaml:"score" validate:"omitempty,oneof=High Medium Low"`
	ScoreConfidence int       `json:"score_confidence" yaml:"score_confidence" validate:"gte=0,lte=100"`
	AddedAt         time.Time `json:"added_at" yaml:"added_at"`
	Tags            []string  `json:"tags" yaml:"tags"`
	Notes           string    `json:"notes" yaml:"notes"`
}

var validate = validator.New()

// ErrInvalidLead is the root of every Validate failure.
var ErrInvalidLead = eris.New("model: invalid lead")

// Validate checks the user-editable fields of a lead.
func (l *Lead) Validate() error {
	if err := validate.Struct(l); err != nil {
		return eris.Wrap(ErrInvalidLead, err.Error())
	}
	return nil
}

// Clone returns a copy that shares no slices with l.
func (l Lead) Clone() Lead {
	l.Tags = slices.Clone(l.Tags)
	return l
}

// AddedAtISO formats AddedAt the way it appears in exported CSV.
func (l Lead) AddedAtISO() string {
	return l.AddedAt.UTC().Format(TimestampLayout)
}

// CloneAll copies a slice of leads.
func CloneAll(leads []Lead) []Lead {
	out := make([]Lead, len(leads))
	for i, l := range leads {
		out[i] = l.Clone()
	}
	return out
}
