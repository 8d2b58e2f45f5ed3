package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sells-group/leadfinder/internal/model"
)

// SortField names a sortable lead attribute.
type SortField string

const (
	SortByName            SortField = "name"
	SortByCompany         SortField = "company"
	SortByEmail           SortField = "email"
	SortByIndustry        SortField = "industry"
	SortByBudget          SortField = "budget"
	SortByLocation        SortField = "location"
	SortByScore           SortField = "score"
	SortByScoreConfidence SortField = "score_confidence"
	SortByAddedAt         SortField = "added_at"
	SortByID              SortField = "id"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// ParseDirection accepts "asc" or "desc", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", eris.Errorf("query: unknown sort direction %q", s)
}

// compareFunc orders two leads on one field. coll is nil for numeric and
// time fields.
type compareFunc func(coll *collate.Collator, a, b model.Lead) int

func textField(get func(model.Lead) string) compareFunc {
	return func(coll *collate.Collator, a, b model.Lead) int {
		return coll.CompareString(get(a), get(b))
	}
}

var comparators = map[SortField]compareFunc{
	SortByName:     textField(func(l model.Lead) string { return l.Name }),
	SortByCompany:  textField(func(l model.Lead) string { return l.Company }),
	SortByEmail:    textField(func(l model.Lead) string { return l.Email }),
	SortByIndustry: textField(func(l model.Lead) string { return l.Industry }),
	SortByLocation: textField(func(l model.Lead) string { return l.Location }),
	SortByScore:    textField(func(l model.Lead) string { return string(l.Score) }),
	SortByID:       textField(func(l model.Lead) string { return l.ID }),
	SortByBudget: func(_ *collate.Collator, a, b model.Lead) int {
		return cmp.Compare(a.Budget, b.Budget)
	},
	SortByScoreConfidence: func(_ *collate.Collator, a, b model.Lead) int {
		return cmp.Compare(a.ScoreConfidence, b.ScoreConfidence)
	},
	SortByAddedAt: func(_ *collate.Collator, a, b model.Lead) int {
		return a.AddedAt.Compare(b.AddedAt)
	},
}

// aliases maps the camelCase column names used in the CSV export
// header onto SortField values.
var aliases = map[string]SortField{
	"scoreconfidence": SortByScoreConfidence,
	"addedat":         SortByAddedAt,
	"added":           SortByAddedAt,
}

// SortFields lists every sortable field.
func SortFields() []SortField {
	return []SortField{
		SortByName, SortByCompany, SortByEmail, SortByIndustry, SortByBudget,
		SortByLocation, SortByScore, SortByScoreConfidence, SortByAddedAt, SortByID,
	}
}

// ParseSortField accepts snake_case field names and the camelCase names
// used in exported CSV headers.
func ParseSortField(s string) (SortField, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	if _, ok := comparators[SortField(key)]; ok {
		return SortField(key), nil
	}
	return "", eris.Errorf("query: unknown sort field %q", s)
}

// Order returns a sorted copy of leads. The sort is stable; Desc negates the
// comparison so ties keep their input order in both directions. Unknown
// fields leave the order unchanged.
func Order(leads []model.Lead, field SortField, dir Direction) []model.Lead {
	out := model.CloneAll(leads)
	compare, ok := comparators[field]
	if !ok {
		return out
	}

	// Collators are not safe for concurrent use.
	coll := collate.New(language.English)
	sign := 1
	if dir == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b model.Lead) int {
		return sign * compare(coll, a, b)
	})
	return out
}
