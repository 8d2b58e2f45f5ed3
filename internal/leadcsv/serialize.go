package leadcsv

import (
	"strconv"
	"strings"

	"github.com/sells-group/leadfinder/internal/model"
)

// ExportColumns is the header written by Serialize and WriteXLSX.
var ExportColumns = []string{"name", "email", "company", "industry", "budget", "location", "score", "scoreConfidence", "addedAt"}

// Serialize renders leads as CSV. Rows are joined by "\n" with no trailing
// newline. Only the free-text fields are escaped.
func Serialize(leads []model.Lead) string {
	var b strings.Builder
	b.WriteString(strings.Join(ExportColumns, ","))
	for _, l := range leads {
		b.WriteByte('\n')
		b.WriteString(strings.Join(exportRow(l), ","))
	}
	return b.String()
}

func exportRow(l model.Lead) []string {
	return []string{
		escape(l.Name),
		escape(l.Email),
		escape(l.Company),
		escape(l.Industry),
		formatBudget(l.Budget),
		escape(l.Location),
		string(l.Score),
		strconv.Itoa(l.ScoreConfidence),
		l.AddedAtISO(),
	}
}

func formatBudget(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
