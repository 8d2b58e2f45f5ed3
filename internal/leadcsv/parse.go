// Package leadcsv imports and exports leads as CSV and XLSX.
package leadcsv

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadfinder/internal/model"
)

// RequiredColumns must all be present in an import header, in any order.
var RequiredColumns = []string{"name", "email", "company", "industry", "budget", "location"}

// Result is the outcome of an import: accepted leads plus one message per
// rejected row. Parse never fails; problems are reported in Errors.
type Result struct {
	Leads  []model.Lead `json:"leads"`
	Errors []string     `json:"errors"`
}

// Parse reads CSV text. Fields are split on raw commas; quoting is not
// understood. Accepted leads carry a placeholder Low/0 score, which callers
// replace via the scorer.
func Parse(text string) Result {
	return parse(text, time.Now(), uuid.NewString)
}

// ParseFile reads and parses a CSV file from disk.
func ParseFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, eris.Wrapf(err, "leadcsv: read %s", path)
	}
	return Parse(string(data)), nil
}

func parse(text string, now time.Time, newID func() string) Result {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return Result{Leads: []model.Lead{}, Errors: []string{"CSV is empty"}}
	}

	header := strings.Split(lines[0], ",")
	present := make(map[string]bool, len(header))
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
		present[header[i]] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Result{
			Leads:  []model.Lead{},
			Errors: []string{"Missing required columns: " + strings.Join(missing, ", ")},
		}
	}

	res := Result{Leads: []model.Lead{}, Errors: []string{}}
	for i := 1; i < len(lines); i++ {
		row := i + 1
		cols := strings.Split(lines[i], ",")
		if len(cols) < len(header) {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: Incorrect number of columns.", row))
			continue
		}

		rec := make(map[string]string, len(header))
		for idx, h := range header {
			rec[h] = strings.TrimSpace(cols[idx])
		}

		lead := model.Lead{
			Name:     rec["name"],
			Email:    rec["email"],
			Company:  rec["company"],
			Industry: rec["industry"],
			Budget:   parseBudget(rec["budget"]),
			Location: rec["location"],
		}
		if lead.Name == "" || lead.Email == "" || lead.Company == "" || lead.Industry == "" || lead.Location == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: Missing required field(s).", row))
			continue
		}

		lead.ID = newID()
		lead.Score = model.ScoreLow
		lead.AddedAt = now.UTC()
		lead.Tags = []string{}
		res.Leads = append(res.Leads, lead)
	}
	return res
}

// nonBlankLines splits on \n or \r\n and drops whitespace-only lines.
func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseBudget coerces a budget cell. Blank, non-numeric, non-finite and
// negative values all become 0.
func parseBudget(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
