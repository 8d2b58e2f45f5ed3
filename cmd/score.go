package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single lead",
	Long: `Rates one lead from its budget, industry, and email domain.

Examples:
  score --budget 75000 --industry Software --email ava@greenleaf.com
  score --budget 12000 --industry Retail --email max@shop.io --format json`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.Float64("budget", 0, "lead budget")
	f.String("industry", "", "lead industry")
	f.String("email", "", "lead email")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(scoreCmd)
}

// scoreReport is the score command's output.
type scoreReport struct {
	Budget   float64       `json:"budget"`
	Industry string        `json:"industry"`
	Email    string        `json:"email"`
	Total    float64       `json:"total"`
	Result   scorer.Result `json:"result"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	budget, _ := flags.GetFloat64("budget")
	industry, _ := flags.GetString("industry")
	email, _ := flags.GetString("email")
	format, _ := flags.GetString("format")

	lead := model.Lead{Budget: budget, Industry: industry, Email: email}
	s := scorer.Default()
	report := scoreReport{
		Budget:   budget,
		Industry: industry,
		Email:    email,
		Total:    s.Total(lead),
		Result:   s.Score(lead),
	}

	return formatScoreReport(os.Stdout, format, report)
}

func formatScoreReport(out io.Writer, format string, r scoreReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "table":
		_, _ = fmt.Fprintf(out, "Score:      %s\n", r.Result.Label)
		_, _ = fmt.Fprintf(out, "Confidence: %d\n", r.Result.Confidence)
		_, _ = fmt.Fprintf(out, "Points:     %.2f\n", r.Total)
		return nil
	default:
		return eris.Errorf("unknown format %q (want table or json)", format)
	}
}
