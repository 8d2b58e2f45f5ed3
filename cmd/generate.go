package main

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadfinder/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a scored mock lead pool",
	Long: `Generates the deterministic mock lead pool a new session starts from.

Examples:
  # Print the default 36 leads as a table
  generate

  # Write 100 leads to a spreadsheet
  generate --count 100 --format xlsx --out leads.xlsx`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Int("count", generator.DefaultCount, "number of leads to generate")
	f.String("format", "table", "output format: table, json, yaml, csv, or xlsx")
	f.String("out", "", "output file path (default: stdout)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	count, _ := cmd.Flags().GetInt("count")
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	if count < 0 {
		return eris.Errorf("generate: count must be >= 0, got %d", count)
	}

	leads := generator.Generate(count)
	zap.L().Debug("generate: pool ready", zap.Int("count", len(leads)))

	return withOutput(out, func(w io.Writer) error {
		return writeLeads(w, format, leads)
	})
}
