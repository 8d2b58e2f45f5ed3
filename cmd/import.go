package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadfinder/internal/leadcsv"
	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/scorer"
)

var (
	importCSVPaths    []string
	importOut         string
	importConcurrency int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Validate, score, and merge lead CSV files",
	Long: `Parses one or more lead CSV files, scores every accepted row, and writes
the merged leads as CSV (or XLSX when --out ends in .xlsx). Row errors are
reported on stderr and do not stop the import.

Examples:
  import --csv leads.csv
  import --csv q1.csv --csv q2.csv --out merged.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		leads, rowErrs, err := importFiles(cmd.Context(), importCSVPaths, importConcurrency)
		if err != nil {
			return eris.Wrap(err, "import csv")
		}

		for _, e := range rowErrs {
			_, _ = fmt.Fprintln(os.Stderr, e)
		}

		zap.L().Info("import complete",
			zap.Int("files", len(importCSVPaths)),
			zap.Int("imported", len(leads)),
			zap.Int("errors", len(rowErrs)),
		)

		return withOutput(importOut, func(w io.Writer) error {
			if strings.EqualFold(filepath.Ext(importOut), ".xlsx") {
				return leadcsv.WriteXLSX(w, leads)
			}
			_, err := io.WriteString(w, leadcsv.Serialize(leads))
			return err
		})
	},
}

func init() {
	importCmd.Flags().StringArrayVar(&importCSVPaths, "csv", nil, "path to CSV file (repeatable, required)")
	importCmd.Flags().StringVar(&importOut, "out", "", "output file path, .csv or .xlsx (default: CSV on stdout)")
	importCmd.Flags().IntVar(&importConcurrency, "concurrency", 4, "files parsed in parallel")
	_ = importCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(importCmd)
}

// importFiles parses paths concurrently and returns the scored leads in
// argument order. Row errors are prefixed with their file name.
func importFiles(ctx context.Context, paths []string, concurrency int) ([]model.Lead, []string, error) {
	results := make([]leadcsv.Result, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := leadcsv.ParseFile(path)
			if err != nil {
				return err
			}
			zap.L().Debug("import: parsed file",
				zap.String("csv", path),
				zap.Int("leads", len(res.Leads)),
				zap.Int("errors", len(res.Errors)),
			)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		leads   []model.Lead
		rowErrs []string
	)
	for i, res := range results {
		name := filepath.Base(paths[i])
		for _, e := range res.Errors {
			rowErrs = append(rowErrs, name+": "+e)
		}
		leads = append(leads, res.Leads...)
	}
	scorer.Default().ApplyAll(leads)

	return leads, rowErrs, nil
}
