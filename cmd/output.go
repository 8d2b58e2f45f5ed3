package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadfinder/internal/leadcsv"
	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/session"
	"github.com/sells-group/leadfinder/internal/store"
)

// outputFormats are the values accepted by --format.
var outputFormats = []string{"table", "json", "yaml", "csv", "xlsx"}

func newSession(st store.Store) *session.Session {
	return session.New(st, session.NewPoolFinder(st, cfg.Session.Latency()), session.Options{
		PoolSize: cfg.Session.PoolSize,
		Debounce: cfg.Session.Debounce(),
		PageSize: cfg.Session.PageSize,
	})
}

// writeLeads renders leads to out in the given format.
func writeLeads(out io.Writer, format string, leads []model.Lead) error {
	switch format {
	case "table":
		formatLeadsTable(out, leads)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(leads)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(leads); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case "csv":
		_, err := io.WriteString(out, leadcsv.Serialize(leads))
		return err
	case "xlsx":
		return leadcsv.WriteXLSX(out, leads)
	default:
		return eris.Errorf("unknown format %q (want one of %v)", format, outputFormats)
	}
}

// withOutput calls fn with the file at path, or stdout when path is empty.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}

// formatLeadsTable writes a tabular list of leads to out.
func formatLeadsTable(out io.Writer, leads []model.Lead) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tINDUSTRY\tBUDGET\tLOCATION\tSCORE\tADDED")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t--------\t------\t--------\t-----\t-----")

	for _, l := range leads {
		company := l.Company
		if len(company) > 24 {
			company = company[:21] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%s\t%s (%d)\t%s\n",
			l.ID,
			l.Name,
			company,
			l.Industry,
			l.Budget,
			l.Location,
			l.Score,
			l.ScoreConfidence,
			l.AddedAt.UTC().Format("2006-01-02"),
		)
	}
	_ = w.Flush()
}
