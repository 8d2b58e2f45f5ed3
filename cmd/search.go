package main

import (
	"context"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/query"
	"github.com/sells-group/leadfinder/internal/session"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search, filter, and sort a fresh lead pool",
	Long: `Seeds a session with a generated pool, runs one search through it, and
prints the requested page.

Examples:
  # Software leads with at least $20k budget, biggest first
  search --industry Software --min-budget 20000 --sort budget --dir desc

  # Free text plus a saved filter preset
  search analytics --filters-file presets/west-coast.yaml --page 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("industry", "", "exact industry")
	f.Float64("min-budget", 0, "minimum budget (inclusive)")
	f.Float64("max-budget", 0, "maximum budget (inclusive)")
	f.String("location", "", "location substring")
	f.String("keywords", "", "substring of name, company, industry, and email")
	f.String("score", "", "score label: High, Medium, or Low")
	f.String("from", "", "earliest added date (YYYY-MM-DD or ISO 8601)")
	f.String("to", "", "latest added date (YYYY-MM-DD or ISO 8601)")
	f.String("filters-file", "", "YAML preset with query and filters; flags override it")
	f.String("sort", string(query.SortByAddedAt), "sort field")
	f.String("dir", string(query.Desc), "sort direction: asc or desc")
	f.Int("page", 1, "page number")
	f.Int("page-size", session.DefaultPageSize, "rows per page: 10, 20, 30, 40, or 50")
	f.String("format", "table", "output format: table, json, yaml, csv, or xlsx")
	f.String("out", "", "output file path (default: stdout)")
}

// searchInput builds the query and filters from an optional preset
// overlaid with the command's flags.
func searchInput(cmd *cobra.Command, args []string) (string, model.LeadFilters, error) {
	var (
		q       string
		filters model.LeadFilters
	)

	flags := cmd.Flags()
	if path, _ := flags.GetString("filters-file"); path != "" {
		p, err := query.LoadPreset(path)
		if err != nil {
			return "", filters, err
		}
		q, filters = p.Query, p.Filters
	}
	if len(args) > 0 {
		q = args[0]
	}

	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	setString("industry", &filters.Industry)
	setString("location", &filters.Location)
	setString("keywords", &filters.Keywords)
	setString("from", &filters.DateFrom)
	setString("to", &filters.DateTo)

	if flags.Changed("min-budget") {
		v, _ := flags.GetFloat64("min-budget")
		filters.MinBudget = &v
	}
	if flags.Changed("max-budget") {
		v, _ := flags.GetFloat64("max-budget")
		filters.MaxBudget = &v
	}
	if flags.Changed("score") {
		raw, _ := flags.GetString("score")
		sc, err := model.ParseScore(strings.TrimSpace(raw))
		if err != nil {
			return "", filters, err
		}
		filters.Score = sc
	}

	return q, filters, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("search"); err != nil {
		return err
	}

	q, filters, err := searchInput(cmd, args)
	if err != nil {
		return eris.Wrap(err, "search")
	}

	flags := cmd.Flags()
	rawSort, _ := flags.GetString("sort")
	rawDir, _ := flags.GetString("dir")
	page, _ := flags.GetInt("page")
	pageSize, _ := flags.GetInt("page-size")
	format, _ := flags.GetString("format")
	out, _ := flags.GetString("out")

	field, err := query.ParseSortField(rawSort)
	if err != nil {
		return eris.Wrap(err, "search")
	}
	dir, err := query.ParseDirection(rawDir)
	if err != nil {
		return eris.Wrap(err, "search")
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	sess := newSession(st)
	defer sess.Close()

	view, err := searchView(ctx, sess, q, filters, field, dir, page, pageSize)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "search"))
	log.Info("search complete",
		zap.String("status", string(view.Status)),
		zap.Int("total", view.Total),
		zap.Int("page", view.Page),
		zap.Int("total_pages", view.TotalPages),
	)
	if view.Status == session.StatusError {
		return eris.New(view.Error)
	}

	return withOutput(out, func(w io.Writer) error {
		return writeLeads(w, format, view.Leads)
	})
}

// searchView seeds sess, runs one search, and returns the requested page.
func searchView(ctx context.Context, sess *session.Session, q string, filters model.LeadFilters,
	field query.SortField, dir query.Direction, page, pageSize int) (session.View, error) {
	if _, err := sess.Start(ctx); err != nil {
		return session.View{}, err
	}
	id := sess.Search(q, filters)
	if _, err := sess.Await(ctx, id); err != nil {
		return session.View{}, err
	}

	// SortBy toggles on a repeated field, so a second call lands on the
	// other direction.
	if _, got := sess.SortBy(field); got != dir {
		sess.SortBy(field)
	}
	if err := sess.SetPageSize(pageSize); err != nil {
		return session.View{}, err
	}
	sess.SetPage(page)
	return sess.View(), nil
}
