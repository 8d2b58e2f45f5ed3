//go:build !integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/query"
	"github.com/sells-group/leadfinder/internal/session"
	"github.com/sells-group/leadfinder/internal/store"
)

func parsedSearchCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "search"}
	addSearchFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestSearchInput_Flags(t *testing.T) {
	cmd := parsedSearchCmd(t,
		"--industry", "Software",
		"--min-budget", "0",
		"--location", "CA",
		"--score", "High",
		"--from", "2025-01-01",
	)

	q, f, err := searchInput(cmd, []string{"ava"})
	require.NoError(t, err)
	assert.Equal(t, "ava", q)
	assert.Equal(t, "Software", f.Industry)
	require.NotNil(t, f.MinBudget)
	assert.Zero(t, *f.MinBudget)
	assert.Nil(t, f.MaxBudget)
	assert.Equal(t, "CA", f.Location)
	assert.Equal(t, model.ScoreHigh, f.Score)
	assert.Equal(t, "2025-01-01", f.DateFrom)
	assert.Empty(t, f.DateTo)
}

func TestSearchInput_NoFlagsIsUnfiltered(t *testing.T) {
	q, f, err := searchInput(parsedSearchCmd(t), nil)
	require.NoError(t, err)
	assert.Empty(t, q)
	assert.True(t, f.IsZero())
}

func TestSearchInput_BadScore(t *testing.T) {
	_, _, err := searchInput(parsedSearchCmd(t, "--score", "great"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown score")
}

func TestSearchInput_PresetOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query: analytics\nfilters:\n  industry: Software\n  max_budget: 50000\n"), 0o644))

	cmd := parsedSearchCmd(t, "--filters-file", path, "--industry", "Finance")
	q, f, err := searchInput(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "analytics", q)
	assert.Equal(t, "Finance", f.Industry)
	require.NotNil(t, f.MaxBudget)
	assert.InDelta(t, 50000, *f.MaxBudget, 0.001)

	q, _, err = searchInput(parsedSearchCmd(t, "--filters-file", path), []string{"override"})
	require.NoError(t, err)
	assert.Equal(t, "override", q)
}

func TestSearchView_SortAndPage(t *testing.T) {
	st := store.NewMemory()
	sess := session.New(st, session.NewPoolFinder(st, 0), session.Options{PoolSize: 36, PageSize: 10})
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view, err := searchView(ctx, sess, "", model.LeadFilters{}, query.SortByBudget, query.Desc, 2, 20)
	require.NoError(t, err)

	assert.Equal(t, session.StatusReady, view.Status)
	assert.Equal(t, query.SortByBudget, view.SortBy)
	assert.Equal(t, query.Desc, view.SortDir)
	assert.Equal(t, 36, view.Total)
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, 2, view.Page)
	require.Len(t, view.Leads, 16)
	for i := 1; i < len(view.Leads); i++ {
		assert.GreaterOrEqual(t, view.Leads[i-1].Budget, view.Leads[i].Budget)
	}
}

func TestSearchView_FiltersAndClampsPage(t *testing.T) {
	st := store.NewMemory()
	sess := session.New(st, session.NewPoolFinder(st, 0), session.Options{PoolSize: 36, PageSize: 10})
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view, err := searchView(ctx, sess, "", model.LeadFilters{Industry: "Software"}, query.SortByName, query.Asc, 9, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page)
	require.NotEmpty(t, view.Leads)
	for _, l := range view.Leads {
		assert.Equal(t, "Software", l.Industry)
	}
}

func TestSearchView_BadPageSize(t *testing.T) {
	st := store.NewMemory()
	sess := session.New(st, session.NewPoolFinder(st, 0), session.Options{PoolSize: 4, PageSize: 10})
	defer sess.Close()

	_, err := searchView(context.Background(), sess, "", model.LeadFilters{}, query.SortByName, query.Asc, 1, 15)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page size")
}
