//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"serve", "generate", "search", "score", "import", "sample"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "leadfinder", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestGenerateCommand_Flags(t *testing.T) {
	flag := generateCmd.Flags().Lookup("count")
	require.NotNil(t, flag)
	assert.Equal(t, "36", flag.DefValue)

	for _, name := range []string{"format", "out"} {
		assert.NotNil(t, generateCmd.Flags().Lookup(name), "generate should have --%s flag", name)
	}
}

func TestSearchCommand_Flags(t *testing.T) {
	for _, name := range []string{
		"industry", "min-budget", "max-budget", "location", "keywords", "score",
		"from", "to", "filters-file", "sort", "dir", "page", "page-size", "format",
	} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), "search should have --%s flag", name)
	}
	assert.Equal(t, "added_at", searchCmd.Flags().Lookup("sort").DefValue)
	assert.Equal(t, "desc", searchCmd.Flags().Lookup("dir").DefValue)
	assert.Equal(t, "10", searchCmd.Flags().Lookup("page-size").DefValue)
}

func TestScoreCommand_Flags(t *testing.T) {
	for _, name := range []string{"budget", "industry", "email", "format"} {
		assert.NotNil(t, scoreCmd.Flags().Lookup(name), "score should have --%s flag", name)
	}
}
