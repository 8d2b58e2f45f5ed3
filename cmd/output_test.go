//go:build !integration

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadfinder/internal/model"
)

func sampleLeads() []model.Lead {
	added := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	return []model.Lead{
		{
			ID: "lead_0001", Name: "Ava Johnson", Email: "ava@greenleaf.com",
			Company: "GreenLeaf Laboratories International", Industry: "Software",
			Budget: 75000, Location: "Portland", Score: model.ScoreHigh, ScoreConfidence: 85,
			AddedAt: added, Tags: []string{"inbound"},
		},
		{
			ID: "lead_0002", Name: "Liam Smith", Email: "liam@skyline.io",
			Company: "Skyline Systems", Industry: "Marketing",
			Budget: 25000, Location: "Denver", Score: model.ScoreMedium, ScoreConfidence: 42,
			AddedAt: added.AddDate(0, 0, -3),
		},
	}
}

func TestFormatLeadsTable(t *testing.T) {
	var buf bytes.Buffer
	formatLeadsTable(&buf, sampleLeads())

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "COMPANY")
	assert.Contains(t, output, "Ava Johnson")
	assert.Contains(t, output, "GreenLeaf Laboratorie...")
	assert.Contains(t, output, "75000")
	assert.Contains(t, output, "High (85)")
	assert.Contains(t, output, "2025-01-12")
}

func TestWriteLeads_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLeads(&buf, "json", sampleLeads()))

	var got []model.Lead
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ava Johnson", got[0].Name)
	assert.Contains(t, buf.String(), `"score_confidence": 85`)
}

func TestWriteLeads_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLeads(&buf, "yaml", sampleLeads()))
	assert.Contains(t, buf.String(), "score_confidence: 85")

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Liam Smith", got[1]["name"])
}

func TestWriteLeads_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLeads(&buf, "csv", sampleLeads()))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "name,"))
	assert.Contains(t, lines[1], "Ava Johnson")
}

func TestWriteLeads_XLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, withOutput(path, func(w io.Writer) error {
		return writeLeads(w, "xlsx", sampleLeads())
	}))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	assert.Len(t, f.Sheets[0].Rows, 3)
}

func TestWriteLeads_UnknownFormat(t *testing.T) {
	err := writeLeads(&bytes.Buffer{}, "pdf", sampleLeads())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestWithOutput_CreateError(t *testing.T) {
	err := withOutput(filepath.Join(t.TempDir(), "missing", "out.csv"), func(w io.Writer) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func TestWithOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, withOutput(path, func(w io.Writer) error {
		return writeLeads(w, "csv", nil)
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,email,company,industry,budget,location,score,scoreConfidence,addedAt", string(data))
}
