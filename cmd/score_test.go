//go:build !integration

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/scorer"
)

func TestFormatScoreReport(t *testing.T) {
	r := scoreReport{
		Budget:   75000,
		Industry: "Software",
		Email:    "ava@greenleaf.com",
		Total:    84.6,
		Result:   scorer.Result{Label: model.ScoreHigh, Confidence: 85},
	}

	var buf bytes.Buffer
	require.NoError(t, formatScoreReport(&buf, "table", r))
	assert.Contains(t, buf.String(), "Score:      High")
	assert.Contains(t, buf.String(), "Confidence: 85")
	assert.Contains(t, buf.String(), "Points:     84.60")

	buf.Reset()
	require.NoError(t, formatScoreReport(&buf, "json", r))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Software", got["industry"])
	result, ok := got["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "High", result["label"])
	assert.InDelta(t, 85, result["confidence"], 0.001)

	err := formatScoreReport(&buf, "xml", r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
