package chart

import (
	"strings"
	"testing"

	"github.com/sarchart/sarchart/internal/sar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	stats := Summarize([]sar.Series{
		{Name: "a", Values: []float64{4, 1, 7}},
		{Name: "empty"},
	})

	require.Len(t, stats, 1)
	assert.Equal(t, Stats{Name: "a", Min: 1, Avg: 4, Max: 7, Last: 7}, stats[0])
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary([]Stats{
		{Name: "kbmemfree", Min: 1200, Avg: 15000.5, Max: 25000, Last: 20000},
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "series "))
	assert.Contains(t, lines[1], "25,000")
	assert.NotContains(t, lines[1], "25,000.00", "large values drop decimals")

	out = FormatSummary([]Stats{{Name: "%user", Min: 1, Avg: 2.5, Max: 3, Last: 3}})
	assert.Contains(t, out, "2.50")

	assert.Empty(t, FormatSummary(nil))
}
