package live

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sarchart/sarchart/internal/chart"
	"github.com/sarchart/sarchart/internal/errors"
	"github.com/sarchart/sarchart/internal/logger"
	"github.com/sarchart/sarchart/internal/sar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Render(t *testing.T) {
	pipe := testPipeline()
	pipe.Include = []string{"%user"}
	pipe.Derive = []sar.Derivation{{Name: "double", Expr: "[%user]*2"}}

	report, err := pipe.Extract(initialLines())
	require.NoError(t, err)

	result, err := pipe.Render(report)
	require.NoError(t, err)

	require.Len(t, result.Series, 2)
	assert.Equal(t, "%user", result.Series[0].Name)
	assert.Equal(t, "double", result.Series[1].Name)
	assert.Equal(t, []float64{25, 26, 22}, result.Series[1].Values)
	assert.Len(t, result.Axis, 3)
	assert.NotEmpty(t, result.Frame.Chart)
}

func TestPipeline_RenderDefaults(t *testing.T) {
	pipe := Pipeline{Filters: sar.Filters{CPU: "all"}}
	report, err := pipe.Extract(initialLines())
	require.NoError(t, err)

	result, err := pipe.Render(report)
	require.NoError(t, err)
	assert.Equal(t, chart.MinChartSize, result.Frame.Geometry.Width)
}

func TestPipeline_RenderDeriveError(t *testing.T) {
	pipe := testPipeline()
	pipe.Derive = []sar.Derivation{{Name: "bad", Expr: "[nope]+1"}}
	report, err := pipe.Extract(initialLines())
	require.NoError(t, err)

	_, err = pipe.Render(report)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestPipeline_ExtractDump(t *testing.T) {
	var dump bytes.Buffer
	pipe := testPipeline()
	pipe.Dump = &dump

	report, err := pipe.Extract(initialLines())
	require.NoError(t, err)

	out := dump.String()
	assert.True(t, strings.HasPrefix(out, "Filtered:\n"))
	assert.Contains(t, out, strings.Join(report.Header, "\t"))
	assert.Equal(t, len(report.Rows)+2, strings.Count(out, "\n"))
}

func TestPipeline_WarnUnknownColumns(t *testing.T) {
	pipe := testPipeline()
	pipe.Include = []string{"%usr", "%system"}
	pipe.Exclude = []string{"bogus"}
	report, err := pipe.Extract(initialLines())
	require.NoError(t, err)

	log := logger.NewBufferLogger()
	pipe.WarnUnknownColumns(report, log)

	require.Len(t, log.Messages, 2)
	assert.Contains(t, log.Messages[0].Message, `did you mean "%user"?`)
	assert.Contains(t, log.Messages[1].Message, `"bogus" is not in the report`)
}
