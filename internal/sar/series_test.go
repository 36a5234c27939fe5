package sar

import (
	"testing"
	"time"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "10:00:00", want: "10:00:00"},
		{input: "23:59:59", want: "23:59:59"},
		{input: "07:30", want: "07:30:00"},
		{input: "10:00:00 AM", wantErr: true},
		{input: "yesterday", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrMalformedTime))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("15:04:05"))
		})
	}
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{input: "12.5", want: 12.5, wantOK: true},
		{input: "3", want: 3, wantOK: true},
		{input: "-4.25", want: -4.25, wantOK: true},
		{input: "+7", want: 7, wantOK: true},
		{input: "3.2%", want: 3.2, wantOK: true},
		{input: "eth0", want: 0, wantOK: true},
		{input: ".5", want: 0.5, wantOK: true},
		{input: "n/a", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExtractNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSeries_Basic(t *testing.T) {
	report := &Report{
		Header: []string{"Time", "CPU_USER", "CPU_SYS"},
		Rows: [][]string{
			{"10:00:00", "12.5", "3"},
			{"10:00:10", "13.0", "4"},
		},
	}

	axis, series, err := BuildSeries(report, report.Header)
	require.NoError(t, err)

	require.Len(t, axis, 2)
	assert.Equal(t, 10*time.Second, axis[1].Sub(axis[0]))
	require.Len(t, series, 2)
	assert.Equal(t, Series{Name: "CPU_USER", Values: []float64{12.5, 13.0}}, series[0])
	assert.Equal(t, Series{Name: "CPU_SYS", Values: []float64{3, 4}}, series[1])
}

func TestBuildSeries_DropsNonNumericColumn(t *testing.T) {
	report := &Report{
		Header: []string{"Time", "util", "load"},
		Rows: [][]string{
			{"10:00:00", "3.2%", "1"},
			{"10:00:10", "4.1%", "2"},
			{"10:00:20", "n/a", "3"},
		},
	}

	axis, series, err := BuildSeries(report, report.Header)
	require.NoError(t, err)

	require.Len(t, series, 1)
	assert.Equal(t, "load", series[0].Name)
	assert.Len(t, series[0].Values, len(axis))
}

func TestBuildSeries_ShortRowDropsColumn(t *testing.T) {
	report := &Report{
		Header: []string{"Time", "a", "b"},
		Rows: [][]string{
			{"10:00:00", "1", "2"},
			{"10:00:10", "1"},
		},
	}

	_, series, err := BuildSeries(report, report.Header)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "a", series[0].Name)
}

func TestBuildSeries_SelectedColumnsOnly(t *testing.T) {
	report := &Report{
		Header: []string{"Time", "IFACE", "rxkB/s", "txkB/s"},
		Rows: [][]string{
			{"10:00:00", "eth0", "1", "2"},
		},
	}

	_, series, err := BuildSeries(report, []string{"Time", "txkB/s", "unknown"})
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "txkB/s", series[0].Name)
}

func TestBuildSeries_Errors(t *testing.T) {
	tests := []struct {
		name     string
		report   *Report
		wantCode string
	}{
		{
			name:     "nil report",
			report:   nil,
			wantCode: errors.ErrNoData,
		},
		{
			name:     "no rows",
			report:   &Report{Header: []string{"Time", "a"}},
			wantCode: errors.ErrNoData,
		},
		{
			name: "malformed time",
			report: &Report{
				Header: []string{"Time", "a"},
				Rows:   [][]string{{"10h00", "1"}},
			},
			wantCode: errors.ErrMalformedTime,
		},
		{
			name: "nothing numeric",
			report: &Report{
				Header: []string{"Time", "state"},
				Rows:   [][]string{{"10:00:00", "up"}},
			},
			wantCode: errors.ErrNoNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var columns []string
			if tt.report != nil {
				columns = tt.report.Header
			}
			_, _, err := BuildSeries(tt.report, columns)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestBuildSeries_LengthsMatchAxis(t *testing.T) {
	lines := sarOutput(
		"09:00:00   DEV   tps   rkB/s   wkB/s   await",
		"09:10:00   sda   1.0   2.0     3.0     0.5",
		"09:10:00   sdb   9.0   8.0     7.0     n/a",
		"09:20:00   sda   1.5   2.5     3.5     0.6",
		"09:20:00   sdb   9.5   8.5     7.5     0.7",
		"Average:   sda   1.2   2.2     3.2     0.55",
	)

	for _, filters := range []Filters{{}, {Dev: "sda"}, {Dev: "sdb"}} {
		report, err := Extract(lines, filters)
		require.NoError(t, err)

		axis, series, err := BuildSeries(report, SelectColumns(report.Header, nil, []string{"DEV"}))
		require.NoError(t, err)
		for _, s := range series {
			assert.Len(t, s.Values, len(axis), "series %s with filters %+v", s.Name, filters)
		}
	}
}

func TestBuildSeries_SkipsDiscriminator(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		header  string
		rows    []string
	}{
		{
			name:    "iface",
			filters: Filters{Iface: "eth0"},
			header:  "10:00:00     IFACE   rxpck/s   txpck/s",
			rows:    []string{"10:00:10     eth0    12.0      8.0", "10:00:20     eth0    14.0      9.0"},
		},
		{
			name:    "cpu",
			filters: Filters{CPU: "3"},
			header:  "10:00:00     CPU     %user     %system",
			rows:    []string{"10:00:10     3       12.0      8.0", "10:00:20     3       14.0      9.0"},
		},
		{
			name:    "dev",
			filters: Filters{Dev: "nvme0n1"},
			header:  "10:00:00     DEV     tps       rkB/s",
			rows:    []string{"10:00:10     nvme0n1 12.0      8.0", "10:00:20     nvme0n1 14.0      9.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Extract(sarOutput(append([]string{tt.header}, tt.rows...)...), tt.filters)
			require.NoError(t, err)
			require.NotEmpty(t, report.Discriminator)

			_, series, err := BuildSeries(report, SelectColumns(report.Header, nil, nil))
			require.NoError(t, err)

			require.Len(t, series, 2)
			for _, s := range series {
				assert.NotEqual(t, report.Discriminator, s.Name)
			}
			assert.Equal(t, []float64{12, 14}, series[0].Values)
		})
	}
}
