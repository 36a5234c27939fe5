package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrecisionLabels(t *testing.T) {
	labels := PrecisionLabels{Width: YLabelWidth}

	tests := []struct {
		name  string
		value float64
		top   float64
		want  string
	}{
		{name: "two decimals at threshold", value: 9999, top: 9999, want: "   9999.00"},
		{name: "no decimals above threshold", value: 10000, top: 10000, want: "     10000"},
		{name: "small value", value: 0, top: 100, want: "      0.00"},
		{name: "rounds", value: 12.346, top: 100, want: "     12.35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels.Label(tt.value, tt.top)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, YLabelWidth)
		})
	}
}

func TestClockTicks(t *testing.T) {
	ticks := ClockTicks{Layout: "15:04", Width: TickLabelWidth}
	ts := time.Date(0, 1, 1, 9, 5, 30, 0, time.UTC)

	assert.Equal(t, " 09:05 ", ticks.Tick(ts))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, " ab  ", center("ab", 5))
	assert.Equal(t, "abcdef", center("abcdef", 3))
	assert.Equal(t, "   ", center("", 3))
}
