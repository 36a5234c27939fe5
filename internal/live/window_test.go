package live

import (
	"testing"

	"github.com/sarchart/sarchart/internal/sar"
	"github.com/stretchr/testify/assert"
)

func TestSlide(t *testing.T) {
	window := &sar.Report{
		Header:        []string{"Time", "DEV", "tps"},
		Discriminator: "DEV",
		Rows: [][]string{
			{"10:00:00", "sda", "1"},
			{"10:00:00", "sdb", "2"},
			{"10:00:10", "sda", "3"},
		},
	}

	tests := []struct {
		name  string
		fresh [][]string
		want  [][]string
	}{
		{
			name:  "drops every row of the oldest bucket",
			fresh: [][]string{{"10:00:20", "sda", "4"}},
			want: [][]string{
				{"10:00:10", "sda", "3"},
				{"10:00:20", "sda", "4"},
			},
		},
		{
			name: "nothing fresh",
			want: [][]string{{"10:00:10", "sda", "3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Slide(window, tt.fresh)
			assert.Equal(t, tt.want, next.Rows)
			assert.Equal(t, window.Header, next.Header)
			assert.Equal(t, "DEV", next.Discriminator)
			assert.Len(t, window.Rows, 3, "input window is not modified")
		})
	}
}

func TestSlide_EmptyWindow(t *testing.T) {
	next := Slide(&sar.Report{Header: []string{"Time", "x"}}, [][]string{{"10:00:00", "1"}})
	assert.Equal(t, [][]string{{"10:00:00", "1"}}, next.Rows)
}
