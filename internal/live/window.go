package live

import "github.com/sarchart/sarchart/internal/sar"

// Slide advances the retained window: every row at the oldest timestamp
// is dropped and the fresh rows are appended. Neither input is modified.
func Slide(window *sar.Report, fresh [][]string) *sar.Report {
	next := &sar.Report{
		Header:        window.Header,
		Discriminator: window.Discriminator,
	}
	if len(window.Rows) > 0 {
		oldest := window.Rows[0][0]
		for _, row := range window.Rows {
			if row[0] != oldest {
				next.Rows = append(next.Rows, row)
			}
		}
	}
	next.Rows = append(next.Rows, fresh...)
	return next
}
