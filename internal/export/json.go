package export

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sarchart/sarchart/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type document struct {
	Title      string      `json:"title,omitempty"`
	Host       string      `json:"host,omitempty"`
	ExportedAt time.Time   `json:"exported_at"`
	Times      []string    `json:"times"`
	Series     []seriesDoc `json:"series"`
}

type seriesDoc struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Min    float64   `json:"min"`
	Avg    float64   `json:"avg"`
	Max    float64   `json:"max"`
	Last   float64   `json:"last"`
}

func encodeJSON(snap Snapshot) ([]byte, error) {
	doc := document{
		Title:      snap.Title,
		Host:       snap.Host,
		ExportedAt: snap.Taken,
		Times:      make([]string, len(snap.Axis)),
	}
	for i, t := range snap.Axis {
		doc.Times[i] = t.Format(timeLayout)
	}
	for i, st := range stats(snap) {
		doc.Series = append(doc.Series, seriesDoc{
			Name:   st.Name,
			Values: snap.Series[i].Values,
			Min:    st.Min,
			Avg:    st.Avg,
			Max:    st.Max,
			Last:   st.Last,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExport, "Failed to encode JSON export", "")
	}
	return append(data, '\n'), nil
}
