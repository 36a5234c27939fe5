package export

import (
	"bytes"

	"github.com/sarchart/sarchart/internal/errors"
	"github.com/xuri/excelize/v2"
)

const (
	SamplesSheetName = "Samples"
	SummarySheetName = "Summary"
)

func cellName(col, row int) string {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	name, err := excelize.JoinCellName(columnName, row)
	if err != nil {
		return ""
	}
	return name
}

func encodeXLSX(snap Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})

	sheet := SamplesSheetName
	_ = f.SetSheetName("Sheet1", sheet)
	_ = f.SetColWidth(sheet, "A", "A", 12)

	header := []any{"Time"}
	for _, s := range snap.Series {
		header = append(header, s.Name)
	}
	_ = f.SetSheetRow(sheet, cellName(1, 1), &header)
	_ = f.SetCellStyle(sheet, cellName(1, 1), cellName(len(header), 1), headerStyle)

	for i, t := range snap.Axis {
		row := []any{t.Format(timeLayout)}
		for _, s := range snap.Series {
			row = append(row, s.Values[i])
		}
		if err := f.SetSheetRow(sheet, cellName(1, i+2), &row); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrExport, "Failed to fill the samples sheet", "")
		}
	}

	sheet = SummarySheetName
	_, _ = f.NewSheet(sheet)
	_ = f.SetColWidth(sheet, "A", "A", 20)
	summaryHeader := []any{"Series", "Min", "Avg", "Max", "Last"}
	_ = f.SetSheetRow(sheet, cellName(1, 1), &summaryHeader)
	_ = f.SetCellStyle(sheet, cellName(1, 1), cellName(len(summaryHeader), 1), headerStyle)
	for i, st := range stats(snap) {
		row := []any{st.Name, st.Min, st.Avg, st.Max, st.Last}
		_ = f.SetSheetRow(sheet, cellName(1, i+2), &row)
	}
	if snap.Title != "" || snap.Host != "" {
		_ = f.SetCellValue(sheet, "H1", "Title")
		_ = f.SetCellValue(sheet, "I1", snap.Title)
		_ = f.SetCellValue(sheet, "H2", "Host")
		_ = f.SetCellValue(sheet, "I2", snap.Host)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExport, "Failed to write XLSX export", "")
	}
	return buf.Bytes(), nil
}
