package kassabuch

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes rows to the first sheet of a new workbook.
//
// Cells hold the same text as in a CSV file, except the row count of an
// export which is stored as a number.
func WriteXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		values := make([]any, len(row))
		for j, field := range row {
			values[j] = field
		}
		if i == 0 && len(row) > 0 {
			if n, err := strconv.Atoi(row[0]); err == nil {
				values[0] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("could not write row %d: %w", i+1, err)
		}
	}
	_, err := f.WriteTo(w)
	return err
}
