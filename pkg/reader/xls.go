package reader

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

// readXLS materializes a legacy XLS statement export. The first
// non-empty row is treated as the header row.
func (r *Reader) readXLS(data []byte, path string) (*File, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	cells := workbook.ReadAllCells(10000)

	records := make([][]string, 0, len(cells))
	for _, row := range cells {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, row)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no data found in workbook %s", path)
	}

	return r.buildFile(records, path), nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
