package ingest

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v2"
)

// sheet is a parsed spreadsheet: a header index and its data rows.
type sheet struct {
	columns map[string]int
	rows    [][]string
}

// readSheet loads the first worksheet of an XLSX file. The first row is the
// header; columns are addressed by header name so column order in the source
// files does not matter.
func readSheet(path string) (*sheet, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("%s has no worksheets", path)
	}

	ws := f.Sheets[0]
	if len(ws.Rows) == 0 {
		return nil, fmt.Errorf("%s worksheet %q is empty", path, ws.Name)
	}

	columns := make(map[string]int)
	for i, cell := range rowToStrings(ws.Rows[0]) {
		columns[strings.TrimSpace(cell)] = i
	}

	rows := make([][]string, 0, len(ws.Rows)-1)
	for _, row := range ws.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}

	return &sheet{columns: columns, rows: rows}, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, 0, len(row.Cells))
	for _, cell := range row.Cells {
		cells = append(cells, cell.String())
	}
	return cells
}

// cell returns the named column of a row, or an error naming the missing
// header so a malformed file fails loudly rather than importing zeros.
func (s *sheet) cell(row []string, column string) (string, error) {
	idx, ok := s.columns[column]
	if !ok {
		return "", fmt.Errorf("missing column %q", column)
	}
	if idx >= len(row) {
		return "", nil
	}
	return strings.TrimSpace(row[idx]), nil
}
