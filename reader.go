package certgen

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Source is the loaded content of one spreadsheet: the header row and the
// data rows below it, in sheet order. Cells are already coerced to their
// displayed string form; missing trailing cells read as empty strings.
type Source struct {
	Headers []string
	Rows    [][]string
}

// ReadSource loads the active sheet of the spreadsheet at path.
// Row 1 is the header row; blank header cells are synthesized as
// "Column N" (1-based) so every column stays addressable. The file is
// opened read-only and never mutated.
func ReadSource(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("%w: no active sheet", ErrSourceUnreadable)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrSourceUnreadable, sheet)
	}

	src := &Source{
		Headers: make([]string, len(rows[0])),
		Rows:    rows[1:],
	}
	for i, h := range rows[0] {
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		src.Headers[i] = h
	}
	return src, nil
}

// cell returns the value at column index col of row, tolerating short rows.
// excelize trims trailing empty cells, so rows may be narrower than the
// header.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// columnIndex resolves a mapped column identifier against the header row:
// exact header text first, then a positional letter identifier ("A", "B",
// ..., "AA") when the name is not a known header. Returns -1 if neither
// resolves.
func (s *Source) columnIndex(ident string) int {
	for i, h := range s.Headers {
		if h == ident {
			return i
		}
	}
	if n, err := excelize.ColumnNameToNumber(ident); err == nil && n <= len(s.Headers) {
		return n - 1
	}
	return -1
}
