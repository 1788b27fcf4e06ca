package certgen

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeTestSheet creates an xlsx fixture with the given rows (row 1 is the
// header) and returns its path.
func writeTestSheet(t *testing.T, rows ...[]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("setting row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "participants.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving fixture: %v", err)
	}
	return path
}

func TestReadSource(t *testing.T) {
	t.Parallel()

	path := writeTestSheet(t,
		[]any{"Full name", "Date", "Hours"},
		[]any{"Ivanova Maria", "2024-03-15", "36"},
		[]any{"Petrov Ivan", "2024-03-16", "40"},
	)

	src, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}

	wantHeaders := []string{"Full name", "Date", "Hours"}
	if len(src.Headers) != len(wantHeaders) {
		t.Fatalf("headers = %v, want %v", src.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if src.Headers[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, src.Headers[i], h)
		}
	}

	if len(src.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(src.Rows))
	}
	if src.Rows[0][0] != "Ivanova Maria" {
		t.Errorf("row 1 cell A = %q", src.Rows[0][0])
	}
}

func TestReadSourceNativeDateCell(t *testing.T) {
	t.Parallel()

	// A date-typed cell is read back as Excel's default short rendering,
	// not as the value the author typed. It must still normalize.
	path := writeTestSheet(t,
		[]any{"Full name", "Date"},
		[]any{"Ivanova Maria", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	)

	src, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}

	rec, rej, err := ValidateRow(src, 0, ColumnMapping{"NAME": "Full name", "DATE": "Date"}, PolicyStop, nil)
	if err != nil || rej != nil {
		t.Fatalf("ValidateRow: rec=%+v rej=%+v err=%v", rec, rej, err)
	}
	if rec.Values["DATE"] != "15.03.2024" {
		t.Errorf("native date cell = %q, want 15.03.2024 (raw cell read as %q)", rec.Values["DATE"], src.Rows[0][1])
	}
}

func TestReadSourceBlankHeadersSynthesized(t *testing.T) {
	t.Parallel()

	path := writeTestSheet(t,
		[]any{"Full name", "", "Hours"},
		[]any{"Ivanova Maria", "x", "36"},
	)

	src, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src.Headers[1] != "Column 2" {
		t.Errorf("blank header = %q, want \"Column 2\"", src.Headers[1])
	}
}

func TestReadSourceMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.xlsx"))
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Errorf("error = %v, want ErrSourceUnreadable", err)
	}
}

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	src := &Source{Headers: []string{"Full name", "Column 2", "Hours"}}

	tests := []struct {
		name  string
		ident string
		want  int
	}{
		{name: "header text match", ident: "Full name", want: 0},
		{name: "synthesized header match", ident: "Column 2", want: 1},
		{name: "positional letter fallback", ident: "C", want: 2},
		{name: "letter beyond header width", ident: "Z", want: -1},
		{name: "unknown name", ident: "Nope", want: -1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := src.columnIndex(tt.ident); got != tt.want {
				t.Errorf("columnIndex(%q) = %d, want %d", tt.ident, got, tt.want)
			}
		})
	}
}

func TestCellShortRow(t *testing.T) {
	t.Parallel()

	row := []string{"a"}
	if got := cell(row, 2); got != "" {
		t.Errorf("cell beyond row width = %q, want empty", got)
	}
}
