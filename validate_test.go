package certgen

import (
	"errors"
	"strings"
	"testing"
)

func testSource() *Source {
	return &Source{
		Headers: []string{"Full name", "Date", "Hours", "Group"},
		Rows: [][]string{
			{"Ivanova Maria", "2024-03-15", "36", "A-1"},
			{"Petrov Ivan", "", "40", "A-2"},
			{"Sidorova Anna", "15.03.2024", "", "A-1"},
		},
	}
}

func testMapping() ColumnMapping {
	return ColumnMapping{
		"NAME": "Full name",
		"DATE": "Date",
		"TIME": "Hours",
	}
}

func TestBuildRecordsAllFilled(t *testing.T) {
	t.Parallel()

	src := &Source{
		Headers: []string{"Full name", "Date"},
		Rows: [][]string{
			{"Ivanova Maria", "2024-03-15"},
			{"Petrov Ivan", "16.03.2024"},
		},
	}
	mapping := ColumnMapping{"NAME": "Full name", "DATE": "Date"}

	records, rejected, err := BuildRecords(src, mapping, PolicyStop, nil)
	if err != nil {
		t.Fatalf("BuildRecords: %v", err)
	}
	if len(rejected) != 0 {
		t.Errorf("rejected = %v, want none", rejected)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	if records[0].Values["NAME"] != "Ivanova Maria" {
		t.Errorf("NAME = %q", records[0].Values["NAME"])
	}
	if records[0].Values["DATE"] != "15.03.2024" {
		t.Errorf("DATE = %q, want reformatted 15.03.2024", records[0].Values["DATE"])
	}
	if records[1].Values["DATE"] != "16.03.2024" {
		t.Errorf("DATE = %q, want 16.03.2024", records[1].Values["DATE"])
	}
	if records[0].Row != 2 || records[1].Row != 3 {
		t.Errorf("row numbers = %d, %d, want 2, 3", records[0].Row, records[1].Row)
	}
}

func TestBuildRecordsSkipPolicy(t *testing.T) {
	t.Parallel()

	records, rejected, err := BuildRecords(testSource(), testMapping(), PolicySkip, nil)
	if err != nil {
		t.Fatalf("BuildRecords: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (rows 3 and 4 have empty mapped cells)", len(records))
	}
	if records[0].Values["NAME"] != "Ivanova Maria" {
		t.Errorf("surviving record = %+v", records[0])
	}

	if len(rejected) != 2 {
		t.Fatalf("rejected = %d, want 2", len(rejected))
	}
	if rejected[0].Row != 3 || !strings.Contains(rejected[0].Reason, "DATE") {
		t.Errorf("first rejection = %+v", rejected[0])
	}
	if rejected[1].Row != 4 || !strings.Contains(rejected[1].Reason, "TIME") {
		t.Errorf("second rejection = %+v", rejected[1])
	}
}

func TestBuildRecordsStopPolicy(t *testing.T) {
	t.Parallel()

	records, _, err := BuildRecords(testSource(), testMapping(), PolicyStop, nil)
	if !errors.Is(err, ErrBatchStopped) {
		t.Fatalf("error = %v, want ErrBatchStopped", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error %q does not name the offending row", err)
	}
	// Only the row before the stop was accepted.
	if len(records) != 1 {
		t.Errorf("records before stop = %d, want 1", len(records))
	}
}

func TestBuildRecordsDefaultPolicy(t *testing.T) {
	t.Parallel()

	defaults := DefaultValues{"DATE": "01.09.2024"}

	records, rejected, err := BuildRecords(testSource(), testMapping(), PolicyDefault, defaults)
	if err != nil {
		t.Fatalf("BuildRecords: %v", err)
	}
	if len(rejected) != 0 {
		t.Errorf("rejected = %v, want none under default policy", rejected)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	if records[1].Values["DATE"] != "01.09.2024" {
		t.Errorf("defaulted DATE = %q, want configured default", records[1].Values["DATE"])
	}
	// TIME has no configured default: the fixed fallback literal applies.
	if records[2].Values["TIME"] != "—" {
		t.Errorf("defaulted TIME = %q, want fallback literal", records[2].Values["TIME"])
	}
}

func TestBuildRecordsEmptyStringDefault(t *testing.T) {
	t.Parallel()

	// An empty-string default is a deliberate configuration, not absence.
	defaults := DefaultValues{"DATE": "", "TIME": ""}

	records, rejected, err := BuildRecords(testSource(), testMapping(), PolicyDefault, defaults)
	if err != nil {
		t.Fatalf("BuildRecords: %v", err)
	}
	if len(rejected) != 0 || len(records) != 3 {
		t.Fatalf("records = %d, rejected = %v", len(records), rejected)
	}

	if got := records[1].Values["DATE"]; got != "" {
		t.Errorf("empty-string default DATE = %q, want empty", got)
	}
	if got := records[2].Values["TIME"]; got != "" {
		t.Errorf("empty-string default TIME = %q, want empty", got)
	}
}

func TestValidateRowPositionalLetterFallback(t *testing.T) {
	t.Parallel()

	src := &Source{
		Headers: []string{"Full name", "Date"},
		Rows:    [][]string{{"Ivanova Maria", "2024-03-15"}},
	}
	// "B" is not a header; it resolves positionally to the second column.
	mapping := ColumnMapping{"NAME": "Full name", "DATE": "B"}

	rec, rej, err := ValidateRow(src, 0, mapping, PolicyStop, nil)
	if err != nil || rej != nil {
		t.Fatalf("ValidateRow: rec=%+v rej=%+v err=%v", rec, rej, err)
	}
	if rec.Values["DATE"] != "15.03.2024" {
		t.Errorf("DATE via letter fallback = %q", rec.Values["DATE"])
	}
}

func TestValidateRowUnresolvableColumnFollowsPolicy(t *testing.T) {
	t.Parallel()

	src := &Source{
		Headers: []string{"Full name"},
		Rows:    [][]string{{"Ivanova Maria"}},
	}
	mapping := ColumnMapping{"NAME": "Full name", "DATE": "Nope"}

	_, rej, err := ValidateRow(src, 0, mapping, PolicySkip, nil)
	if err != nil {
		t.Fatalf("ValidateRow: %v", err)
	}
	if rej == nil {
		t.Fatal("unresolvable column should reject the row under skip policy")
	}
}

func TestValidateRowInvalidInputs(t *testing.T) {
	t.Parallel()

	src := testSource()

	if _, _, err := ValidateRow(src, 0, nil, PolicySkip, nil); !errors.Is(err, ErrNoMapping) {
		t.Errorf("empty mapping error = %v, want ErrNoMapping", err)
	}
	if _, _, err := ValidateRow(src, 0, testMapping(), ErrorPolicy("bogus"), nil); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("bad policy error = %v, want ErrInvalidPolicy", err)
	}
}
