package certgen

import (
	"fmt"
	"sort"

	"github.com/LocBoyOff/DiplomGenerator/internal/dateutil"
)

// ValidateRow resolves one data row into a participant record by applying
// the column mapping and the empty-cell policy. rowIdx indexes src.Rows;
// the reported row number is 1-based counting the header row. Returns
// exactly one of: a record, a rejection (PolicySkip), or an error
// (ErrBatchStopped under PolicyStop, or an invalid mapping/policy).
//
// The placeholder named DatePlaceholder is normalized to DD.MM.YYYY when
// its value parses against the known date layouts; unparseable text passes
// through unchanged. All other values are taken as-is.
func ValidateRow(src *Source, rowIdx int, mapping ColumnMapping, policy ErrorPolicy, defaults DefaultValues) (Record, *Rejection, error) {
	if err := mapping.Validate(); err != nil {
		return Record{}, nil, err
	}
	if err := policy.Validate(); err != nil {
		return Record{}, nil, err
	}

	row := src.Rows[rowIdx]
	rowNum := rowIdx + 2 // 1-based, after the header row
	values := make(map[string]string, len(mapping))

	// Fixed placeholder order keeps rejection reasons and stop behavior
	// deterministic when a row has several empty mapped cells.
	for _, placeholder := range sortedKeys(mapping) {
		col := src.columnIndex(mapping[placeholder])
		val := ""
		if col >= 0 {
			val = cell(row, col)
		}

		if val == "" {
			switch policy {
			case PolicyStop:
				return Record{}, nil, fmt.Errorf("%w: row %d, empty field %q", ErrBatchStopped, rowNum, placeholder)
			case PolicySkip:
				return Record{}, &Rejection{
					Row:    rowNum,
					Reason: fmt.Sprintf("row %d: empty field %q", rowNum, placeholder),
				}, nil
			case PolicyDefault:
				// A configured empty-string default is distinct from an
				// absent one; only absence falls back to the literal.
				dv, ok := defaults[placeholder]
				if !ok {
					dv = defaultFallback
				}
				val = dv
			}
		}

		if placeholder == DatePlaceholder {
			val = dateutil.Normalize(val)
		}
		values[placeholder] = val
	}

	return Record{Row: rowNum, Values: values}, nil, nil
}

// BuildRecords validates every data row of the source in order. Rejections
// are accumulated and returned in aggregate; they never interrupt
// iteration unless the policy is PolicyStop, in which case the first empty
// mapped cell aborts with ErrBatchStopped and the records built so far.
func BuildRecords(src *Source, mapping ColumnMapping, policy ErrorPolicy, defaults DefaultValues) ([]Record, []Rejection, error) {
	var records []Record
	var rejected []Rejection

	for i := range src.Rows {
		rec, rej, err := ValidateRow(src, i, mapping, policy, defaults)
		if err != nil {
			return records, rejected, err
		}
		if rej != nil {
			rejected = append(rejected, *rej)
			continue
		}
		records = append(records, rec)
	}
	return records, rejected, nil
}

// sortedKeys returns the mapping's placeholder names in sorted order.
func sortedKeys(m ColumnMapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
