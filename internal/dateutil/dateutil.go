// Package dateutil normalizes spreadsheet date values and parses
// user-friendly date format strings.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// OutputFormat is the layout certificate dates are rendered in (DD.MM.YYYY).
const OutputFormat = "02.01.2006"

// sourceLayouts are the accepted input layouts, tried in order.
// First match wins. The two-digit-year layouts come last: they are how
// excelize renders date-typed cells (Excel's default short formats,
// US-ordered), so a native date cell normalizes like any textual one.
var sourceLayouts = []string{
	"2006-01-02", // YYYY-MM-DD
	"02.01.2006", // DD.MM.YYYY
	"02/01/2006", // DD/MM/YYYY
	"2006/01/02", // YYYY/MM/DD
	"01-02-06",   // MM-DD-YY, date-typed cells
	"1/2/06",     // M/D/YY, date part of date-time-typed cells
}

// Normalize reformats a raw cell value to OutputFormat when it parses as a
// date. Values carrying a time component (spreadsheet date-time cells render
// as "DD.MM.YYYY HH:MM" and similar) are tried on their date part alone.
// Anything unparseable passes through unchanged.
func Normalize(raw string) string {
	return NormalizeTo(raw, OutputFormat)
}

// NormalizeTo is Normalize with a caller-chosen Go time layout, typically
// produced by ParseDateFormat.
func NormalizeTo(raw, layout string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return raw
	}

	candidate := v
	if i := strings.IndexByte(v, ' '); i > 0 {
		candidate = v[:i]
	}

	for _, src := range sourceLayouts {
		if t, err := time.Parse(src, candidate); err == nil {
			return t.Format(layout)
		}
	}
	return raw
}

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// ParseDateFormat converts a user-friendly format string to Go's time
// format. Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Use brackets to escape
// literal text: [Date] preserves "Date" literally. Any non-token characters
// outside brackets are preserved as literals. Returns ErrInvalidDateFormat
// if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}
