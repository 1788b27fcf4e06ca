package dateutil

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "ISO date reformatted",
			raw:  "2024-03-15",
			want: "15.03.2024",
		},
		{
			name: "dotted date kept in output format",
			raw:  "15.03.2024",
			want: "15.03.2024",
		},
		{
			name: "slashed day first",
			raw:  "15/03/2024",
			want: "15.03.2024",
		},
		{
			name: "slashed year first",
			raw:  "2024/03/15",
			want: "15.03.2024",
		},
		{
			name: "date-time cell uses date part",
			raw:  "2024-03-15 00:00",
			want: "15.03.2024",
		},
		{
			name: "excel default short date",
			raw:  "03-15-24",
			want: "15.03.2024",
		},
		{
			name: "excel short date-time uses date part",
			raw:  "3/15/24 10:30",
			want: "15.03.2024",
		},
		{
			name: "surrounding whitespace tolerated",
			raw:  "  2024-03-15  ",
			want: "15.03.2024",
		},
		{
			name: "free text passes through",
			raw:  "March session",
			want: "March session",
		},
		{
			name: "empty passes through",
			raw:  "",
			want: "",
		},
		{
			name: "impossible date passes through",
			raw:  "2024-13-45",
			want: "2024-13-45",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeTo(t *testing.T) {
	t.Parallel()

	layout, err := ParseDateFormat("D MMMM YYYY")
	if err != nil {
		t.Fatalf("ParseDateFormat: %v", err)
	}
	if got := NormalizeTo("2024-03-15", layout); got != "15 March 2024" {
		t.Errorf("NormalizeTo = %q, want %q", got, "15 March 2024")
	}
	if got := NormalizeTo("free text", layout); got != "free text" {
		t.Errorf("NormalizeTo passthrough = %q", got)
	}
}

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{
			name:   "default certificate format",
			format: "DD.MM.YYYY",
			want:   "02.01.2006",
		},
		{
			name:   "ISO format",
			format: "YYYY-MM-DD",
			want:   "2006-01-02",
		},
		{
			name:   "long month",
			format: "MMMM D, YYYY",
			want:   "January 2, 2006",
		},
		{
			name:   "bracket literal preserved",
			format: "[Issued] DD.MM.YYYY",
			want:   "Issued 02.01.2006",
		},
		{
			name:    "empty format rejected",
			format:  "",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "unclosed bracket rejected",
			format:  "[Issued DD.MM.YYYY",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
