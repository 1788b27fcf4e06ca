package certgen

import (
	"testing"
	"time"
)

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		completed int
		want      int
	}{
		{name: "one of three rounds", total: 3, completed: 1, want: 33},
		{name: "two of three rounds", total: 3, completed: 2, want: 67},
		{name: "all done is exactly 100", total: 3, completed: 3, want: 100},
		{name: "one of six rounds", total: 6, completed: 1, want: 17},
		{name: "empty batch is 100", total: 0, completed: 0, want: 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newProgressTracker(tt.total)
			for i := 0; i < tt.completed; i++ {
				p.record(time.Second)
			}
			if got := p.percent(); got != tt.want {
				t.Errorf("percent after %d/%d = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestProgressETA(t *testing.T) {
	t.Parallel()

	p := newProgressTracker(5)

	p.record(2 * time.Second)
	// 4 items remain at 2s average.
	if got := p.eta(); got != "00:08" {
		t.Errorf("eta = %q, want 00:08", got)
	}

	p.record(4 * time.Second)
	// Average is 3s, 3 items remain.
	if got := p.eta(); got != "00:09" {
		t.Errorf("eta after second item = %q, want 00:09", got)
	}
}

func TestProgressETAMinutes(t *testing.T) {
	t.Parallel()

	p := newProgressTracker(3)
	p.record(90 * time.Second)
	if got := p.eta(); got != "03:00" {
		t.Errorf("eta = %q, want 03:00", got)
	}
}

func TestProgressETATerminal(t *testing.T) {
	t.Parallel()

	p := newProgressTracker(2)
	if got := p.eta(); got != "00:00" {
		t.Errorf("eta with no samples = %q, want 00:00", got)
	}

	p.record(time.Second)
	p.record(time.Second)
	if got := p.eta(); got != "00:00" {
		t.Errorf("eta after last item = %q, want 00:00", got)
	}
}
