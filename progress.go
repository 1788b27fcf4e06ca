package certgen

import (
	"fmt"
	"math"
	"time"
)

// progressTracker accumulates per-item wall-clock durations and derives
// the percent complete and the remaining-time estimate. Owned by the
// orchestrator, recreated for every run, never shared.
type progressTracker struct {
	total     int
	completed int
	durations []time.Duration
}

func newProgressTracker(total int) *progressTracker {
	return &progressTracker{total: total}
}

// record notes one finished item (successful or not) and its duration.
func (p *progressTracker) record(d time.Duration) {
	p.completed++
	p.durations = append(p.durations, d)
}

// percent returns round(completed/total*100), or 100 for an empty batch.
func (p *progressTracker) percent() int {
	if p.total == 0 {
		return 100
	}
	return int(math.Round(float64(p.completed) / float64(p.total) * 100))
}

// eta formats the estimated time remaining as "MM:SS", using the running
// average of all recorded item durations.
func (p *progressTracker) eta() string {
	if len(p.durations) == 0 || p.completed >= p.total {
		return "00:00"
	}

	var sum time.Duration
	for _, d := range p.durations {
		sum += d
	}
	avg := sum / time.Duration(len(p.durations))

	remain := int(avg.Seconds() * float64(p.total-p.completed))
	return fmt.Sprintf("%02d:%02d", remain/60, remain%60)
}
