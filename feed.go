package certgen

import (
	"sync"
	"time"
)

// Feed is a one-directional unbounded message queue between the worker and
// the controlling context. The worker only publishes; the controller only
// drains, typically on a fixed polling interval. Publishing never blocks.
type Feed[T any] struct {
	mu      sync.Mutex
	pending []T
}

// Publish appends a message to the feed.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	f.pending = append(f.pending, v)
	f.mu.Unlock()
}

// Drain returns all pending messages in publish order and empties the feed.
// Returns nil when nothing is pending.
func (f *Feed[T]) Drain() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pending) == 0 {
		return nil
	}
	out := f.pending
	f.pending = nil
	return out
}

// LogEvent is one timestamped line on the log feed.
type LogEvent struct {
	Time    time.Time
	Message string
}

// Feeds bundles the three outbound channels of a run: log lines, progress
// percent (0-100), and estimated time remaining as "MM:SS".
type Feeds struct {
	Log      Feed[LogEvent]
	Progress Feed[int]
	ETA      Feed[string]
}

// NewFeeds returns an empty feed bundle.
func NewFeeds() *Feeds {
	return &Feeds{}
}
