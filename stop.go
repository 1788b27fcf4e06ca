package certgen

import "sync/atomic"

// StopFlag is the cooperative cancellation signal shared between the
// controlling context and the worker. It is monotonic within a run: once
// set it stays set until Reset at the start of the next run. The worker
// polls it at defined checkpoints; nothing is ever preempted.
type StopFlag struct {
	v atomic.Bool
}

// Set requests cancellation.
func (s *StopFlag) Set() { s.v.Store(true) }

// IsSet reports whether cancellation was requested.
func (s *StopFlag) IsSet() bool {
	return s != nil && s.v.Load()
}

// Reset clears the flag for a new run.
func (s *StopFlag) Reset() { s.v.Store(false) }
