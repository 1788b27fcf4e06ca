// Package process terminates stray rendering-engine processes.
package process

import (
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// killWait bounds how long Reap waits for a process to honor the
// termination request before escalating to a hard kill.
const killWait = 3 * time.Second

// pollInterval is how often Reap re-checks a terminating process.
const pollInterval = 100 * time.Millisecond

// EngineNames are the executable names an abandoned rendering engine runs
// under across platforms.
var EngineNames = []string{"chrome", "chromium", "chromium-browser", "headless_shell", "chrome.exe", "msedge-headless"}

// Reap walks the OS process table and forcibly terminates every process
// whose executable name matches one of names (case-insensitive). Each match
// receives a termination request first, then a hard kill after a bounded
// wait. Returns the number of processes reaped. Best-effort: enumeration
// and signaling errors are skipped, never propagated.
func Reap(names []string) int {
	procs, err := process.Processes()
	if err != nil {
		return 0
	}

	reaped := 0
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !matches(name, names) {
			continue
		}
		if err := p.Terminate(); err != nil {
			_ = p.Kill()
			reaped++
			continue
		}
		if !waitGone(p, killWait) {
			_ = p.Kill()
		}
		reaped++
	}
	return reaped
}

// Count returns how many running processes match one of names. Read-only
// counterpart to Reap, used for diagnostics.
func Count(names []string) int {
	procs, err := process.Processes()
	if err != nil {
		return 0
	}

	n := 0
	for _, p := range procs {
		name, err := p.Name()
		if err == nil && matches(name, names) {
			n++
		}
	}
	return n
}

// matches reports whether name equals one of the candidates, ignoring case.
func matches(name string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(name, c) {
			return true
		}
	}
	return false
}

// waitGone polls until the process exits or the deadline passes.
func waitGone(p *process.Process, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		running, err := p.IsRunning()
		if err != nil || !running {
			return true
		}
		time.Sleep(pollInterval)
	}
	return false
}
