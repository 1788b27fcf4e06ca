package process

// Notes:
// - KillProcessGroup: only tested with an invalid PID to verify the function
//   doesn't panic. Real kill behavior is covered by engine cleanup
//   integration tests; unit tests cannot safely terminate live processes.
// - Reap: exercised with a name no process carries, so the process table is
//   walked without touching anything.

import "testing"

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// Cannot safely test with PID 0 (kills the current process group) or
	// real PIDs. A non-existent PID verifies the call is harmless.
	KillProcessGroup(999999999)
}

func TestReap_NoMatches(t *testing.T) {
	t.Parallel()

	if n := Reap([]string{"certgen-no-such-engine"}); n != 0 {
		t.Errorf("Reap of non-existent name reaped %d processes", n)
	}
}

func TestCount_NoMatches(t *testing.T) {
	t.Parallel()

	if n := Count([]string{"certgen-no-such-engine"}); n != 0 {
		t.Errorf("Count of non-existent name = %d", n)
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	if !matches("Chrome", []string{"chrome"}) {
		t.Error("case-insensitive match failed")
	}
	if matches("chromedriver", []string{"chrome"}) {
		t.Error("substring must not match")
	}
}
