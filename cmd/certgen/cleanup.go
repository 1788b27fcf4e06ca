package main

import (
	"fmt"

	certgen "github.com/LocBoyOff/DiplomGenerator"
)

// runCleanupCmd reaps stray engine processes and sweeps leftover temp
// files, then reports what it removed.
func runCleanupCmd(env *Environment) int {
	procs, files := certgen.Cleanup()
	fmt.Fprintf(env.Stdout, "Terminated %d stray engine process(es)\n", procs)
	fmt.Fprintf(env.Stdout, "Removed %d leftover temp file(s)\n", files)
	return ExitSuccess
}
