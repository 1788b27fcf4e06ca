package certgen

import (
	"github.com/LocBoyOff/DiplomGenerator/internal/fileutil"
	"github.com/LocBoyOff/DiplomGenerator/internal/process"
)

// Cleanup reaps stray rendering-engine processes and removes leftover
// intermediate files from earlier runs. Safe to call at any time,
// independently of whether a worker is running; a crashed run's debris is
// exactly what it exists for. Returns the number of processes and files
// removed.
func Cleanup() (procs, files int) {
	procs = process.Reap(process.EngineNames)
	files = fileutil.SweepTempFiles()
	return procs, files
}
