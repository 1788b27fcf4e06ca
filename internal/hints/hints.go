// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/LocBoyOff/DiplomGenerator/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForEngineConnect returns hints for rendering engine connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForEngineConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForEngineUnresponsive returns hints for a hung or crashed engine.
func ForEngineUnresponsive() string {
	return format("run 'certgen cleanup' to remove stray engine processes")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound() string {
	return format("use --config /path/to/file.yaml or save one with --save-config")
}

// ForEmptyCell returns hints for a batch stopped by an empty cell.
func ForEmptyCell() string {
	return format("use --policy skip to drop incomplete rows, or --policy default with --default K=V")
}

// ForMapping returns hints for an unresolvable or missing column mapping.
func ForMapping() string {
	return format("use --name-column/--date-column with a header text or a column letter like A")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
