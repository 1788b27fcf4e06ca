package main

import (
	"errors"
	"os"

	certgen "github.com/LocBoyOff/DiplomGenerator"
	"github.com/LocBoyOff/DiplomGenerator/internal/config"
	"github.com/LocBoyOff/DiplomGenerator/internal/dateutil"
)

// Exit codes for the certgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Batch completed (or was deliberately interrupted)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitEngine  = 4 // Rendering engine errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine errors (exit 4)
	if errors.Is(err, certgen.ErrEngineConnect) ||
		errors.Is(err, certgen.ErrPageCreate) ||
		errors.Is(err, certgen.ErrPageLoad) ||
		errors.Is(err, certgen.ErrEngineUnresponsive) ||
		errors.Is(err, certgen.ErrConversionFailed) {
		return ExitEngine
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, certgen.ErrSourceUnreadable) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, certgen.ErrNoMapping) ||
		errors.Is(err, certgen.ErrNoOutputDir) ||
		errors.Is(err, certgen.ErrInvalidPolicy) ||
		errors.Is(err, certgen.ErrInvalidOrientation) ||
		errors.Is(err, certgen.ErrInvalidMode) ||
		errors.Is(err, certgen.ErrInvalidFontSize) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, certgen.ErrTemplateMalformed) ||
		errors.Is(err, ErrNoSource) ||
		errors.Is(err, ErrNoTemplate) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrBadPair) {
		return ExitUsage
	}

	return ExitGeneral
}
