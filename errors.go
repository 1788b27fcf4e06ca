package certgen

import "errors"

// Sentinel errors for library operations.
var (
	ErrSourceUnreadable   = errors.New("source spreadsheet cannot be read")
	ErrTemplateMalformed  = errors.New("template has no content slide")
	ErrConversionFailed   = errors.New("document conversion failed")
	ErrEngineUnresponsive = errors.New("rendering engine unresponsive")
	ErrBatchStopped       = errors.New("batch stopped on empty cell")

	ErrEngineConnect = errors.New("failed to connect to rendering engine")
	ErrPageCreate    = errors.New("failed to create engine page")
	ErrPageLoad      = errors.New("failed to load filled document")

	// Job validation errors.
	ErrNoMapping          = errors.New("column mapping cannot be empty")
	ErrNoOutputDir        = errors.New("output directory cannot be empty")
	ErrInvalidPolicy      = errors.New("invalid error policy")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMode        = errors.New("invalid conversion mode")
	ErrInvalidFontSize    = errors.New("invalid font size")
	ErrNotIdle            = errors.New("generator is already running")
)
