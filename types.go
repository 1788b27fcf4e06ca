package certgen

import (
	"fmt"
	"strings"
)

// ErrorPolicy governs behavior when a mapped source cell is empty.
type ErrorPolicy string

// Error policy constants.
const (
	PolicyStop    ErrorPolicy = "stop"    // abort the whole batch on first empty cell
	PolicySkip    ErrorPolicy = "skip"    // exclude the offending row and continue
	PolicyDefault ErrorPolicy = "default" // substitute a per-placeholder default and continue
)

// Validate checks that the policy is one of the known values.
func (p ErrorPolicy) Validate() error {
	switch p {
	case PolicyStop, PolicySkip, PolicyDefault:
		return nil
	}
	return fmt.Errorf("%w: %q (must be stop, skip, or default)", ErrInvalidPolicy, string(p))
}

// Orientation constants for the output page.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Conversion mode constants. Native PDF export is the default strategy;
// the raster bridge renders a page image first and assembles the PDF from it.
const (
	ModeNative = "native"
	ModeRaster = "raster"
)

// ISO A4 dimensions in inches, portrait.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PageSettings configures the physical page of the output document.
type PageSettings struct {
	Orientation string // "portrait" or "landscape"
	Mode        string // "native" or "raster"
}

// DefaultPageSettings returns A4 landscape with native PDF export,
// the usual shape of a certificate.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Orientation: OrientationLandscape,
		Mode:        ModeNative,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	switch strings.ToLower(p.Mode) {
	case ModeNative, ModeRaster:
	default:
		return fmt.Errorf("%w: %q (must be native or raster)", ErrInvalidMode, p.Mode)
	}
	return nil
}

// paperSize returns page width and height in inches for the orientation.
func (p *PageSettings) paperSize() (w, h float64) {
	if p != nil && strings.ToLower(p.Orientation) == OrientationLandscape {
		return a4HeightInches, a4WidthInches
	}
	return a4WidthInches, a4HeightInches
}

// ColumnMapping maps a placeholder name (e.g. "NAME", "DATE") to a source
// column identifier: either a header cell's text or a positional letter
// ("A", "B", ...). Configured once before a run and read-only during it.
type ColumnMapping map[string]string

// Validate checks that the mapping has at least one entry.
func (m ColumnMapping) Validate() error {
	if len(m) == 0 {
		return ErrNoMapping
	}
	return nil
}

// DefaultValues maps a placeholder name to its fallback string,
// consulted only under PolicyDefault.
type DefaultValues map[string]string

// defaultFallback substitutes for an empty cell with no configured default.
const defaultFallback = "—"

// FontSettings controls the styling of substituted text. When UseCustom is
// false, family/size/bold are inherited from the paragraph's original first
// run. Substituted text is always rendered in a fixed muted gray.
type FontSettings struct {
	UseCustom bool
	Family    string
	Size      float64 // points
	Bold      bool
}

// Validate checks font settings. Returns nil if f is nil (inherit mode).
func (f *FontSettings) Validate() error {
	if f == nil || !f.UseCustom {
		return nil
	}
	if f.Size <= 0 {
		return fmt.Errorf("%w: %.1f (must be positive)", ErrInvalidFontSize, f.Size)
	}
	return nil
}

// SortingSpec groups output documents into subfolders named by the value
// of one placeholder.
type SortingSpec struct {
	Enabled bool
	Column  string // placeholder name whose value names the subfolder
}

// Record holds the resolved placeholder values for one output document.
// Built by the validator from one spreadsheet row, immutable once built,
// consumed once by the renderer.
type Record struct {
	Row    int // 1-based source row number, for diagnostics
	Values map[string]string
}

// Rejection describes a row excluded from the batch.
type Rejection struct {
	Row    int
	Reason string
}

// NamePlaceholder is the placeholder whose value names the output file.
const NamePlaceholder = "NAME"

// DatePlaceholder is the placeholder receiving date normalization.
const DatePlaceholder = "DATE"

// State is the lifecycle of one batch run.
type State int32

// Generator states.
const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateAborted
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}
