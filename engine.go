package certgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/LocBoyOff/DiplomGenerator/internal/fileutil"
	"github.com/LocBoyOff/DiplomGenerator/internal/process"
)

// DocumentConverter turns one filled document into the final page-formatted
// output file. Implementations must be safe for strictly serial use; the
// orchestrator never converts two items at once.
type DocumentConverter interface {
	Convert(ctx context.Context, doc, outputPath string, stop *StopFlag) error
	Close() error
}

// Compile-time interface check.
var _ DocumentConverter = (*EngineConverter)(nil)

// errCancelled marks a conversion that quit at a cancellation checkpoint.
// Not an engine failure: no process reaping, no ErrConversionFailed wrap.
var errCancelled = errors.New("conversion cancelled")

// defaultEngineTimeout bounds one engine round trip. An engine that blows
// past it is treated as unresponsive.
const defaultEngineTimeout = 90 * time.Second

// filePermissions for output documents (rw-r--r--).
const filePermissions = 0o644

// EngineConverter drives one headless Chrome instance per conversion via
// go-rod. The engine is launched fresh for each call and torn down in
// guaranteed-cleanup defers regardless of success, failure, or
// cancellation; on failure every process matching a known engine
// executable name is forcibly terminated before the error surfaces.
type EngineConverter struct {
	page    *PageSettings
	timeout time.Duration
}

// NewEngineConverter creates a converter for the given page settings.
// Nil settings mean A4 landscape with native PDF export.
func NewEngineConverter(page *PageSettings) *EngineConverter {
	if page == nil {
		page = DefaultPageSettings()
	}
	return &EngineConverter{page: page, timeout: defaultEngineTimeout}
}

// Convert opens the filled document in the engine, exports its first page,
// and assembles the final single-page A4 output at outputPath. The stop
// flag is checked after the document opens and again before the output is
// finalized; a positive check abandons the conversion without producing
// output. The output is written to a temporary name and renamed into place
// so a partial write never looks complete.
func (c *EngineConverter) Convert(ctx context.Context, doc, outputPath string, stop *StopFlag) error {
	htmlPath, cleanupHTML, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer cleanupHTML()

	data, err := c.exportFirstPage(ctx, htmlPath, stop)
	if err != nil {
		if isStopRequest(err, stop) {
			return errCancelled
		}
		return c.recoverEngine(err)
	}

	if stop.IsSet() {
		return errCancelled
	}

	if err := writeOutput(outputPath, data); err != nil {
		return fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	return nil
}

// Close releases converter resources. The engine lives only for the span
// of one Convert call, so there is nothing persistent to release.
func (c *EngineConverter) Close() error { return nil }

// exportFirstPage runs one full engine round trip: launch, open the
// document, render the first page, assemble the PDF bytes. Teardown of the
// page, the browser connection, and the launched process is guaranteed via
// defers on every path.
func (c *EngineConverter) exportFirstPage(ctx context.Context, htmlPath string, stop *StopFlag) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineConnect, err)
	}
	defer l.Kill()

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Document is open: first cancellation checkpoint of the engine call.
	if stop.IsSet() {
		return nil, errCancelled
	}

	if c.page.Mode == ModeRaster {
		return c.rasterBridge(page, stop)
	}
	return c.nativeExport(page)
}

// nativeExport renders the first page straight to PDF at A4 size.
func (c *EngineConverter) nativeExport(page *rod.Page) ([]byte, error) {
	w, h := c.page.paperSize()
	opts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(w),
		PaperHeight:     floatPtr(h),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
		PageRanges:      "1",
	}

	reader, err := page.PDF(opts)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %v", err)
	}
	return data, nil
}

// rasterBridge is the fallback strategy: screenshot the page, assemble a
// single-page A4 PDF from the image with pdfcpu, and discard the
// intermediate raster.
func (c *EngineConverter) rasterBridge(page *rod.Page, stop *StopFlag) ([]byte, error) {
	img, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, err
	}

	imgPath, cleanupImg, err := fileutil.WriteTempFile(string(img), "png")
	if err != nil {
		return nil, err
	}
	defer cleanupImg()

	if stop.IsSet() {
		return nil, errCancelled
	}

	form := "A4"
	if c.page.Orientation == OrientationLandscape {
		form = "A4L"
	}
	imp, err := api.Import(fmt.Sprintf("form:%s, pos:full", form), types.POINTS)
	if err != nil {
		return nil, err
	}

	pdfPath, cleanupPDF, err := fileutil.WriteTempFile("", "pdf")
	if err != nil {
		return nil, err
	}
	defer cleanupPDF()

	if err := api.ImportImagesFile([]string{imgPath}, pdfPath, imp, nil); err != nil {
		return nil, err
	}
	return os.ReadFile(pdfPath) // #nosec G304 -- path from CreateTemp
}

// isStopRequest reports whether err represents a requested stop rather
// than an engine failure. A user interrupt cancels the context and sets
// the stop flag at the same moment; neither warrants crash recovery. A
// deadline overrun is an unresponsive engine, not a stop.
func isStopRequest(err error, stop *StopFlag) bool {
	return errors.Is(err, errCancelled) || errors.Is(err, context.Canceled) || stop.IsSet()
}

// recoverEngine is the crash-recovery step: every process matching a known
// engine executable name is terminated before the error propagates. An
// overrun timeout is surfaced as an unresponsive engine.
func (c *EngineConverter) recoverEngine(err error) error {
	process.Reap(process.EngineNames)

	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %v", ErrEngineUnresponsive, err)
	}
	return fmt.Errorf("%w: %v", ErrConversionFailed, err)
}

// writeOutput places data at outputPath via a same-directory temp name and
// an atomic rename, so readers never observe a half-written document.
func writeOutput(outputPath string, data []byte) error {
	part := outputPath + ".part"
	// #nosec G306 -- certificates are meant to be readable
	if err := os.WriteFile(part, data, filePermissions); err != nil {
		return err
	}
	if err := os.Rename(part, outputPath); err != nil {
		_ = os.Remove(part)
		return err
	}
	return nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
