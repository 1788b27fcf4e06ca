// Package certgen batch-generates personalized certificate documents from
// a spreadsheet of participants and a single-slide template.
//
// # Quick Start
//
// Create a generator and run a job on a worker goroutine:
//
//	gen := certgen.NewGenerator()
//	go func() {
//	    _ = gen.Run(ctx, certgen.Job{
//	        SourcePath:   "participants.xlsx",
//	        TemplatePath: "certificate.html",
//	        OutputDir:    "out",
//	        Mapping:      certgen.ColumnMapping{"NAME": "Full name", "DATE": "Date"},
//	        Policy:       certgen.PolicySkip,
//	    })
//	}()
//
// The controlling context drains gen.Feeds() on a fixed polling interval
// for log lines, progress percent, and the remaining-time estimate, and
// sets gen.Stop() to request cancellation. The flag is polled at defined
// checkpoints: before reading the source, before each row's validation,
// before each record's render, and inside the engine call.
//
// # Pipeline
//
// Each run follows these stages:
//
//  1. Spreadsheet reading via excelize (header row + data rows)
//  2. Row validation and normalization (column mapping, empty-cell policy,
//     date reformatting to DD.MM.YYYY)
//  3. Token substitution into the template's first content slide
//  4. First-page export via headless Chrome (go-rod), either native PDF
//     or a raster bridge assembled with pdfcpu
//
// One record is fully processed before the next starts; the external
// rendering engine is a stateful singleton that cannot serve concurrent
// conversions.
//
// # Templates
//
// A template is an HTML (or Markdown, converted via goldmark) document
// whose body holds text regions with {TOKEN} placeholders. Substitution
// merges each matching paragraph's runs into one string, replaces every
// mapped token, and rebuilds the paragraph as a single run. Substituted
// text is always rendered in a fixed muted gray and centered unless the
// paragraph set its own alignment. The template file is never mutated.
//
// # Failure and Cleanup
//
// A failed conversion halts the batch; already-produced certificates stay
// in place. On engine failure every process matching a known engine
// executable name is forcibly terminated (TERM, bounded wait, then KILL)
// before the error surfaces. Cleanup() performs the same reaping plus a
// sweep of leftover intermediate files, independently of any run.
//
// # Engine Requirements
//
// Rendering requires Chrome/Chromium. go-rod downloads a managed Chromium
// on first run; set ROD_BROWSER_BIN to use a pre-installed binary and
// ROD_NO_SANDBOX=1 in containers.
package certgen
