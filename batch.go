package certgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/LocBoyOff/DiplomGenerator/internal/dateutil"
	"github.com/LocBoyOff/DiplomGenerator/internal/fileutil"
)

// dirPermissions for created output directories (rwxr-x---).
const dirPermissions = 0o750

// Job holds the configuration of one batch run. All fields are read-only
// to the generator for the run's duration.
type Job struct {
	SourcePath   string
	TemplatePath string
	OutputDir    string
	Mapping      ColumnMapping
	Policy       ErrorPolicy
	Defaults     DefaultValues
	Font         *FontSettings
	Sorting      SortingSpec
	Page         *PageSettings
	DateFormat   string // token format for DATE values, e.g. "DD.MM.YYYY"; empty = DD.MM.YYYY
}

// Validate checks that the job is runnable.
func (j *Job) Validate() error {
	if j.OutputDir == "" {
		return ErrNoOutputDir
	}
	if err := j.Mapping.Validate(); err != nil {
		return err
	}
	if err := j.Policy.Validate(); err != nil {
		return err
	}
	if err := j.Font.Validate(); err != nil {
		return err
	}
	if _, err := j.dateLayout(); err != nil {
		return err
	}
	return j.Page.Validate()
}

// dateLayout translates the job's token date format into a Go time layout.
// Empty means the standard output format and needs no re-rendering.
func (j *Job) dateLayout() (string, error) {
	if j.DateFormat == "" {
		return "", nil
	}
	return dateutil.ParseDateFormat(j.DateFormat)
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithConverter injects a document converter, replacing the engine-backed
// default. Used by tests and by callers that manage engine lifecycle
// themselves.
func WithConverter(c DocumentConverter) GeneratorOption {
	return func(g *Generator) { g.converter = c }
}

// WithClock injects the time source used for log timestamps and duration
// accounting.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// Generator drives the batch pipeline row by row: validate, render,
// convert, place. One Generator runs one batch at a time on whatever
// goroutine calls Run; progress, log, and ETA events cross to the
// controlling context through the feeds, and the stop flag crosses back.
type Generator struct {
	state     atomic.Int32
	stop      StopFlag
	feeds     *Feeds
	converter DocumentConverter
	now       func() time.Time
}

// NewGenerator creates an idle Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		feeds: NewFeeds(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Feeds returns the outbound event feeds, drained by the controller.
func (g *Generator) Feeds() *Feeds { return g.feeds }

// Stop returns the run's cancellation flag.
func (g *Generator) Stop() *StopFlag { return &g.stop }

// State returns the current lifecycle state.
func (g *Generator) State() State { return State(g.state.Load()) }

func (g *Generator) setState(s State) { g.state.Store(int32(s)) }

// logf publishes a timestamped line to the log feed.
func (g *Generator) logf(format string, args ...any) {
	g.feeds.Log.Publish(LogEvent{Time: g.now(), Message: fmt.Sprintf(format, args...)})
}

// Run executes the batch described by job and blocks until it reaches a
// terminal state. Returns nil on Completed and on Aborted (a requested
// stop is not a failure); the error otherwise. Calling Run while another
// run is in flight fails with ErrNotIdle.
func (g *Generator) Run(ctx context.Context, job Job) error {
	for {
		cur := g.state.Load()
		if State(cur) == StateRunning {
			return ErrNotIdle
		}
		if g.state.CompareAndSwap(cur, int32(StateRunning)) {
			break
		}
	}
	g.stop.Reset()

	err := g.run(ctx, job)
	switch {
	case err == nil && g.State() == StateRunning:
		g.setState(StateCompleted)
	case errors.Is(err, errCancelled):
		g.logf("Generation interrupted")
		g.setState(StateAborted)
		err = nil
	case err != nil:
		g.logf("Error: %v", err)
		g.setState(StateFailed)
	}
	return err
}

// run is the pipeline body. It returns errCancelled when a cancellation
// checkpoint fired, any other error for a fatal condition, and nil on
// normal completion.
func (g *Generator) run(ctx context.Context, job Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	converter := g.converter
	if converter == nil {
		converter = NewEngineConverter(job.Page)
		defer func() { _ = converter.Close() }()
	}

	// Checkpoint: before reading the source.
	if g.stop.IsSet() {
		return errCancelled
	}

	src, err := ReadSource(job.SourcePath)
	if err != nil {
		return err
	}

	tmpl, err := LoadTemplate(ctx, job.TemplatePath)
	if err != nil {
		return err
	}

	dateLayout, err := job.dateLayout()
	if err != nil {
		return err
	}

	for _, token := range missingTokens(tmpl, job) {
		g.logf("Warning: placeholder {%s} not found in template", token)
	}

	var records []Record
	var rejected []Rejection
	for i := range src.Rows {
		// Checkpoint: before validating each row.
		if g.stop.IsSet() {
			return errCancelled
		}
		rec, rej, err := ValidateRow(src, i, job.Mapping, job.Policy, job.Defaults)
		if err != nil {
			return err
		}
		if rej != nil {
			rejected = append(rejected, *rej)
			continue
		}
		if dateLayout != "" {
			// The validator emits DATE in the standard output format, which
			// is itself an accepted source layout, so a custom format is a
			// plain re-render.
			rec.Values[DatePlaceholder] = dateutil.NormalizeTo(rec.Values[DatePlaceholder], dateLayout)
		}
		records = append(records, rec)
	}

	if len(rejected) > 0 {
		g.logf("Skipped rows: %d", len(rejected))
		for _, r := range rejected {
			g.logf("  %s", r.Reason)
		}
	}

	if err := os.MkdirAll(job.OutputDir, dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tracker := newProgressTracker(len(records))
	saved := 0

	for _, rec := range records {
		// Checkpoint: before rendering each record.
		if g.stop.IsSet() {
			return errCancelled
		}

		start := g.now()

		filled, err := tmpl.Fill(rec, job.Font)
		if err != nil {
			return err
		}

		outPath, err := g.placePath(job, rec)
		if err != nil {
			return err
		}

		err = converter.Convert(ctx, filled, outPath, &g.stop)
		g.publishProgress(tracker, g.now().Sub(start))
		if err != nil {
			if errors.Is(err, errCancelled) {
				return err
			}
			// Fatal to the run: a failed item halts the batch.
			g.logf("Error: %s", filepath.Base(outPath))
			return err
		}

		saved++
		g.logf("Saved: %s", filepath.Base(outPath))
	}

	g.logf("Done! Saved: %d", saved)
	g.feeds.ETA.Publish("00:00")
	g.feeds.Progress.Publish(100)
	return nil
}

// missingTokens returns the mapped placeholders that never occur in the
// template, sorted. Such a column is read and validated but its value can
// never appear in the output, which is almost always a mapping typo. The
// sort column is exempt: it may exist only to group output folders.
func missingTokens(tmpl *Template, job Job) []string {
	present := make(map[string]bool)
	for _, p := range tmpl.Placeholders() {
		present[p] = true
	}
	var missing []string
	for token := range job.Mapping {
		if present[token] || (job.Sorting.Enabled && token == job.Sorting.Column) {
			continue
		}
		missing = append(missing, token)
	}
	sort.Strings(missing)
	return missing
}

// placePath resolves the output file path for a record, creating the
// per-group subfolder on demand when sorting is enabled.
func (g *Generator) placePath(job Job, rec Record) (string, error) {
	dir := job.OutputDir
	if job.Sorting.Enabled && job.Sorting.Column != "" {
		if group := rec.Values[job.Sorting.Column]; group != "" {
			dir = filepath.Join(dir, fileutil.SanitizeName(group))
			if err := os.MkdirAll(dir, dirPermissions); err != nil {
				return "", fmt.Errorf("creating group directory: %w", err)
			}
		}
	}

	name := fileutil.SanitizeName(rec.Values[NamePlaceholder])
	return filepath.Join(dir, name+".pdf"), nil
}

// publishProgress records one finished item and emits percent and ETA.
func (g *Generator) publishProgress(tracker *progressTracker, d time.Duration) {
	tracker.record(d)
	g.feeds.ETA.Publish(tracker.eta())
	g.feeds.Progress.Publish(tracker.percent())
}
