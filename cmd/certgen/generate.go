package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	certgen "github.com/LocBoyOff/DiplomGenerator"
	"github.com/LocBoyOff/DiplomGenerator/internal/config"
	"github.com/LocBoyOff/DiplomGenerator/internal/fileutil"
	"github.com/LocBoyOff/DiplomGenerator/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoSource   = errors.New("no source spreadsheet specified")
	ErrNoTemplate = errors.New("no template specified")
	ErrNoOutput   = errors.New("no output directory specified")
)

// drainInterval is how often pending feed events are flushed to the
// terminal while a batch runs.
const drainInterval = 100 * time.Millisecond

// runGenerateCmd parses flags, runs the batch, and returns an exit code.
func runGenerateCmd(args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags(args)
	if err != nil {
		return ExitUsage
	}

	// Positionals are a shorthand for --source and --template.
	if len(positional) > 0 && flags.source == "" {
		flags.source = positional[0]
	}
	if len(positional) > 1 && flags.template == "" {
		flags.template = positional[1]
	}

	if err := runGenerate(context.Background(), flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable suggestion for well-known failures,
// or an empty string.
func hintFor(err error) string {
	switch {
	case errors.Is(err, certgen.ErrEngineConnect):
		return hints.ForEngineConnect()
	case errors.Is(err, certgen.ErrEngineUnresponsive):
		return hints.ForEngineUnresponsive()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, certgen.ErrBatchStopped):
		return hints.ForEmptyCell()
	case errors.Is(err, certgen.ErrNoMapping):
		return hints.ForMapping()
	case errors.Is(err, certgen.ErrNoOutputDir), errors.Is(err, ErrNoOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// runGenerate loads configuration, merges flags over it, and drives one
// batch to a terminal state, relaying the worker's feeds to the terminal.
// Extra generator options let tests inject a converter.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment, opts ...certgen.GeneratorOption) error {
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		loaded, err := config.Load(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}

	job, err := buildJob(cfg)
	if err != nil {
		return err
	}

	gen := certgen.NewGenerator(append(opts, certgen.WithClock(env.Now))...)

	ctx, cancel := notifyContext(ctx)
	defer cancel()

	start := env.Now()
	errCh := make(chan error, 1)
	go func() { errCh <- gen.Run(ctx, job) }()

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	printer := newFeedPrinter(flags.common.quiet, env)
	done := ctx.Done()
	for {
		select {
		case <-done:
			// An interrupt requests a stop; the worker winds down at its
			// next checkpoint and reports through errCh.
			gen.Stop().Set()
			done = nil
		case <-ticker.C:
			printer.drain(gen.Feeds())
		case err := <-errCh:
			printer.drain(gen.Feeds())
			if err != nil {
				return err
			}
			if flags.common.verbose {
				fmt.Fprintf(env.Stdout, "Total time: %s\n", env.Now().Sub(start).Round(time.Millisecond))
			}
			if flags.saveConfig && gen.State() == certgen.StateCompleted {
				if err := saveConfig(cfg, flags.common.config); err != nil {
					fmt.Fprintf(env.Stderr, "Warning: %v\n", err)
				}
			}
			return nil
		}
	}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) error {
	if flags.source != "" {
		cfg.Source.Path = flags.source
	}
	if flags.template != "" {
		cfg.Template.Path = flags.template
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}

	if flags.nameColumn != "" || flags.dateColumn != "" || len(flags.mappings) > 0 {
		if cfg.Mapping == nil {
			cfg.Mapping = make(map[string]string)
		}
	}
	if flags.nameColumn != "" {
		cfg.Mapping[certgen.NamePlaceholder] = flags.nameColumn
	}
	if flags.dateColumn != "" {
		cfg.Mapping[certgen.DatePlaceholder] = flags.dateColumn
	}
	extra, err := parsePairs(flags.mappings)
	if err != nil {
		return err
	}
	for k, v := range extra {
		cfg.Mapping[k] = v
	}

	if flags.policy != "" {
		cfg.Policy = flags.policy
	}
	if flags.dateFormat != "" {
		cfg.DateFormat = flags.dateFormat
	}
	fallbacks, err := parsePairs(flags.defaults)
	if err != nil {
		return err
	}
	if len(fallbacks) > 0 && cfg.Defaults == nil {
		cfg.Defaults = make(map[string]string)
	}
	for k, v := range fallbacks {
		cfg.Defaults[k] = v
	}

	if flags.fontFamily != "" {
		cfg.Font.Family = flags.fontFamily
		cfg.Font.UseCustom = true
	}
	if flags.fontSize > 0 {
		cfg.Font.Size = flags.fontSize
		cfg.Font.UseCustom = true
	}
	if flags.fontBold {
		cfg.Font.Bold = true
		cfg.Font.UseCustom = true
	}

	if flags.sortBy != "" {
		cfg.Sorting.Enabled = true
		cfg.Sorting.Column = flags.sortBy
	}

	if flags.orientation != "" {
		cfg.Page.Orientation = flags.orientation
	}
	if flags.mode != "" {
		cfg.Page.Mode = flags.mode
	}

	return nil
}

// buildJob translates the merged configuration into a batch job.
func buildJob(cfg *config.Config) (certgen.Job, error) {
	if cfg.Source.Path == "" {
		return certgen.Job{}, ErrNoSource
	}
	if cfg.Template.Path == "" {
		return certgen.Job{}, ErrNoTemplate
	}
	if cfg.Output.Dir == "" {
		return certgen.Job{}, ErrNoOutput
	}

	job := certgen.Job{
		SourcePath:   cfg.Source.Path,
		TemplatePath: cfg.Template.Path,
		OutputDir:    cfg.Output.Dir,
		Mapping:      certgen.ColumnMapping(cfg.Mapping),
		Policy:       certgen.ErrorPolicy(cfg.Policy),
		Defaults:     certgen.DefaultValues(cfg.Defaults),
		Sorting: certgen.SortingSpec{
			Enabled: cfg.Sorting.Enabled,
			Column:  cfg.Sorting.Column,
		},
		Page: &certgen.PageSettings{
			Orientation: cfg.Page.Orientation,
			Mode:        cfg.Page.Mode,
		},
		DateFormat: cfg.DateFormat,
	}
	if cfg.Font.UseCustom {
		job.Font = &certgen.FontSettings{
			UseCustom: true,
			Family:    cfg.Font.Family,
			Size:      cfg.Font.Size,
			Bold:      cfg.Font.Bold,
		}
	}
	if err := job.Validate(); err != nil {
		return certgen.Job{}, err
	}
	return job, nil
}

// saveConfig persists the effective configuration. A config given as an
// explicit path is written back in place; otherwise the default location
// is used.
func saveConfig(cfg *config.Config, nameOrPath string) error {
	path := config.DefaultPath()
	if nameOrPath != "" && fileutil.IsFilePath(nameOrPath) {
		path = nameOrPath
	}
	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// feedPrinter relays drained feed events to the terminal. Log lines carry
// their own timestamps; progress and ETA collapse to the latest value per
// drain so a slow terminal never lags the batch.
type feedPrinter struct {
	quiet       bool
	env         *Environment
	lastPercent int
	lastETA     string
}

func newFeedPrinter(quiet bool, env *Environment) *feedPrinter {
	return &feedPrinter{quiet: quiet, env: env, lastPercent: -1}
}

func (p *feedPrinter) drain(feeds *certgen.Feeds) {
	logs := feeds.Log.Drain()
	percents := feeds.Progress.Drain()
	etas := feeds.ETA.Drain()
	if p.quiet {
		return
	}

	for _, e := range logs {
		fmt.Fprintf(p.env.Stdout, "%s | %s\n", e.Time.Format("15:04:05"), e.Message)
	}

	if len(etas) > 0 {
		p.lastETA = etas[len(etas)-1]
	}
	if len(percents) > 0 {
		percent := percents[len(percents)-1]
		if percent != p.lastPercent {
			p.lastPercent = percent
			if p.lastETA != "" {
				fmt.Fprintf(p.env.Stdout, "Progress: %d%% | ETA %s\n", percent, p.lastETA)
			} else {
				fmt.Fprintf(p.env.Stdout, "Progress: %d%%\n", percent)
			}
		}
	}
}
