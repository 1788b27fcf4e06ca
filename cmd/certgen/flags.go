package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrBadPair reports a --map or --default value without a KEY=VALUE shape.
var ErrBadPair = errors.New("expected KEY=VALUE pair")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common commonFlags

	source   string
	template string
	output   string

	nameColumn string
	dateColumn string
	mappings   []string // PLACEHOLDER=COLUMN
	policy     string
	defaults   []string // PLACEHOLDER=VALUE
	dateFormat string

	fontFamily string
	fontSize   float64
	fontBold   bool

	sortBy string

	orientation string
	mode        string

	saveConfig bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.source, "source", "s", "", "participant spreadsheet (.xlsx)")
	fs.StringVarP(&f.template, "template", "t", "", "certificate template (.html or .md)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")

	fs.StringVar(&f.nameColumn, "name-column", "", "column holding the NAME placeholder value")
	fs.StringVar(&f.dateColumn, "date-column", "", "column holding the DATE placeholder value")
	fs.StringSliceVar(&f.mappings, "map", nil, "extra placeholder mapping PLACEHOLDER=COLUMN (repeatable)")
	fs.StringVar(&f.policy, "policy", "", "empty-cell policy: stop, skip, default")
	fs.StringSliceVar(&f.defaults, "default", nil, "fallback value PLACEHOLDER=VALUE for the default policy (repeatable)")
	fs.StringVar(&f.dateFormat, "date-format", "", "DATE rendering format, e.g. \"D MMMM YYYY\" (default DD.MM.YYYY)")

	fs.StringVar(&f.fontFamily, "font-family", "", "font family for substituted text (inherits when unset)")
	fs.Float64Var(&f.fontSize, "font-size", 0, "font size in points for substituted text")
	fs.BoolVar(&f.fontBold, "font-bold", false, "render substituted text bold")

	fs.StringVar(&f.sortBy, "sort-by", "", "group output into subfolders by this placeholder's value")

	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.StringVar(&f.mode, "mode", "", "export mode: native, raster")

	fs.BoolVar(&f.saveConfig, "save-config", false, "persist the effective settings for the next run")

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printGenerateUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parsePairs splits KEY=VALUE strings into a map. Empty keys and entries
// without a separator are rejected.
func parsePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, found := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadPair, p)
		}
		out[key] = value
	}
	return out, nil
}
