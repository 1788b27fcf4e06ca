// Package config loads and saves the persisted run configuration: the
// paths, column mapping, and generation options chosen on previous runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LocBoyOff/DiplomGenerator/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// appDirName is the subdirectory under the user config dir.
const appDirName = "certgen"

// filePermissions for saved config files (rw-r--r--).
const filePermissions = 0o644

// Config holds everything a run needs beyond the core's own defaults.
// Loaded at start, saved after a successful run so the next invocation
// picks up where the last one left off.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Template TemplateConfig `yaml:"template"`
	Output   OutputConfig   `yaml:"output"`
	Mapping  map[string]string `yaml:"mapping"`  // placeholder -> column header or letter
	Policy   string            `yaml:"policy"`   // "stop", "skip", "default"
	Defaults map[string]string `yaml:"defaults"` // placeholder -> fallback value
	Font     FontConfig        `yaml:"font"`
	Sorting  SortingConfig     `yaml:"sorting"`
	Page     PageConfig        `yaml:"page"`

	// DateFormat renders DATE values, in tokens (DD, MM, YYYY, MMMM, ...).
	// Empty means DD.MM.YYYY.
	DateFormat string `yaml:"dateFormat"`
}

// SourceConfig locates the participant spreadsheet.
type SourceConfig struct {
	Path string `yaml:"path"`
}

// TemplateConfig locates the certificate template.
type TemplateConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig locates the destination directory.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// FontConfig styles substituted text. Zero value means inherit from the
// template.
type FontConfig struct {
	UseCustom bool    `yaml:"useCustom"`
	Family    string  `yaml:"family"`
	Size      float64 `yaml:"size"` // points
	Bold      bool    `yaml:"bold"`
}

// SortingConfig groups output into per-value subfolders.
type SortingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Column  string `yaml:"column"` // placeholder name
}

// PageConfig shapes the output page.
type PageConfig struct {
	Orientation string `yaml:"orientation"` // "portrait", "landscape"
	Mode        string `yaml:"mode"`        // "native", "raster"
}

// DefaultConfig returns a neutral configuration: stop on empty cells,
// inherit fonts, A4 landscape, native export.
func DefaultConfig() *Config {
	return &Config{
		Policy: "stop",
		Page:   PageConfig{Orientation: "landscape", Mode: "native"},
	}
}

// Load reads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's treated as a config name and searched in standard
// locations. Returns error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		configPath, err = resolvePath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func Save(cfg *Config, path string) error {
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// DefaultPath returns where Save puts the config when the user names none:
// ~/.config/certgen/certgen.yaml (or the platform equivalent), falling
// back to the working directory when no user config dir exists.
func DefaultPath() string {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "certgen.yaml"
	}
	return filepath.Join(userConfigDir, appDirName, "certgen.yaml")
}

// resolvePath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, the user config dir.
func resolvePath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
