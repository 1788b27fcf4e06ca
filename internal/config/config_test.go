package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Source:   SourceConfig{Path: "participants.xlsx"},
		Template: TemplateConfig{Path: "template.html"},
		Output:   OutputConfig{Dir: "out"},
		Mapping:  map[string]string{"NAME": "Full name", "DATE": "Date"},
		Policy:   "skip",
		Defaults: map[string]string{"TIME": "36"},
		Font:     FontConfig{UseCustom: true, Family: "Georgia", Size: 24, Bold: true},
		Sorting:  SortingConfig{Enabled: true, Column: "GROUP"},
		Page:     PageConfig{Orientation: "landscape", Mode: "native"},
	}

	path := filepath.Join(t.TempDir(), "nested", "certgen.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Policy != "skip" || got.Mapping["NAME"] != "Full name" {
		t.Errorf("loaded config = %+v", got)
	}
	if !got.Font.UseCustom || got.Font.Size != 24 {
		t.Errorf("font lost in round trip: %+v", got.Font)
	}
	if !got.Sorting.Enabled || got.Sorting.Column != "GROUP" {
		t.Errorf("sorting lost in round trip: %+v", got.Sorting)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := Load(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("policy: skip\nbogus: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Policy != "stop" {
		t.Errorf("default policy = %q, want stop", cfg.Policy)
	}
	if cfg.Page.Orientation != "landscape" || cfg.Page.Mode != "native" {
		t.Errorf("default page = %+v", cfg.Page)
	}
}
