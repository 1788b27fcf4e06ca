// Package yamlutil wraps YAML encoding for run configuration documents so
// the rest of the module never imports the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize bounds a configuration document. Run configs are a few
// hundred bytes of paths and mappings; anything near the limit is not one
// of ours.
const MaxDocumentSize = 256 << 10

var (
	ErrEmptyDocument    = errors.New("yamlutil: empty document")
	ErrDocumentTooLarge = errors.New("yamlutil: document exceeds maximum size")
	ErrNilDestination   = errors.New("yamlutil: nil destination pointer")
)

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return data, nil
}

// UnmarshalStrict decodes data into v, rejecting unknown fields so a typo
// in a config key fails loudly instead of silently taking the default.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrEmptyDocument
	case len(data) > MaxDocumentSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), MaxDocumentSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
