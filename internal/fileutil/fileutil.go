// Package fileutil provides file, path, and name utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TempPrefix marks every intermediate artifact the generator writes, so a
// cleanup sweep can identify leftovers from crashed runs.
const TempPrefix = "certgen-"

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteTempFile creates a temporary file with the given content and
// extension. Returns the file path and a cleanup function to remove it.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", TempPrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// a bare name. A string containing path separators (/, \) is treated as a
// path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SanitizeName makes a string safe for use as a file or folder name.
// Each character illegal in file paths (<>:"/\|?* and control characters)
// maps to an underscore; trailing dots and spaces are trimmed since Windows
// rejects them. An empty result falls back to "certificate". Identical
// inputs always sanitize identically.
func SanitizeName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)

	mapped = strings.TrimRight(mapped, ". ")
	mapped = strings.TrimSpace(mapped)
	if mapped == "" {
		return "certificate"
	}
	return mapped
}

// StaleTempFiles counts leftover intermediate artifacts without removing
// them. Read-only counterpart to SweepTempFiles, used for diagnostics.
func StaleTempFiles() int {
	pattern := filepath.Join(os.TempDir(), TempPrefix+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0
	}
	return len(matches)
}

// SweepTempFiles removes leftover intermediate artifacts from the system
// temp directory. Returns the number of files removed. Removal errors are
// ignored; a file held open by a dying engine process disappears on the
// next sweep.
func SweepTempFiles() int {
	pattern := filepath.Join(os.TempDir(), TempPrefix+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0
	}

	removed := 0
	for _, m := range matches {
		if os.Remove(m) == nil {
			removed++
		}
	}
	return removed
}
