package ioimport

import (
	"fmt"
)

// NoPackDirError is returned when import runs without a configured
// pack directory.
func NoPackDirError() error {
	return fmt.Errorf("no content pack directory configured")
}

// ManifestError is returned when the pack manifest cannot be read or
// parsed; without a manifest there is no version to import.
func ManifestError(dir string, err error) error {
	return fmt.Errorf("failed to load manifest from %q: %w", dir, err)
}

// ReferenceFileError is returned when a language or concept reference
// file named by the manifest is unreadable or malformed.
func ReferenceFileError(file string, err error) error {
	return fmt.Errorf("failed to load reference file %q: %w", file, err)
}

// KeyIndexError is returned when the existing-row index cannot be
// built.
func KeyIndexError(err error) error {
	return fmt.Errorf("failed to build natural-key index: %w", err)
}

// WordInsertError is returned when a word batch insert fails inside
// the import transaction.
func WordInsertError(err error) error {
	return fmt.Errorf("failed to insert words: %w", err)
}

// ImportTxError is returned when the version-bump transaction rolled
// back; the store is unchanged.
func ImportTxError(version string, err error) error {
	return fmt.Errorf("import of version %q rolled back: %w", version, err)
}
