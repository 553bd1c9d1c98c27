package iostore

import (
	"fmt"
)

// ConnectionError is returned when the SQLite file cannot be opened.
func ConnectionError(path string, err error) error {
	return fmt.Errorf("failed to open database %q: %w", path, err)
}

// NotConnectedError is returned when an operation is attempted
// before Connect.
func NotConnectedError() error {
	return fmt.Errorf("not connected to database")
}

// SchemaCreateError is returned when AutoMigrate fails.
func SchemaCreateError(err error) error {
	return fmt.Errorf("failed to create schema: %w", err)
}
