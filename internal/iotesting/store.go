// Package iotesting provides shared test utilities: a throwaway
// SQLite store with migrated schema and canned reference data.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/polyglothq/polydb/internal/iostore"
	"github.com/polyglothq/polydb/pkg/bundle"
	"github.com/polyglothq/polydb/pkg/config"
	"github.com/polyglothq/polydb/pkg/schema"
)

// NewTestConfig returns a config pointing at a fresh database file
// under t.TempDir().
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.HomeDir = t.TempDir()
	cfg.Database.Path = filepath.Join(t.TempDir(), "polydb_test.db")
	return cfg
}

// NewTestStore opens a throwaway store with the schema migrated.
// The connection is closed automatically when the test ends.
func NewTestStore(t *testing.T, cfg *config.Config) *iostore.Operator {
	t.Helper()
	op := iostore.New(cfg)
	if err := op.Connect(); err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })

	if err := op.Create(context.Background()); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return op
}

// SeedLanguages inserts canned reference languages used across tests.
func SeedLanguages(t *testing.T, op *iostore.Operator) {
	t.Helper()
	langs := []schema.Language{
		{ID: "fr", Name: "French", Family: "romance",
			Subfamily: "western", Script: "latin", DifficultyTier: 1},
		{ID: "pl", Name: "Polish", Family: "slavic",
			Subfamily: "west-slavic", Script: "latin", DifficultyTier: 3},
		{ID: "zh", Name: "Mandarin", Family: "sinosphere",
			Script: "hanzi", DifficultyTier: 4},
	}
	if err := op.DB().Create(&langs).Error; err != nil {
		t.Fatalf("failed to seed languages: %v", err)
	}
}

// SeedWord inserts one word and returns its id. A missing UID is
// derived from the natural key, as the importer would.
func SeedWord(t *testing.T, op *iostore.Operator, w schema.Word) uint {
	t.Helper()
	if w.UID == "" {
		w.UID = bundle.RecordUID(w.LanguageID,
			bundle.Key{Word: w.Word, Meaning: w.Meaning})
	}
	if err := op.DB().Create(&w).Error; err != nil {
		t.Fatalf("failed to seed word: %v", err)
	}
	return w.ID
}
