package iodrill

import (
	"errors"
	"fmt"

	"github.com/polyglothq/polydb/pkg/schema"
	"gorm.io/gorm"
)

// ledgerModel enumerates the attempt-ledger tables. They share the
// same update shape (find by composite key, bump counters, save) and
// differ only in key fields, so one generic upsert serves all three.
type ledgerModel interface {
	schema.ClozePerformance |
		schema.ConjugationMastery |
		schema.BuilderPerformance
}

// upsertLedger finds the ledger row matching the non-zero fields of
// key, creating it from the key when absent, applies mutate and saves
// the result. Must run inside a transaction.
func upsertLedger[T ledgerModel](
	tx *gorm.DB,
	key T,
	mutate func(*T),
) (T, error) {
	var rec T
	err := tx.Where(&key).First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = key
	case err != nil:
		return rec, fmt.Errorf("failed to read ledger row: %w", err)
	}

	mutate(&rec)

	if err := tx.Save(&rec).Error; err != nil {
		return rec, fmt.Errorf("failed to save ledger row: %w", err)
	}
	return rec, nil
}
