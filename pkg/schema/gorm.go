package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Language{},
		&Concept{},
		&Word{},
		&CustomWord{},
		&ReviewCard{},
		&DifficultyProfile{},
		&ClozePerformance{},
		&ConjugationMastery{},
		&BuilderPerformance{},
		&KeywordMnemonic{},
		&Session{},
		&Setting{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the schema.
// AutoMigrate is idempotent and safe to run on every start.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
