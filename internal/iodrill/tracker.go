// Package iodrill implements the adaptive difficulty engine and the
// per-drill attempt ledgers (cloze, conjugation, sentence builder).
package iodrill

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/polyglothq/polydb/internal/iostore"
	"github.com/polyglothq/polydb/pkg/adaptive"
	"github.com/polyglothq/polydb/pkg/config"
	"github.com/polyglothq/polydb/pkg/polydb"
	"github.com/polyglothq/polydb/pkg/schema"
	"gorm.io/gorm"
)

// tracker implements the polydb.DrillTracker interface.
type tracker struct {
	cfg *config.Config
	op  *iostore.Operator
}

// New creates a new DrillTracker.
func New(cfg *config.Config, op *iostore.Operator) polydb.DrillTracker {
	return &tracker{cfg: cfg, op: op}
}

// RecordAttempt updates the (language, engine) difficulty profile
// from one drill outcome. The profile is created on first attempt;
// every update runs in its own transaction.
func (t *tracker) RecordAttempt(
	ctx context.Context,
	languageID, engineType string,
	correct bool,
) (*polydb.AttemptResult, error) {
	params := t.cfg.DifficultyParams()
	var result polydb.AttemptResult

	err := t.op.Transaction(ctx, func(tx *gorm.DB) error {
		var row schema.DifficultyProfile
		err := tx.Where("language_id = ? AND engine_type = ?",
			languageID, engineType).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = schema.DifficultyProfile{
				LanguageID: languageID,
				EngineType: engineType,
				Difficulty: params.Initial,
			}
		} else if err != nil {
			return err
		}

		profile := adaptive.Profile{
			Difficulty:         row.Difficulty,
			ConsecutiveCorrect: row.ConsecutiveCorrect,
			ConsecutiveWrong:   row.ConsecutiveWrong,
			TotalAttempts:      row.TotalAttempts,
		}
		next, dir := adaptive.Apply(profile, correct, params)

		row.Difficulty = next.Difficulty
		row.ConsecutiveCorrect = next.ConsecutiveCorrect
		row.ConsecutiveWrong = next.ConsecutiveWrong
		row.TotalAttempts = next.TotalAttempts
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		result = polydb.AttemptResult{Profile: row, Direction: dir}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Direction != adaptive.Unchanged {
		slog.Info("Difficulty adjusted",
			"language", languageID,
			"engine", engineType,
			"difficulty", result.Profile.Difficulty)
	}
	return &result, nil
}

// Difficulty returns the current difficulty for the pair, or the
// configured initial value when no profile exists yet.
func (t *tracker) Difficulty(
	ctx context.Context,
	languageID, engineType string,
) (float64, error) {
	var row schema.DifficultyProfile
	err := t.op.DB().WithContext(ctx).
		Where("language_id = ? AND engine_type = ?",
			languageID, engineType).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t.cfg.Difficulty.Initial, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Difficulty, nil
}

// Profiles lists difficulty profiles, optionally filtered by
// language.
func (t *tracker) Profiles(
	ctx context.Context,
	languageID string,
) ([]schema.DifficultyProfile, error) {
	db := t.op.DB().WithContext(ctx).
		Order("language_id, engine_type")
	if languageID != "" {
		db = db.Where("language_id = ?", languageID)
	}
	var rows []schema.DifficultyProfile
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RecordCloze updates the cloze attempt ledger.
func (t *tracker) RecordCloze(
	ctx context.Context,
	wordID uint,
	clozeType, templateID string,
	correct bool,
	on time.Time,
) (*schema.ClozePerformance, error) {
	var rec schema.ClozePerformance
	err := t.op.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		rec, err = upsertLedger(tx,
			schema.ClozePerformance{
				WordID:    wordID,
				ClozeType: clozeType,
			},
			func(r *schema.ClozePerformance) {
				if r.TemplateID == "" {
					r.TemplateID = templateID
				}
				r.Attempts++
				if correct {
					r.Correct++
				}
				r.LastAttempted = on
			})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordConjugation updates the conjugation mastery ledger. The
// streak resets on a miss; reaching the configured streak threshold
// flags the item as mastered.
func (t *tracker) RecordConjugation(
	ctx context.Context,
	languageID, verbConceptID, tense, person string,
	correct bool,
	on time.Time,
) (*schema.ConjugationMastery, error) {
	threshold := t.cfg.Difficulty.MasteryStreak
	var rec schema.ConjugationMastery
	err := t.op.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		rec, err = upsertLedger(tx,
			schema.ConjugationMastery{
				LanguageID:    languageID,
				VerbConceptID: verbConceptID,
				Tense:         tense,
				Person:        person,
			},
			func(r *schema.ConjugationMastery) {
				r.Attempts++
				if correct {
					r.Correct++
					r.Streak++
				} else {
					r.Streak = 0
				}
				r.Mastered = r.Streak >= threshold
				r.LastAttempted = on
			})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordBuilder updates the sentence-builder attempt ledger.
func (t *tracker) RecordBuilder(
	ctx context.Context,
	languageID, patternID string,
	difficulty int,
	correct bool,
	on time.Time,
) (*schema.BuilderPerformance, error) {
	var rec schema.BuilderPerformance
	err := t.op.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		rec, err = upsertLedger(tx,
			schema.BuilderPerformance{
				LanguageID: languageID,
				PatternID:  patternID,
			},
			func(r *schema.BuilderPerformance) {
				if r.Difficulty == 0 {
					r.Difficulty = difficulty
				}
				r.Attempts++
				if correct {
					r.Correct++
				}
				r.LastAttempted = on
			})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
