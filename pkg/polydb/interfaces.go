// Package polydb defines the contracts of the learning-state engine.
// Implementations live in internal/io* packages; commands in
// cmd/polydb consume these interfaces only.
package polydb

import (
	"context"
	"time"

	"github.com/polyglothq/polydb/pkg/schema"
	"github.com/polyglothq/polydb/pkg/srs"
)

// SchemaManager creates and migrates the SQLite schema.
// Schema management is idempotent; safe to run multiple times.
type SchemaManager interface {
	// Create creates or migrates the database schema.
	Create(ctx context.Context) error
}

// Importer brings the store to a target content version.
// Import is idempotent: re-running it against an unchanged pack
// performs zero writes.
type Importer interface {
	// Import reads the content pack from the configured pack
	// directory and inserts every record the store has not seen,
	// advancing the content version marker. All insertions for one
	// version bump land in a single transaction; on any storage
	// failure nothing is written and the marker is unchanged.
	Import(ctx context.Context) (*ImportReport, error)
}

// Reviewer is the spaced-repetition scheduler surface consumed by
// drill commands. All due-date arithmetic is evaluated against the
// caller-supplied date; the engine never reads the wall clock.
type Reviewer interface {
	// EnsureCard returns the word's review card, creating it due
	// immediately if the word has never been studied.
	EnsureCard(ctx context.Context, wordID uint, on time.Time) (*schema.ReviewCard, error)

	// Grade applies a graded outcome to a card inside one
	// transaction that also updates the day's session log. A
	// rejected quality leaves the card fully intact.
	Grade(ctx context.Context, cardID uint, quality srs.Quality, on time.Time) (*GradeResult, error)

	// DueCards returns the due set for a session, ordered by
	// overdue-ness descending then the requested priority, capped to
	// the query limit.
	DueCards(ctx context.Context, q DueQuery) ([]DueCard, error)

	// DueCounts returns the number of due cards per language.
	DueCounts(ctx context.Context, on time.Time) (map[string]int, error)

	// UnlearnedWords returns words without review cards, ordered by
	// frequency rank, for introducing new vocabulary.
	UnlearnedWords(ctx context.Context, languageID string, limit int) ([]schema.Word, error)

	// Stats aggregates review history across all cards.
	Stats(ctx context.Context) (*ReviewStats, error)

	// Streak returns the number of consecutive days with at least
	// one logged session, counted back from the given day.
	Streak(ctx context.Context, today time.Time) (int, error)
}

// DrillTracker maintains adaptive difficulty profiles and the
// per-drill attempt ledgers.
type DrillTracker interface {
	// RecordAttempt updates the (language, engine) difficulty
	// profile from one drill outcome, creating the profile on first
	// attempt.
	RecordAttempt(ctx context.Context, languageID, engineType string, correct bool) (*AttemptResult, error)

	// Difficulty returns the current difficulty for the pair, or the
	// configured initial value when no profile exists yet.
	Difficulty(ctx context.Context, languageID, engineType string) (float64, error)

	// Profiles lists difficulty profiles, optionally filtered by
	// language ("" means all).
	Profiles(ctx context.Context, languageID string) ([]schema.DifficultyProfile, error)

	// RecordCloze updates the cloze attempt ledger.
	RecordCloze(ctx context.Context, wordID uint, clozeType, templateID string, correct bool, on time.Time) (*schema.ClozePerformance, error)

	// RecordConjugation updates the conjugation mastery ledger,
	// flagging mastery once the streak threshold is reached.
	RecordConjugation(ctx context.Context, languageID, verbConceptID, tense, person string, correct bool, on time.Time) (*schema.ConjugationMastery, error)

	// RecordBuilder updates the sentence-builder attempt ledger.
	RecordBuilder(ctx context.Context, languageID, patternID string, difficulty int, correct bool, on time.Time) (*schema.BuilderPerformance, error)
}
