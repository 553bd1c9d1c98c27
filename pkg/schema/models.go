// Package schema provides database schema models for polydb.
// Models map one-to-one onto the SQLite tables managed by GORM.
package schema

import (
	"time"
)

// Language is immutable reference data describing one target language.
// Rows are created at content-import time and never mutated by drills.
type Language struct {
	// ID is the stable language code, e.g. "fr" or "zh".
	ID string `gorm:"primaryKey;size:8"`

	// Name is the display name of the language.
	Name string `gorm:"size:64;not null"`

	// NativeName is the language's name in its own script.
	NativeName string `gorm:"size:64"`

	// Family is the top-level language family, e.g. "romance".
	Family string `gorm:"size:32;index"`

	// Subfamily refines Family, e.g. "west-slavic".
	Subfamily string `gorm:"size:32"`

	// Script names the writing system, e.g. "latin", "hanzi".
	Script string `gorm:"size:32"`

	// DifficultyTier is a coarse 1-5 learning-effort estimate.
	DifficultyTier int
}

// Concept is a language-independent meaning unit that links
// equivalent words across languages. Immutable reference data.
type Concept struct {
	// ID is a stable concept identifier, e.g. "water".
	ID string `gorm:"primaryKey;size:64"`

	// Meaning is the canonical meaning text.
	Meaning string `gorm:"size:255;not null"`

	// MeaningAlt is an alternative-language gloss of the meaning.
	MeaningAlt string `gorm:"size:255"`

	// Category groups concepts thematically.
	Category string `gorm:"size:64"`

	// FrequencyRank orders concepts by corpus frequency; 0 is unknown.
	FrequencyRank int

	// EtymologyNote is optional free-text etymology background.
	EtymologyNote string

	// MnemonicHint is an optional bundled memorization hint.
	MnemonicHint string
}

// Word is one vocabulary entry belonging to exactly one Language.
// The natural key (language_id, word, meaning) is unique within the
// store; rows are created by import and never overwritten afterwards.
type Word struct {
	ID uint `gorm:"primaryKey"`

	// UID is a deterministic UUID v5 derived from the natural key.
	// The same record in two content packs always maps to one UID.
	UID string `gorm:"size:36;uniqueIndex"`

	// LanguageID references Language.ID.
	LanguageID string `gorm:"size:8;not null;index;uniqueIndex:idx_words_natural_key,priority:1"`

	// Word is the word text in the target language.
	Word string `gorm:"size:255;not null;uniqueIndex:idx_words_natural_key,priority:2"`

	// Meaning is the primary meaning text; part of the natural key.
	Meaning string `gorm:"size:255;not null;uniqueIndex:idx_words_natural_key,priority:3"`

	// MeaningAlt is a secondary-language gloss.
	MeaningAlt string `gorm:"size:255"`

	// Romanization for non-latin scripts.
	Romanization string `gorm:"size:255"`

	// PronunciationHint is an informal phonetic hint.
	PronunciationHint string `gorm:"size:255"`

	// Category groups words thematically, e.g. "verbs".
	Category string `gorm:"size:64;index"`

	// FrequencyRank orders words by corpus frequency; 0 is unknown.
	FrequencyRank int

	// ConceptID optionally references Concept.ID.
	ConceptID string `gorm:"size:64;index"`

	// Tone is the tone number for tonal languages; nil otherwise.
	Tone *int

	// CEFR is the difficulty level decoded from a `cefr:<level>` tag
	// in Notes during import, e.g. "A1". Empty when untagged.
	CEFR string `gorm:"size:4;index"`

	// Notes is free-text metadata carried verbatim from the pack.
	Notes string

	CreatedAt time.Time
}

// CustomWord is a learner-authored vocabulary entry. It has the shape
// of a Word but is owned by the learner and is never deduplicated
// against bundled content.
type CustomWord struct {
	ID uint `gorm:"primaryKey"`

	LanguageID   string `gorm:"size:8;not null;index"`
	Word         string `gorm:"size:255;not null"`
	Meaning      string `gorm:"size:255;not null"`
	MeaningAlt   string `gorm:"size:255"`
	Romanization string `gorm:"size:255"`

	// Tags is a free-form comma-separated tag list.
	Tags string `gorm:"size:255"`

	// Source records how the entry was created: "manual" or "csv".
	Source string `gorm:"size:16"`

	CreatedAt time.Time
}

// ReviewCard is the per-word spaced-repetition memory state.
// Created lazily on first exposure, mutated only by the review
// scheduler, never deleted.
type ReviewCard struct {
	ID uint `gorm:"primaryKey"`

	// WordID references the studied Word; one card per word.
	WordID uint `gorm:"not null;uniqueIndex"`

	// EaseFactor is the SM-2 ease multiplier, floored at 1.3.
	EaseFactor float64 `gorm:"not null;default:2.5"`

	// IntervalDays is the current review interval in days.
	IntervalDays int `gorm:"not null;default:0"`

	// Repetitions counts successful reviews in a row.
	Repetitions int `gorm:"not null;default:0"`

	// NextReview is the date the card next becomes due.
	NextReview time.Time `gorm:"index"`

	// LastReview is nil until the card has been graded once.
	LastReview *time.Time

	// TotalReviews and CorrectReviews accumulate grading history.
	TotalReviews   int `gorm:"not null;default:0"`
	CorrectReviews int `gorm:"not null;default:0"`

	CreatedAt time.Time
}

// DifficultyProfile is the adaptive difficulty state for one
// (language, drill engine) pair. One row per pair, created on the
// first recorded attempt.
type DifficultyProfile struct {
	ID uint `gorm:"primaryKey"`

	LanguageID string `gorm:"size:8;not null;uniqueIndex:idx_difficulty_profile_key,priority:1"`

	// EngineType names the drill engine, e.g. "cloze", "quiz".
	EngineType string `gorm:"size:32;not null;uniqueIndex:idx_difficulty_profile_key,priority:2"`

	// Difficulty is the continuous difficulty score, clamped to the
	// configured band.
	Difficulty float64 `gorm:"not null"`

	// ConsecutiveCorrect and ConsecutiveWrong are mutually exclusive
	// streak counters; each attempt resets the opposite one.
	ConsecutiveCorrect int `gorm:"not null;default:0"`
	ConsecutiveWrong   int `gorm:"not null;default:0"`

	// TotalAttempts is monotonic and never resets.
	TotalAttempts int `gorm:"not null;default:0"`

	UpdatedAt time.Time
}

// ClozePerformance is the attempt ledger for cloze exercises,
// keyed by (word, cloze type).
type ClozePerformance struct {
	ID uint `gorm:"primaryKey"`

	WordID    uint   `gorm:"not null;uniqueIndex:idx_cloze_key,priority:1"`
	ClozeType string `gorm:"size:32;not null;uniqueIndex:idx_cloze_key,priority:2"`

	// TemplateID records which sentence template produced the drill.
	TemplateID string `gorm:"size:64"`

	Attempts      int `gorm:"not null;default:0"`
	Correct       int `gorm:"not null;default:0"`
	LastAttempted time.Time
}

// ConjugationMastery is the attempt ledger for conjugation drills,
// keyed by (language, verb concept, tense, person). Mastered is set
// once the correctness streak reaches the configured threshold.
type ConjugationMastery struct {
	ID uint `gorm:"primaryKey"`

	LanguageID    string `gorm:"size:8;not null;uniqueIndex:idx_conjugation_key,priority:1"`
	VerbConceptID string `gorm:"size:64;not null;uniqueIndex:idx_conjugation_key,priority:2"`
	Tense         string `gorm:"size:32;not null;uniqueIndex:idx_conjugation_key,priority:3"`
	Person        string `gorm:"size:16;not null;uniqueIndex:idx_conjugation_key,priority:4"`

	Attempts      int  `gorm:"not null;default:0"`
	Correct       int  `gorm:"not null;default:0"`
	Streak        int  `gorm:"not null;default:0"`
	Mastered      bool `gorm:"not null;default:false"`
	LastAttempted time.Time
}

// BuilderPerformance is the attempt ledger for sentence-builder
// exercises, keyed by (language, pattern).
type BuilderPerformance struct {
	ID uint `gorm:"primaryKey"`

	LanguageID string `gorm:"size:8;not null;uniqueIndex:idx_builder_key,priority:1"`
	PatternID  string `gorm:"size:64;not null;uniqueIndex:idx_builder_key,priority:2"`

	// Difficulty is the pattern's declared difficulty level.
	Difficulty int

	Attempts      int `gorm:"not null;default:0"`
	Correct       int `gorm:"not null;default:0"`
	LastAttempted time.Time
}

// KeywordMnemonic is a learner-authored memory hook; one per word.
type KeywordMnemonic struct {
	ID uint `gorm:"primaryKey"`

	WordID   uint   `gorm:"not null;uniqueIndex"`
	Keyword  string `gorm:"size:255"`
	Mnemonic string

	CreatedAt time.Time
}

// Session is one study-session log entry, used for streak and
// statistics computation.
type Session struct {
	ID uint `gorm:"primaryKey"`

	// Date is the session day in ISO form, e.g. "2026-08-31".
	Date string `gorm:"size:10;not null;index"`

	// SessionType names the activity: "review", "learn", "drill".
	SessionType string `gorm:"size:32"`

	DurationMinutes int
	WordsLearned    int
	WordsReviewed   int

	// Languages is a comma-separated list of practiced language ids.
	Languages string `gorm:"size:255"`
}

// Setting is a key/value row; holds the content version marker among
// other scalar state.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:255"`
}

// ContentVersionKey is the settings key holding the version of the
// most recently imported content release.
const ContentVersionKey = "content_version"
