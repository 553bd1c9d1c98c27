package polydb

import (
	"time"

	"github.com/polyglothq/polydb/pkg/adaptive"
	"github.com/polyglothq/polydb/pkg/schema"
)

// ImportReport summarizes one importer run.
type ImportReport struct {
	// PreviousVersion and TargetVersion are the stored marker before
	// the run and the manifest's declared version.
	PreviousVersion string
	TargetVersion   string

	// UpToDate is true when the stored version already covers the
	// target and the run performed zero writes.
	UpToDate bool

	// Languages and Concepts count newly inserted reference rows.
	Languages int
	Concepts  int

	// Words counts newly inserted word rows across all bundles.
	Words int

	// Bundles holds one entry per word bundle file.
	Bundles []BundleReport
}

// BundleReport summarizes the import of one word bundle file.
type BundleReport struct {
	File       string
	LanguageID string

	// Inserted counts new word rows from this bundle.
	Inserted int

	// SkippedDuplicate counts records whose natural key already
	// existed with an identical payload.
	SkippedDuplicate int

	// Conflicts counts records whose natural key existed with a
	// different payload; the existing row stays authoritative.
	Conflicts int

	// Rejected lists records that failed validation.
	Rejected []RejectedRecord

	// Err is set when the whole bundle was malformed and excluded
	// from the run.
	Err string
}

// RejectedRecord describes one record refused at the import boundary.
type RejectedRecord struct {
	Word   string
	Reason string
}

// GradeResult is the outcome of grading one review.
type GradeResult struct {
	Card    schema.ReviewCard
	Correct bool
}

// DuePriority selects the secondary ordering of the due set, applied
// after overdue-ness.
type DuePriority int

const (
	// PriorityNone orders only by overdue-ness, then ease.
	PriorityNone DuePriority = iota
	// PriorityConcept clusters due cards that share a concept.
	PriorityConcept
	// PriorityCEFR orders due cards by CEFR level, easiest first.
	PriorityCEFR
)

// DueQuery selects the due set for one session.
type DueQuery struct {
	// On is the session date; a card is due when its next-review
	// date is on or before it.
	On time.Time

	// LanguageID filters to one language; empty means all.
	LanguageID string

	// Family filters to one language family; empty means all.
	Family string

	// Priority is the secondary ordering.
	Priority DuePriority

	// Limit caps the batch; 0 means the configured maximum.
	Limit int
}

// DueCard is one due review item joined with its word and language.
type DueCard struct {
	Card     schema.ReviewCard
	Word     schema.Word
	Language schema.Language

	// OverdueDays is how many days past due the card is on the
	// query date; 0 for cards due today.
	OverdueDays int
}

// AttemptResult is the outcome of recording a drill attempt.
type AttemptResult struct {
	Profile schema.DifficultyProfile

	// Direction reports whether the attempt stepped difficulty.
	Direction adaptive.Direction
}

// ReviewStats aggregates review history across all cards.
type ReviewStats struct {
	TotalCards     int
	AverageEase    float64
	TotalReviews   int
	CorrectReviews int

	// LearnedByLanguage counts cards per language.
	LearnedByLanguage map[string]int
}
