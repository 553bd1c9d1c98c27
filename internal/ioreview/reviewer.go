// Package ioreview implements the spaced-repetition scheduler
// service: lazy card creation, grading, and due-set selection. It is
// the only writer of review_cards rows.
package ioreview

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/polyglothq/polydb/internal/iostore"
	"github.com/polyglothq/polydb/pkg/config"
	"github.com/polyglothq/polydb/pkg/polydb"
	"github.com/polyglothq/polydb/pkg/schema"
	"github.com/polyglothq/polydb/pkg/srs"
	"gorm.io/gorm"
)

// reviewer implements the polydb.Reviewer interface.
type reviewer struct {
	cfg *config.Config
	op  *iostore.Operator
}

// New creates a new Reviewer.
func New(cfg *config.Config, op *iostore.Operator) polydb.Reviewer {
	return &reviewer{cfg: cfg, op: op}
}

// dateOnly truncates a timestamp to its UTC calendar day. All
// scheduling arithmetic runs on whole days.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EnsureCard returns the word's review card, creating one due
// immediately on first exposure.
func (r *reviewer) EnsureCard(
	ctx context.Context,
	wordID uint,
	on time.Time,
) (*schema.ReviewCard, error) {
	var card schema.ReviewCard
	err := r.op.DB().WithContext(ctx).
		First(&card, "word_id = ?", wordID).Error
	if err == nil {
		return &card, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.op.Transaction(ctx, func(tx *gorm.DB) error {
		var word schema.Word
		if err := tx.First(&word, wordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return UnknownWordError(wordID)
			}
			return err
		}
		card = schema.ReviewCard{
			WordID:     wordID,
			EaseFactor: r.cfg.SRS.InitialEase,
			NextReview: dateOnly(on),
		}
		return tx.Create(&card).Error
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("Created review card", "word_id", wordID, "card_id", card.ID)
	return &card, nil
}

// Grade applies one graded outcome to a card. The card update and the
// day's session-log row commit in the same transaction; a rejected
// quality or storage failure leaves the card's prior state intact.
func (r *reviewer) Grade(
	ctx context.Context,
	cardID uint,
	quality srs.Quality,
	on time.Time,
) (*polydb.GradeResult, error) {
	params := r.cfg.SRSParams()
	var result polydb.GradeResult

	err := r.op.Transaction(ctx, func(tx *gorm.DB) error {
		var card schema.ReviewCard
		if err := tx.First(&card, cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return UnknownCardError(cardID)
			}
			return err
		}

		state := srs.State{
			EaseFactor:   card.EaseFactor,
			IntervalDays: card.IntervalDays,
			Repetitions:  card.Repetitions,
		}
		next, err := srs.Apply(state, quality, params)
		if err != nil {
			return err
		}

		day := dateOnly(on)
		correct := srs.Passed(quality, params)

		card.EaseFactor = next.EaseFactor
		card.IntervalDays = next.IntervalDays
		card.Repetitions = next.Repetitions
		card.NextReview = day.AddDate(0, 0, next.IntervalDays)
		card.LastReview = &day
		card.TotalReviews++
		if correct {
			card.CorrectReviews++
		}
		if err := tx.Save(&card).Error; err != nil {
			return err
		}

		if err := logReview(tx, card.WordID, day); err != nil {
			return err
		}

		result = polydb.GradeResult{Card: card, Correct: correct}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// logReview increments the day's review session row, creating it on
// the first review of the day.
func logReview(tx *gorm.DB, wordID uint, day time.Time) error {
	var word schema.Word
	if err := tx.First(&word, wordID).Error; err != nil {
		return err
	}

	date := day.Format("2006-01-02")
	var sess schema.Session
	err := tx.Where("date = ? AND session_type = ?", date, "review").
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sess = schema.Session{
			Date:        date,
			SessionType: "review",
		}
	} else if err != nil {
		return err
	}

	sess.WordsReviewed++
	sess.Languages = mergeLanguage(sess.Languages, word.LanguageID)
	return tx.Save(&sess).Error
}

// mergeLanguage appends a language id to a comma-separated list,
// keeping entries unique.
func mergeLanguage(list, id string) string {
	if list == "" {
		return id
	}
	for _, have := range strings.Split(list, ",") {
		if have == id {
			return list
		}
	}
	return list + "," + id
}

// DueCards returns the due set for one session: cards whose next
// review date is on or before the query date, most overdue first,
// then ordered by the requested priority, capped to the batch limit.
func (r *reviewer) DueCards(
	ctx context.Context,
	q polydb.DueQuery,
) ([]polydb.DueCard, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = r.cfg.SRS.MaxBatch
	}
	on := dateOnly(q.On)

	db := r.op.DB().WithContext(ctx).
		Table("review_cards").
		Select("review_cards.*").
		Joins("JOIN words ON words.id = review_cards.word_id").
		Joins("JOIN languages ON languages.id = words.language_id").
		Where("review_cards.next_review <= ?", on)
	if q.LanguageID != "" {
		db = db.Where("words.language_id = ?", q.LanguageID)
	}
	if q.Family != "" {
		db = db.Where("languages.family = ?", q.Family)
	}

	db = db.Order("review_cards.next_review ASC")
	switch q.Priority {
	case polydb.PriorityConcept:
		db = db.Order("words.concept_id ASC")
	case polydb.PriorityCEFR:
		db = db.Order("words.cefr ASC")
	default:
		db = db.Order("review_cards.ease_factor ASC")
	}

	var cards []schema.ReviewCard
	if err := db.Limit(limit).Find(&cards).Error; err != nil {
		return nil, err
	}
	return r.assembleDue(ctx, cards, on)
}

// assembleDue joins cards with their words and languages, preserving
// query order.
func (r *reviewer) assembleDue(
	ctx context.Context,
	cards []schema.ReviewCard,
	on time.Time,
) ([]polydb.DueCard, error) {
	if len(cards) == 0 {
		return nil, nil
	}
	wordIDs := make([]uint, len(cards))
	for i, c := range cards {
		wordIDs[i] = c.WordID
	}

	var words []schema.Word
	err := r.op.DB().WithContext(ctx).
		Where("id IN ?", wordIDs).Find(&words).Error
	if err != nil {
		return nil, err
	}
	wordByID := make(map[uint]schema.Word, len(words))
	langIDs := make(map[string]bool)
	for _, w := range words {
		wordByID[w.ID] = w
		langIDs[w.LanguageID] = true
	}

	ids := make([]string, 0, len(langIDs))
	for id := range langIDs {
		ids = append(ids, id)
	}
	var langs []schema.Language
	err = r.op.DB().WithContext(ctx).
		Where("id IN ?", ids).Find(&langs).Error
	if err != nil {
		return nil, err
	}
	langByID := make(map[string]schema.Language, len(langs))
	for _, l := range langs {
		langByID[l.ID] = l
	}

	due := make([]polydb.DueCard, 0, len(cards))
	for _, c := range cards {
		w := wordByID[c.WordID]
		overdue := int(on.Sub(dateOnly(c.NextReview)).Hours() / 24)
		if overdue < 0 {
			overdue = 0
		}
		due = append(due, polydb.DueCard{
			Card:        c,
			Word:        w,
			Language:    langByID[w.LanguageID],
			OverdueDays: overdue,
		})
	}
	return due, nil
}

// DueCounts returns the number of due cards per language.
func (r *reviewer) DueCounts(
	ctx context.Context,
	on time.Time,
) (map[string]int, error) {
	type row struct {
		LanguageID string
		Cnt        int
	}
	var rows []row
	err := r.op.DB().WithContext(ctx).
		Table("review_cards").
		Select("words.language_id AS language_id, COUNT(*) AS cnt").
		Joins("JOIN words ON words.id = review_cards.word_id").
		Where("review_cards.next_review <= ?", dateOnly(on)).
		Group("words.language_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.LanguageID] = r.Cnt
	}
	return counts, nil
}

// UnlearnedWords returns words that have no review card yet, by
// ascending frequency rank.
func (r *reviewer) UnlearnedWords(
	ctx context.Context,
	languageID string,
	limit int,
) ([]schema.Word, error) {
	var words []schema.Word
	err := r.op.DB().WithContext(ctx).
		Where("language_id = ?", languageID).
		Where("id NOT IN (?)",
			r.op.DB().Model(&schema.ReviewCard{}).Select("word_id")).
		Order("frequency_rank ASC").
		Limit(limit).
		Find(&words).Error
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Stats aggregates review history across all cards.
func (r *reviewer) Stats(ctx context.Context) (*polydb.ReviewStats, error) {
	type agg struct {
		Total   int
		AvgEase float64
		Reviews int
		Correct int
	}
	var a agg
	err := r.op.DB().WithContext(ctx).
		Model(&schema.ReviewCard{}).
		Select("COUNT(*) AS total, " +
			"COALESCE(AVG(ease_factor), 0) AS avg_ease, " +
			"COALESCE(SUM(total_reviews), 0) AS reviews, " +
			"COALESCE(SUM(correct_reviews), 0) AS correct").
		Scan(&a).Error
	if err != nil {
		return nil, err
	}

	type langRow struct {
		LanguageID string
		Cnt        int
	}
	var perLang []langRow
	err = r.op.DB().WithContext(ctx).
		Table("review_cards").
		Select("words.language_id AS language_id, COUNT(*) AS cnt").
		Joins("JOIN words ON words.id = review_cards.word_id").
		Group("words.language_id").
		Scan(&perLang).Error
	if err != nil {
		return nil, err
	}

	stats := &polydb.ReviewStats{
		TotalCards:        a.Total,
		AverageEase:       a.AvgEase,
		TotalReviews:      a.Reviews,
		CorrectReviews:    a.Correct,
		LearnedByLanguage: make(map[string]int, len(perLang)),
	}
	for _, row := range perLang {
		stats.LearnedByLanguage[row.LanguageID] = row.Cnt
	}
	return stats, nil
}

// Streak returns the number of consecutive days with at least one
// logged session, counted back from today. A streak survives until a
// full calendar day is missed.
func (r *reviewer) Streak(ctx context.Context, today time.Time) (int, error) {
	var dates []string
	err := r.op.DB().WithContext(ctx).
		Model(&schema.Session{}).
		Distinct("date").
		Order("date DESC").
		Pluck("date", &dates).Error
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	day := dateOnly(today)
	latest := day.Format("2006-01-02")
	yesterday := day.AddDate(0, 0, -1).Format("2006-01-02")
	if dates[0] != latest && dates[0] != yesterday {
		return 0, nil
	}

	streak := 1
	for i := 0; i < len(dates)-1; i++ {
		d1, err := time.Parse("2006-01-02", dates[i])
		if err != nil {
			return 0, err
		}
		d2, err := time.Parse("2006-01-02", dates[i+1])
		if err != nil {
			return 0, err
		}
		if d1.Sub(d2).Hours() == 24 {
			streak++
		} else {
			break
		}
	}
	return streak, nil
}
