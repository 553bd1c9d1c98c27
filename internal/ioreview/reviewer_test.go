package ioreview_test

import (
	"context"
	"testing"
	"time"

	"github.com/polyglothq/polydb/internal/ioreview"
	"github.com/polyglothq/polydb/internal/iotesting"
	"github.com/polyglothq/polydb/pkg/polydb"
	"github.com/polyglothq/polydb/pkg/schema"
	"github.com/polyglothq/polydb/pkg/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

func TestEnsureCard(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	wordID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "eau", Meaning: "water",
	})

	rev := ioreview.New(cfg, op)

	card, err := rev.EnsureCard(ctx, wordID, day0)
	require.NoError(t, err)
	assert.Equal(t, wordID, card.WordID)
	assert.Equal(t, cfg.SRS.InitialEase, card.EaseFactor)
	assert.Equal(t, 0, card.Repetitions)
	// Fresh cards are due immediately, at day precision.
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		card.NextReview.UTC())

	// A second call returns the same card.
	again, err := rev.EnsureCard(ctx, wordID, day0.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, card.ID, again.ID)

	// Unknown words never get cards.
	_, err = rev.EnsureCard(ctx, 99999, day0)
	assert.Error(t, err)
}

func TestGradeProgression(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	wordID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "eau", Meaning: "water",
	})
	rev := ioreview.New(cfg, op)
	card, err := rev.EnsureCard(ctx, wordID, day0)
	require.NoError(t, err)

	// First pass: one-day interval.
	res, err := rev.Grade(ctx, card.ID, srs.QualityPerfect, day0)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Card.IntervalDays)
	assert.Equal(t, 1, res.Card.Repetitions)
	assert.Equal(t, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		res.Card.NextReview.UTC())

	// Second pass: six-day interval.
	next := day0.AddDate(0, 0, 1)
	res, err = rev.Grade(ctx, card.ID, srs.QualityPerfect, next)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Card.IntervalDays)
	assert.InDelta(t, 2.7, res.Card.EaseFactor, 1e-9)
	assert.Equal(t, time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
		res.Card.NextReview.UTC())

	// Third pass scales by the stored ease: round(6 * 2.7) = 16.
	res, err = rev.Grade(ctx, card.ID, srs.QualityPerfect, next.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, 16, res.Card.IntervalDays)
	assert.Equal(t, 3, res.Card.Repetitions)
	assert.InDelta(t, 2.8, res.Card.EaseFactor, 1e-9)
	assert.Equal(t, 3, res.Card.TotalReviews)
	assert.Equal(t, 3, res.Card.CorrectReviews)
}

func TestGradeFailureResets(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	wordID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "pl", Word: "woda", Meaning: "water",
	})
	rev := ioreview.New(cfg, op)
	card, err := rev.EnsureCard(ctx, wordID, day0)
	require.NoError(t, err)

	_, err = rev.Grade(ctx, card.ID, srs.QualityPerfect, day0)
	require.NoError(t, err)
	_, err = rev.Grade(ctx, card.ID, srs.QualityPerfect, day0.AddDate(0, 0, 1))
	require.NoError(t, err)

	res, err := rev.Grade(ctx, card.ID, srs.QualityBlackout, day0.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.Card.Repetitions)
	assert.Equal(t, 1, res.Card.IntervalDays)
	// Ease decays on failure but memory state survives.
	assert.Less(t, res.Card.EaseFactor, cfg.SRS.InitialEase)
	assert.Equal(t, 3, res.Card.TotalReviews)
	assert.Equal(t, 2, res.Card.CorrectReviews)
}

func TestGradeRejectsBadQuality(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	wordID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "eau", Meaning: "water",
	})
	rev := ioreview.New(cfg, op)
	card, err := rev.EnsureCard(ctx, wordID, day0)
	require.NoError(t, err)

	_, err = rev.Grade(ctx, card.ID, srs.Quality(7), day0)
	assert.Error(t, err)

	// The card's state is untouched after the rejected grade.
	var stored schema.ReviewCard
	require.NoError(t, op.DB().First(&stored, card.ID).Error)
	assert.Equal(t, 0, stored.TotalReviews)
	assert.Equal(t, 0, stored.Repetitions)
}

func TestGradeUnknownCard(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)

	_, err := ioreview.New(cfg, op).
		Grade(context.Background(), 12345, srs.QualityGood, day0)
	assert.Error(t, err)
}

func TestGradeLogsSession(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	frID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "eau", Meaning: "water",
	})
	plID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "pl", Word: "woda", Meaning: "water",
	})
	rev := ioreview.New(cfg, op)

	for _, id := range []uint{frID, plID} {
		card, err := rev.EnsureCard(ctx, id, day0)
		require.NoError(t, err)
		_, err = rev.Grade(ctx, card.ID, srs.QualityGood, day0)
		require.NoError(t, err)
	}

	// One session row per day, counters and languages merged.
	var sessions []schema.Session
	require.NoError(t, op.DB().Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, "2026-08-01", sessions[0].Date)
	assert.Equal(t, "review", sessions[0].SessionType)
	assert.Equal(t, 2, sessions[0].WordsReviewed)
	assert.Equal(t, "fr,pl", sessions[0].Languages)
}

func TestDueCards(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	rev := ioreview.New(cfg, op)

	words := []schema.Word{
		{LanguageID: "fr", Word: "eau", Meaning: "water", ConceptID: "water"},
		{LanguageID: "fr", Word: "pain", Meaning: "bread", ConceptID: "bread"},
		{LanguageID: "pl", Word: "woda", Meaning: "water", ConceptID: "water"},
		{LanguageID: "zh", Word: "水", Meaning: "water", ConceptID: "water"},
	}
	days := []int{-5, -1, 0, 3} // due offsets relative to day0
	for i := range words {
		id := iotesting.SeedWord(t, op, words[i])
		_, err := rev.EnsureCard(ctx, id, day0.AddDate(0, 0, days[i]))
		require.NoError(t, err)
	}

	t.Run("most overdue first, future cards excluded", func(t *testing.T) {
		due, err := rev.DueCards(ctx, polydb.DueQuery{On: day0})
		require.NoError(t, err)
		require.Len(t, due, 3)
		assert.Equal(t, "eau", due[0].Word.Word)
		assert.Equal(t, 5, due[0].OverdueDays)
		assert.Equal(t, "pain", due[1].Word.Word)
		assert.Equal(t, "woda", due[2].Word.Word)
		assert.Equal(t, 0, due[2].OverdueDays)
	})

	t.Run("language filter", func(t *testing.T) {
		due, err := rev.DueCards(ctx, polydb.DueQuery{On: day0, LanguageID: "pl"})
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "woda", due[0].Word.Word)
	})

	t.Run("family filter", func(t *testing.T) {
		due, err := rev.DueCards(ctx, polydb.DueQuery{On: day0, Family: "romance"})
		require.NoError(t, err)
		require.Len(t, due, 2)
		for _, d := range due {
			assert.Equal(t, "romance", d.Language.Family)
		}
	})

	t.Run("limit caps the batch", func(t *testing.T) {
		due, err := rev.DueCards(ctx, polydb.DueQuery{On: day0, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, due, 2)
	})

	t.Run("everything due on a later date", func(t *testing.T) {
		due, err := rev.DueCards(ctx, polydb.DueQuery{On: day0.AddDate(0, 0, 10)})
		require.NoError(t, err)
		assert.Len(t, due, 4)
	})
}

func TestDueCounts(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	rev := ioreview.New(cfg, op)

	for _, w := range []schema.Word{
		{LanguageID: "fr", Word: "eau", Meaning: "water"},
		{LanguageID: "fr", Word: "pain", Meaning: "bread"},
		{LanguageID: "pl", Word: "woda", Meaning: "water"},
	} {
		id := iotesting.SeedWord(t, op, w)
		_, err := rev.EnsureCard(ctx, id, day0)
		require.NoError(t, err)
	}

	counts, err := rev.DueCounts(ctx, day0)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"fr": 2, "pl": 1}, counts)
}

func TestUnlearnedWords(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	rev := ioreview.New(cfg, op)

	learned := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "eau", Meaning: "water", FrequencyRank: 1,
	})
	iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "pain", Meaning: "bread", FrequencyRank: 30,
	})
	iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "maison", Meaning: "house", FrequencyRank: 20,
	})
	_, err := rev.EnsureCard(ctx, learned, day0)
	require.NoError(t, err)

	words, err := rev.UnlearnedWords(ctx, "fr", 10)
	require.NoError(t, err)
	require.Len(t, words, 2)
	// Frequency order, learned words excluded.
	assert.Equal(t, "maison", words[0].Word)
	assert.Equal(t, "pain", words[1].Word)
}

func TestStats(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	rev := ioreview.New(cfg, op)

	t.Run("empty store", func(t *testing.T) {
		stats, err := rev.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalCards)
		assert.Equal(t, 0.0, stats.AverageEase)
	})

	frID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "eau", Meaning: "water",
	})
	plID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "pl", Word: "woda", Meaning: "water",
	})
	for _, id := range []uint{frID, plID} {
		card, err := rev.EnsureCard(ctx, id, day0)
		require.NoError(t, err)
		_, err = rev.Grade(ctx, card.ID, srs.QualityPerfect, day0)
		require.NoError(t, err)
	}

	stats, err := rev.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCards)
	assert.Equal(t, 2, stats.TotalReviews)
	assert.Equal(t, 2, stats.CorrectReviews)
	assert.InDelta(t, 2.6, stats.AverageEase, 1e-9)
	assert.Equal(t, map[string]int{"fr": 1, "pl": 1}, stats.LearnedByLanguage)
}

func TestStreak(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()
	rev := ioreview.New(cfg, op)

	addSession := func(date string) {
		require.NoError(t, op.DB().Create(&schema.Session{
			Date: date, SessionType: "review", WordsReviewed: 1,
		}).Error)
	}

	t.Run("no sessions", func(t *testing.T) {
		n, err := rev.Streak(ctx, day0)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("consecutive days", func(t *testing.T) {
		addSession("2026-07-30")
		addSession("2026-07-31")
		addSession("2026-08-01")
		n, err := rev.Streak(ctx, day0)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		addSession("2026-07-27") // 28th and 29th missed
		n, err := rev.Streak(ctx, day0)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("yesterday keeps the streak alive", func(t *testing.T) {
		n, err := rev.Streak(ctx, day0.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("stale history resets to zero", func(t *testing.T) {
		n, err := rev.Streak(ctx, day0.AddDate(0, 0, 10))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}
