package iodrill_test

import (
	"context"
	"testing"
	"time"

	"github.com/polyglothq/polydb/internal/iodrill"
	"github.com/polyglothq/polydb/internal/iotesting"
	"github.com/polyglothq/polydb/pkg/adaptive"
	"github.com/polyglothq/polydb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attemptDay = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestRecordAttempt(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	tr := iodrill.New(cfg, op)

	// The profile is created at the initial difficulty on first use.
	res, err := tr.RecordAttempt(ctx, "fr", "cloze", true)
	require.NoError(t, err)
	assert.Equal(t, cfg.Difficulty.Initial, res.Profile.Difficulty)
	assert.Equal(t, 1, res.Profile.ConsecutiveCorrect)
	assert.Equal(t, 1, res.Profile.TotalAttempts)
	assert.Equal(t, adaptive.Unchanged, res.Direction)

	// A full correct streak raises difficulty once.
	for i := 0; i < cfg.Difficulty.IncreaseAfter-1; i++ {
		res, err = tr.RecordAttempt(ctx, "fr", "cloze", true)
		require.NoError(t, err)
	}
	assert.Equal(t, adaptive.Raised, res.Direction)
	assert.InDelta(t, cfg.Difficulty.Initial+cfg.Difficulty.StepUp,
		res.Profile.Difficulty, 1e-9)
	assert.Equal(t, 0, res.Profile.ConsecutiveCorrect)
}

func TestRecordAttemptLowersOnWrongStreak(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	tr := iodrill.New(cfg, op)

	var last float64
	for i := 0; i < cfg.Difficulty.DecreaseAfter; i++ {
		r, err := tr.RecordAttempt(ctx, "pl", "quiz", false)
		require.NoError(t, err)
		last = r.Profile.Difficulty
		if i == cfg.Difficulty.DecreaseAfter-1 {
			assert.Equal(t, adaptive.Lowered, r.Direction)
		}
	}
	// Initial 1.0 minus one step-down, clamped to the configured floor.
	want := cfg.Difficulty.Initial - cfg.Difficulty.StepDown
	if want < cfg.Difficulty.Min {
		want = cfg.Difficulty.Min
	}
	assert.InDelta(t, want, last, 1e-9)
}

func TestDifficultyProfilesPerPair(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	tr := iodrill.New(cfg, op)

	// Absent profile reports the configured initial difficulty.
	d, err := tr.Difficulty(ctx, "fr", "cloze")
	require.NoError(t, err)
	assert.Equal(t, cfg.Difficulty.Initial, d)

	_, err = tr.RecordAttempt(ctx, "fr", "cloze", true)
	require.NoError(t, err)
	_, err = tr.RecordAttempt(ctx, "fr", "quiz", true)
	require.NoError(t, err)
	_, err = tr.RecordAttempt(ctx, "pl", "cloze", false)
	require.NoError(t, err)

	// Profiles are independent per (language, engine) pair.
	profiles, err := tr.Profiles(ctx, "")
	require.NoError(t, err)
	assert.Len(t, profiles, 3)

	frOnly, err := tr.Profiles(ctx, "fr")
	require.NoError(t, err)
	assert.Len(t, frOnly, 2)
}

func TestRecordCloze(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	iotesting.SeedLanguages(t, op)
	wordID := iotesting.SeedWord(t, op, schema.Word{
		LanguageID: "fr", Word: "eau", Meaning: "water",
	})
	tr := iodrill.New(cfg, op)

	rec, err := tr.RecordCloze(ctx, wordID, "vocab", "tmpl-1", true, attemptDay)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Attempts)
	assert.Equal(t, 1, rec.Correct)
	assert.Equal(t, "tmpl-1", rec.TemplateID)

	// Same (word, type) accumulates in one ledger row; the original
	// template id sticks.
	rec, err = tr.RecordCloze(ctx, wordID, "vocab", "tmpl-2", false, attemptDay)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Attempts)
	assert.Equal(t, 1, rec.Correct)
	assert.Equal(t, "tmpl-1", rec.TemplateID)

	// A different cloze type keys a separate row.
	rec, err = tr.RecordCloze(ctx, wordID, "grammar", "tmpl-3", true, attemptDay)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Attempts)

	var n int64
	require.NoError(t,
		op.DB().Model(&schema.ClozePerformance{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestRecordConjugationMastery(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	tr := iodrill.New(cfg, op)

	// The streak must reach the configured threshold for mastery.
	for i := 1; i < cfg.Difficulty.MasteryStreak; i++ {
		rec, err := tr.RecordConjugation(ctx,
			"fr", "to_be", "present", "1sg", true, attemptDay)
		require.NoError(t, err)
		assert.Equal(t, i, rec.Streak)
		assert.False(t, rec.Mastered)
	}
	rec, err := tr.RecordConjugation(ctx,
		"fr", "to_be", "present", "1sg", true, attemptDay)
	require.NoError(t, err)
	assert.True(t, rec.Mastered)

	// A miss resets the streak and revokes mastery.
	rec, err = tr.RecordConjugation(ctx,
		"fr", "to_be", "present", "1sg", false, attemptDay)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Streak)
	assert.False(t, rec.Mastered)
	assert.Equal(t, cfg.Difficulty.MasteryStreak+1, rec.Attempts)
}

func TestRecordBuilder(t *testing.T) {
	cfg := iotesting.NewTestConfig(t)
	op := iotesting.NewTestStore(t, cfg)
	ctx := context.Background()

	tr := iodrill.New(cfg, op)

	rec, err := tr.RecordBuilder(ctx, "pl", "svo-basic", 2, true, attemptDay)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Difficulty)
	assert.Equal(t, 1, rec.Attempts)

	// The declared difficulty sticks on later attempts.
	rec, err = tr.RecordBuilder(ctx, "pl", "svo-basic", 4, false, attemptDay)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Difficulty)
	assert.Equal(t, 2, rec.Attempts)
	assert.Equal(t, 1, rec.Correct)
}
