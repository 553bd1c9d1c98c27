package adaptive_test

import (
	"testing"

	"github.com/polyglothq/polydb/pkg/adaptive"
	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := adaptive.DefaultParams()

	assert.Equal(t, 0.5, p.Min)
	assert.Equal(t, 5.0, p.Max)
	assert.Equal(t, 1.0, p.Initial)
	assert.Equal(t, 5, p.IncreaseAfter)
	assert.Equal(t, 3, p.DecreaseAfter)
}

func TestApplyStepUp(t *testing.T) {
	p := adaptive.Params{
		Min: 0.5, Max: 5.0, Initial: 1.0,
		IncreaseAfter: 3, DecreaseAfter: 2,
		StepUp: 0.2, StepDown: 0.2,
	}
	pr := adaptive.NewProfile(p)

	var dir adaptive.Direction
	for i := 0; i < 3; i++ {
		pr, dir = adaptive.Apply(pr, true, p)
	}

	assert.Equal(t, adaptive.Raised, dir)
	assert.InDelta(t, 1.2, pr.Difficulty, 1e-9)
	// Streak resets after a step so the next rise needs a full streak.
	assert.Equal(t, 0, pr.ConsecutiveCorrect)
	assert.Equal(t, 3, pr.TotalAttempts)
}

func TestApplyStepDown(t *testing.T) {
	p := adaptive.DefaultParams()
	pr := adaptive.Profile{Difficulty: 2.0}

	var dir adaptive.Direction
	for i := 0; i < 3; i++ {
		pr, dir = adaptive.Apply(pr, false, p)
	}

	assert.Equal(t, adaptive.Lowered, dir)
	assert.InDelta(t, 1.5, pr.Difficulty, 1e-9)
	assert.Equal(t, 0, pr.ConsecutiveWrong)
}

func TestApplyStreaksMutuallyExclusive(t *testing.T) {
	p := adaptive.DefaultParams()
	pr := adaptive.NewProfile(p)

	pr, _ = adaptive.Apply(pr, true, p)
	pr, _ = adaptive.Apply(pr, true, p)
	pr, dir := adaptive.Apply(pr, false, p)

	assert.Equal(t, adaptive.Unchanged, dir)
	assert.Equal(t, 0, pr.ConsecutiveCorrect, "miss resets the correct streak")
	assert.Equal(t, 1, pr.ConsecutiveWrong)
	assert.InDelta(t, p.Initial, pr.Difficulty, 1e-9)
	assert.Equal(t, 3, pr.TotalAttempts)
}

func TestApplyClamps(t *testing.T) {
	p := adaptive.DefaultParams()

	t.Run("ceiling", func(t *testing.T) {
		pr := adaptive.Profile{Difficulty: p.Max}
		for i := 0; i < 20; i++ {
			pr, _ = adaptive.Apply(pr, true, p)
		}
		assert.Equal(t, p.Max, pr.Difficulty)
	})

	t.Run("floor", func(t *testing.T) {
		pr := adaptive.Profile{Difficulty: p.Min}
		for i := 0; i < 20; i++ {
			pr, _ = adaptive.Apply(pr, false, p)
		}
		assert.Equal(t, p.Min, pr.Difficulty)
	})
}

func TestDistractorCount(t *testing.T) {
	tests := []struct {
		msg        string
		difficulty float64
		count      int
	}{
		{"easy band", 0.5, 3},
		{"just below medium", 1.49, 3},
		{"medium band", 1.5, 4},
		{"just below hard", 2.99, 4},
		{"hard band", 3.0, 5},
		{"maximum", 5.0, 5},
	}

	for _, v := range tests {
		assert.Equal(t, v.count, adaptive.DistractorCount(v.difficulty), v.msg)
	}
}

func TestTimePressure(t *testing.T) {
	// Baseline difficulty leaves the limit untouched.
	assert.Equal(t, 10000, adaptive.TimePressure(10000, 1.0))

	// Harder profiles get less time.
	assert.Equal(t, 7000, adaptive.TimePressure(10000, 3.0))

	// The scale factor bottoms out at 0.4.
	assert.Equal(t, 4000, adaptive.TimePressure(10000, 5.0))

	// The absolute floor is 1.5 seconds.
	assert.Equal(t, 1500, adaptive.TimePressure(2000, 5.0))
}
