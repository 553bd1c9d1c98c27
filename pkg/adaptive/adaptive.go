// Package adaptive implements the difficulty hill-climb policy for
// drill engines as a pure state transition. Difficulty rises only
// after a streak of correct answers and falls only after a streak of
// wrong ones, so isolated mistakes do not cause oscillation.
package adaptive

// Params are the tunable difficulty constants. Start from
// DefaultParams; values are clamped nowhere else.
type Params struct {
	// Min and Max bound the difficulty band.
	Min float64
	Max float64

	// Initial is the difficulty of a fresh profile.
	Initial float64

	// IncreaseAfter is the correct-streak length that raises
	// difficulty; DecreaseAfter is the wrong-streak length that
	// lowers it.
	IncreaseAfter int
	DecreaseAfter int

	// StepUp and StepDown are the adjustment amounts.
	StepUp   float64
	StepDown float64
}

// DefaultParams returns the stock difficulty policy.
func DefaultParams() Params {
	return Params{
		Min:           0.5,
		Max:           5.0,
		Initial:       1.0,
		IncreaseAfter: 5,
		DecreaseAfter: 3,
		StepUp:        0.3,
		StepDown:      0.5,
	}
}

// Profile is the difficulty state for one (language, engine) pair.
type Profile struct {
	Difficulty         float64
	ConsecutiveCorrect int
	ConsecutiveWrong   int
	TotalAttempts      int
}

// NewProfile returns a fresh profile at the initial difficulty.
func NewProfile(p Params) Profile {
	return Profile{Difficulty: p.Initial}
}

// Direction reports how an attempt moved the difficulty score.
type Direction int

const (
	// Unchanged means the attempt did not move difficulty.
	Unchanged Direction = iota
	// Raised means a correct streak stepped difficulty up.
	Raised
	// Lowered means a wrong streak stepped difficulty down.
	Lowered
)

// Apply records one attempt and returns the next profile state.
// The streak counters are mutually exclusive: each attempt resets the
// opposite counter. Reaching a streak threshold steps difficulty and
// resets that streak; difficulty stays inside [p.Min, p.Max]. The
// attempt total is monotonic.
func Apply(pr Profile, correct bool, p Params) (Profile, Direction) {
	next := pr
	next.TotalAttempts++

	if correct {
		next.ConsecutiveCorrect++
		next.ConsecutiveWrong = 0
	} else {
		next.ConsecutiveWrong++
		next.ConsecutiveCorrect = 0
	}

	dir := Unchanged
	if next.ConsecutiveCorrect >= p.IncreaseAfter {
		next.Difficulty = min(p.Max, next.Difficulty+p.StepUp)
		next.ConsecutiveCorrect = 0
		dir = Raised
	}
	if next.ConsecutiveWrong >= p.DecreaseAfter {
		next.Difficulty = max(p.Min, next.Difficulty-p.StepDown)
		next.ConsecutiveWrong = 0
		dir = Lowered
	}
	return next, dir
}

// DistractorCount scales the number of wrong choices shown in a
// multiple-choice drill with difficulty.
func DistractorCount(difficulty float64) int {
	switch {
	case difficulty < 1.5:
		return 3
	case difficulty < 3.0:
		return 4
	default:
		return 5
	}
}

// TimePressure scales a base time limit (milliseconds) with
// difficulty. Harder profiles get less time, floored at 1.5 seconds.
func TimePressure(baseMS int, difficulty float64) int {
	factor := 1.0 - (difficulty-1.0)*0.15
	if factor < 0.4 {
		factor = 0.4
	}
	ms := int(float64(baseMS) * factor)
	if ms < 1500 {
		ms = 1500
	}
	return ms
}
