// Package srs implements the SM-2 spaced-repetition algorithm as a
// pure state transition. Persistence and date arithmetic live in the
// review service; this package only maps (state, quality) to the next
// state.
package srs

import (
	"fmt"
	"math"
)

// Quality grades a review outcome on the SM-2 ordinal scale.
type Quality int

const (
	// QualityBlackout is a complete failure to recall.
	QualityBlackout Quality = iota
	// QualityWrong is an incorrect response, remembered once seen.
	QualityWrong
	// QualityWrongFamiliar is incorrect but the answer felt familiar.
	QualityWrongFamiliar
	// QualityHard is correct with significant effort.
	QualityHard
	// QualityGood is correct after some hesitation.
	QualityGood
	// QualityPerfect is immediate, effortless recall.
	QualityPerfect
)

// Params are the tunable SM-2 constants. The zero value is not
// usable; start from DefaultParams.
type Params struct {
	// InitialEase is the ease factor assigned to fresh cards.
	InitialEase float64

	// MinEase is the ease-factor floor. There is no ceiling.
	MinEase float64

	// PassThreshold is the lowest quality counted as a successful
	// recall.
	PassThreshold Quality

	// FirstInterval and SecondInterval are the fixed intervals (days)
	// for the first and second successful repetitions.
	FirstInterval  int
	SecondInterval int
}

// DefaultParams returns the standard SM-2 constants.
func DefaultParams() Params {
	return Params{
		InitialEase:    2.5,
		MinEase:        1.3,
		PassThreshold:  QualityHard,
		FirstInterval:  1,
		SecondInterval: 6,
	}
}

// State is the memory state of one card.
type State struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
}

// NewState returns the state of a card that has never been reviewed.
func NewState(p Params) State {
	return State{EaseFactor: p.InitialEase}
}

// Apply grades one review and returns the next state.
//
// The ease factor always moves by the SM-2 formula and is clamped to
// p.MinEase, including on failure: a failed recall decays ease but
// does not discard memory state. Quality below the pass threshold
// resets repetitions to 0 and the interval to FirstInterval. A pass
// uses FirstInterval for the first repetition, SecondInterval for the
// second, and round(interval x ease) from the third on. The growth
// interval uses the ease in effect before this review; the updated
// ease takes effect on the next one.
//
// Out-of-range quality is an input-validation error; the state is
// returned unchanged.
func Apply(s State, q Quality, p Params) (State, error) {
	if q < QualityBlackout || q > QualityPerfect {
		return s, fmt.Errorf("quality %d out of range [0, 5]", q)
	}

	next := s
	miss := float64(QualityPerfect - q)
	next.EaseFactor = s.EaseFactor + (0.1 - miss*(0.08+miss*0.02))
	if next.EaseFactor < p.MinEase {
		next.EaseFactor = p.MinEase
	}

	if q < p.PassThreshold {
		next.Repetitions = 0
		next.IntervalDays = p.FirstInterval
		return next, nil
	}

	switch s.Repetitions {
	case 0:
		next.IntervalDays = p.FirstInterval
	case 1:
		next.IntervalDays = p.SecondInterval
	default:
		next.IntervalDays = int(math.Round(float64(s.IntervalDays) * s.EaseFactor))
	}
	next.Repetitions = s.Repetitions + 1

	return next, nil
}

// Passed reports whether the quality counts as a successful recall.
func Passed(q Quality, p Params) bool {
	return q >= p.PassThreshold
}
