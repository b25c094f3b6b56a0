package flashcard

import (
	"fmt"
	"math"
	"time"
)

// Transition selects when a new word enters the learning state.
type Transition string

const (
	// TransitionOnView moves a word to learning the first time it is shown.
	TransitionOnView Transition = "view"
	// TransitionOnRating moves a word to learning on its first rating.
	TransitionOnRating Transition = "rating"
)

// Policy holds the tunables of the SM-2 variant.
type Policy struct {
	MinEase     float64
	MaxEase     float64
	InitialEase float64
	EasyBonus   float64
	MaxInterval int
	Transition  Transition
}

// DefaultPolicy returns the standard scheduling constants.
func DefaultPolicy() Policy {
	return Policy{
		MinEase:     1.3,
		MaxEase:     2.5,
		InitialEase: 2.5,
		EasyBonus:   1.3,
		MaxInterval: 36500,
		Transition:  TransitionOnView,
	}
}

// State is the part of a word the interval math reads and writes.
type State struct {
	Interval           int
	EaseFactor         float64
	ConsecutiveCorrect int
}

// ComputeNextState applies one rating to s.
// quality: 0=Again, 1=Hard, 2=Good, 3=Easy
func (p Policy) ComputeNextState(q Quality, s State) (State, error) {
	if !q.IsValid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}

	ef := s.EaseFactor
	if math.IsNaN(ef) {
		ef = p.InitialEase
	}
	switch q {
	case Again:
		ef -= 0.20
	case Hard:
		ef -= 0.05
	default:
		ef += 0.10
	}
	ef = p.clampEase(ef)

	interval := s.Interval
	streak := s.ConsecutiveCorrect
	if q.Lapse() {
		streak = 0
		interval = 1
	} else {
		streak++
		switch streak {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			bonus := 1.0
			if q == Easy {
				bonus = p.EasyBonus
			}
			interval = int(math.Round(float64(interval) * ef * bonus))
		}
	}

	if interval < 1 {
		interval = 1
	}
	if p.MaxInterval > 0 && interval > p.MaxInterval {
		interval = p.MaxInterval
	}

	return State{Interval: interval, EaseFactor: ef, ConsecutiveCorrect: streak}, nil
}

// clampEase keeps ef within [MinEase, MaxEase].
func (p Policy) clampEase(ef float64) float64 {
	return math.Min(p.MaxEase, math.Max(p.MinEase, ef))
}

// ComputeNextState applies one rating using DefaultPolicy.
func ComputeNextState(q Quality, s State) (State, error) {
	return DefaultPolicy().ComputeNextState(q, s)
}

// maxScheduleDays bounds the day offset accepted by NextReviewDate.
const maxScheduleDays = 1 << 20

// NextReviewDate returns now plus round(interval) calendar days.
// A non-finite, negative or absurdly large interval yields now plus one day
// and an error wrapping ErrInvalidInterval; the returned time is always usable.
func NextReviewDate(interval float64, now time.Time) (time.Time, error) {
	if math.IsNaN(interval) || math.IsInf(interval, 0) || interval < 0 || interval > maxScheduleDays {
		return now.AddDate(0, 0, 1), fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	return now.AddDate(0, 0, int(math.Round(interval))), nil
}

// IsDue reports whether a word scheduled at nextReview should be shown at now.
// An unscheduled word is always due.
func IsDue(nextReview *time.Time, now time.Time) bool {
	if nextReview == nil {
		return true
	}
	return !now.Before(*nextReview)
}
