// Package scheduler implements the SM-2 style review scheduler used for every card.
//
// The scheduler is a pure transition function: it never reads the clock, never
// touches storage and holds no state, so it is safe to call from any goroutine.
// Callers pass "now" explicitly and persist the returned State themselves.
package scheduler

import (
	"math"
	"time"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.5

	// MaxInterval caps the interval (100 years) so repeated successes saturate
	// instead of overflowing.
	MaxInterval = 36500

	easeStepUp   = 0.1
	easeStepDown = 0.2
)

// State is the per-card scheduling state.
type State struct {
	EaseFactor float64    `json:"ease_factor"`
	Interval   int        `json:"interval"`
	NextReview *time.Time `json:"next_review,omitempty"`
}

// NewState returns the state of a card that has never been reviewed.
func NewState() State {
	return State{EaseFactor: DefaultEaseFactor, Interval: 0}
}

// Due reports whether the card should be shown at now.
func (s State) Due(now time.Time) bool {
	return IsDue(s.NextReview, now)
}

// IsDue is true when next is unset or not after now.
func IsDue(next *time.Time, now time.Time) bool {
	return next == nil || !next.After(now)
}

// Next applies one review of quality q at time now and returns the new state.
//
// Failed recall (q < 3) resets the interval to 0 and lowers the ease factor by 0.2
// down to the 1.3 floor. Successful recall grows the interval 0 -> 1 -> 6 -> interval*ease
// (truncated, using the ease factor from before this review) and raises the ease factor
// by 0.1 up to 2.5. The next review is now for a zero interval, otherwise now plus the
// new interval in days, so the first success lands on now + 1 day.
//
// Out-of-range input is normalized rather than rejected: callers are expected to
// validate quality with ParseQuality first.
func Next(current State, q Quality, now time.Time) State {
	s := normalize(current)
	q = q.clamp()

	if !q.Passed() {
		s.Interval = 0
		s.EaseFactor = math.Max(MinEaseFactor, s.EaseFactor-easeStepDown)
	} else {
		s.Interval = nextInterval(s.Interval, s.EaseFactor)
		s.EaseFactor = math.Min(MaxEaseFactor, s.EaseFactor+easeStepUp)
	}

	next := now
	if s.Interval > 0 {
		next = now.AddDate(0, 0, s.Interval)
	}
	s.NextReview = &next
	return s
}

func nextInterval(interval int, ease float64) int {
	switch interval {
	case 0:
		return 1
	case 1:
		return 6
	}
	grown := math.Trunc(float64(interval) * ease)
	if grown >= MaxInterval {
		return MaxInterval
	}
	// ease >= 1.3 and interval >= 2 keep this from shrinking, but never go backwards.
	if int(grown) < interval {
		return interval
	}
	return int(grown)
}

func normalize(s State) State {
	switch {
	case math.IsNaN(s.EaseFactor), math.IsInf(s.EaseFactor, -1):
		s.EaseFactor = MinEaseFactor
	case math.IsInf(s.EaseFactor, 1):
		s.EaseFactor = MaxEaseFactor
	case s.EaseFactor < MinEaseFactor:
		s.EaseFactor = MinEaseFactor
	}
	if s.Interval < 0 {
		s.Interval = 0
	}
	if s.Interval > MaxInterval {
		s.Interval = MaxInterval
	}
	if s.NextReview != nil {
		t := *s.NextReview
		s.NextReview = &t
	}
	return s
}
