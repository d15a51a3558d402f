package scheduler

import (
	"errors"
	"fmt"
)

// ErrInvalidQuality is returned by ParseQuality for ratings outside 0..5.
var ErrInvalidQuality = errors.New("scheduler: invalid quality")

// Quality rates how well a card was recalled, 0 (blackout) to 5 (perfect).
type Quality int

const (
	QualityBlackout Quality = iota
	QualityWrong
	QualityFamiliar
	QualityHard
	QualityGood
	QualityPerfect
)

const (
	MinQuality = QualityBlackout
	MaxQuality = QualityPerfect

	passThreshold = QualityHard
)

// ParseQuality validates a raw rating.
func ParseQuality(v int) (Quality, error) {
	q := Quality(v)
	if q < MinQuality || q > MaxQuality {
		return 0, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidQuality, v, MinQuality, MaxQuality)
	}
	return q, nil
}

// Passed reports a successful recall.
func (q Quality) Passed() bool { return q >= passThreshold }

func (q Quality) String() string {
	switch q {
	case QualityBlackout:
		return "blackout"
	case QualityWrong:
		return "wrong"
	case QualityFamiliar:
		return "familiar"
	case QualityHard:
		return "hard"
	case QualityGood:
		return "good"
	case QualityPerfect:
		return "perfect"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// Outcome is the coarse label used for metrics and statistics.
func (q Quality) Outcome() string {
	if q.Passed() {
		return "passed"
	}
	return "failed"
}

func (q Quality) clamp() Quality {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}
