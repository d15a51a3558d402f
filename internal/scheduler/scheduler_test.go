package scheduler

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

const eps = 1e-9

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func assertTime(t *testing.T, name string, got *time.Time, want time.Time) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %v", name, want)
	}
	if !got.Equal(want) {
		t.Fatalf("%s = %v, want %v", name, *got, want)
	}
}

func days(n int) time.Time { return t0.AddDate(0, 0, n) }

func TestNewState(t *testing.T) {
	s := NewState()
	assertFloat(t, "EaseFactor", s.EaseFactor, 2.5)
	if s.Interval != 0 {
		t.Fatalf("Interval = %d, want 0", s.Interval)
	}
	if s.NextReview != nil {
		t.Fatalf("NextReview = %v, want nil", s.NextReview)
	}
	if !s.Due(t0) {
		t.Fatal("new card should be due")
	}
}

func TestFirstSuccessSchedulesOneDayOut(t *testing.T) {
	s := Next(NewState(), QualityGood, t0)
	if s.Interval != 1 {
		t.Fatalf("Interval = %d, want 1", s.Interval)
	}
	assertFloat(t, "EaseFactor", s.EaseFactor, 2.5)
	assertTime(t, "NextReview", s.NextReview, days(1))
	if s.Due(t0) {
		t.Fatal("card reviewed successfully should not be due immediately")
	}
	if !s.Due(days(1)) {
		t.Fatal("card should be due exactly one day later")
	}
}

func TestSuccessProgression(t *testing.T) {
	s := NewState()
	s.EaseFactor = 2.0

	s = Next(s, QualityGood, t0)
	if s.Interval != 1 {
		t.Fatalf("first success Interval = %d, want 1", s.Interval)
	}
	assertFloat(t, "EaseFactor after 1", s.EaseFactor, 2.1)

	s = Next(s, QualityGood, days(1))
	if s.Interval != 6 {
		t.Fatalf("second success Interval = %d, want 6", s.Interval)
	}
	assertFloat(t, "EaseFactor after 2", s.EaseFactor, 2.2)
	easeAfterSecond := s.EaseFactor

	s = Next(s, QualityGood, days(7))
	want := int(math.Trunc(6 * easeAfterSecond))
	if s.Interval != want {
		t.Fatalf("third success Interval = %d, want %d", s.Interval, want)
	}
	assertTime(t, "NextReview", s.NextReview, days(7+want))
}

func TestSuccessFromDefaultReachesFifteenDays(t *testing.T) {
	s := NewState()
	for i := 0; i < 3; i++ {
		s = Next(s, QualityPerfect, t0)
	}
	if s.Interval != 15 {
		t.Fatalf("Interval = %d, want 15", s.Interval)
	}
	assertFloat(t, "EaseFactor", s.EaseFactor, 2.5)
}

func TestIntervalTruncates(t *testing.T) {
	s := Next(State{EaseFactor: 1.3, Interval: 7}, QualityHard, t0)
	// 7 * 1.3 = 9.1
	if s.Interval != 9 {
		t.Fatalf("Interval = %d, want 9", s.Interval)
	}
	assertFloat(t, "EaseFactor", s.EaseFactor, 1.4)
}

func TestFailureResetsInterval(t *testing.T) {
	cases := []struct {
		name  string
		state State
		q     Quality
		ease  float64
	}{
		{"blackout from long interval", State{EaseFactor: 2.5, Interval: 120}, QualityBlackout, 2.3},
		{"wrong from new card", NewState(), QualityWrong, 2.3},
		{"familiar from interval one", State{EaseFactor: 1.9, Interval: 1}, QualityFamiliar, 1.7},
		{"floor already saturated", State{EaseFactor: 1.3, Interval: 10}, QualityBlackout, 1.3},
		{"floor clamps partial step", State{EaseFactor: 1.4, Interval: 3}, QualityWrong, 1.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Next(tc.state, tc.q, t0)
			if s.Interval != 0 {
				t.Fatalf("Interval = %d, want 0", s.Interval)
			}
			assertFloat(t, "EaseFactor", s.EaseFactor, tc.ease)
			assertTime(t, "NextReview", s.NextReview, t0)
			if !s.Due(t0) {
				t.Fatal("failed card should be due immediately")
			}
		})
	}
}

func TestSuccessCapsEaseFactor(t *testing.T) {
	s := Next(State{EaseFactor: 2.45, Interval: 6}, QualityPerfect, t0)
	assertFloat(t, "EaseFactor", s.EaseFactor, 2.5)

	// Imported states above the cap are pulled back down on success.
	s = Next(State{EaseFactor: 3.0, Interval: 6}, QualityPerfect, t0)
	if s.Interval != 18 {
		t.Fatalf("Interval = %d, want 18", s.Interval)
	}
	assertFloat(t, "EaseFactor", s.EaseFactor, 2.5)
}

func TestIntervalSaturates(t *testing.T) {
	s := State{EaseFactor: 2.5, Interval: 20000}
	s = Next(s, QualityPerfect, t0)
	if s.Interval != MaxInterval {
		t.Fatalf("Interval = %d, want %d", s.Interval, MaxInterval)
	}
	s = Next(s, QualityPerfect, t0)
	if s.Interval != MaxInterval {
		t.Fatalf("Interval after saturation = %d, want %d", s.Interval, MaxInterval)
	}
	assertTime(t, "NextReview", s.NextReview, t0.AddDate(0, 0, MaxInterval))
}

func TestNormalizesBrokenInput(t *testing.T) {
	cases := []struct {
		name     string
		state    State
		q        Quality
		interval int
		ease     float64
	}{
		{"nan ease", State{EaseFactor: math.NaN(), Interval: 6}, QualityGood, 7, 1.4},
		{"positive inf ease", State{EaseFactor: math.Inf(1), Interval: 6}, QualityGood, 15, 2.5},
		{"negative inf ease", State{EaseFactor: math.Inf(-1), Interval: 0}, QualityWrong, 0, 1.3},
		{"ease below floor", State{EaseFactor: 0.5, Interval: 0}, QualityGood, 1, 1.4},
		{"negative interval", State{EaseFactor: 2.5, Interval: -4}, QualityGood, 1, 2.5},
		{"quality above scale", State{EaseFactor: 2.0, Interval: 1}, Quality(9), 6, 2.1},
		{"quality below scale", State{EaseFactor: 2.0, Interval: 6}, Quality(-3), 0, 1.8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Next(tc.state, tc.q, t0)
			if s.Interval != tc.interval {
				t.Fatalf("Interval = %d, want %d", s.Interval, tc.interval)
			}
			assertFloat(t, "EaseFactor", s.EaseFactor, tc.ease)
		})
	}
}

func TestNextDoesNotAliasInput(t *testing.T) {
	prev := t0.Add(-time.Hour)
	in := State{EaseFactor: 2.5, Interval: 1, NextReview: &prev}
	out := Next(in, QualityGood, t0)
	if out.NextReview == in.NextReview {
		t.Fatal("NextReview pointer shared between input and output")
	}
	if !in.NextReview.Equal(prev) {
		t.Fatalf("input NextReview mutated: %v", *in.NextReview)
	}
}

func TestDeterministic(t *testing.T) {
	in := State{EaseFactor: 1.87, Interval: 13}
	for q := MinQuality; q <= MaxQuality; q++ {
		a := Next(in, q, t0)
		b := Next(in, q, t0)
		if math.Float64bits(a.EaseFactor) != math.Float64bits(b.EaseFactor) ||
			a.Interval != b.Interval || !a.NextReview.Equal(*b.NextReview) {
			t.Fatalf("q=%d: %+v != %+v", q, a, b)
		}
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for seq := 0; seq < 200; seq++ {
		s := NewState()
		now := t0
		for step := 0; step < 300; step++ {
			q := Quality(rng.Intn(6))
			prev := s
			s = Next(s, q, now)

			if s.EaseFactor < MinEaseFactor-eps {
				t.Fatalf("seq %d step %d: EaseFactor %v below floor", seq, step, s.EaseFactor)
			}
			if s.Interval < 0 || s.Interval > MaxInterval {
				t.Fatalf("seq %d step %d: Interval %d out of range", seq, step, s.Interval)
			}
			if s.NextReview == nil || s.NextReview.Before(now) {
				t.Fatalf("seq %d step %d: NextReview %v before review time %v", seq, step, s.NextReview, now)
			}
			if q.Passed() {
				if s.EaseFactor > MaxEaseFactor+eps {
					t.Fatalf("seq %d step %d: EaseFactor %v above cap after success", seq, step, s.EaseFactor)
				}
				if s.Interval < 1 || (prev.Interval > 0 && s.Interval < prev.Interval) {
					t.Fatalf("seq %d step %d: Interval %d shrank from %d on success", seq, step, s.Interval, prev.Interval)
				}
			} else {
				if s.Interval != 0 || !s.NextReview.Equal(now) {
					t.Fatalf("seq %d step %d: failure did not reset: %+v", seq, step, s)
				}
			}
			now = now.Add(time.Duration(rng.Intn(72)) * time.Hour)
		}
	}
}

func TestConcurrentCallsAreIndependent(t *testing.T) {
	in := State{EaseFactor: 2.1, Interval: 6}
	want := Next(in, QualityGood, t0)

	var wg sync.WaitGroup
	errs := make(chan State, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := Next(in, QualityGood, t0)
			if got.Interval != want.Interval || got.EaseFactor != want.EaseFactor || !got.NextReview.Equal(*want.NextReview) {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent result %+v differs from %+v", got, want)
	}
}

func TestIsDue(t *testing.T) {
	past := t0.Add(-time.Second)
	future := t0.Add(time.Second)
	cases := []struct {
		name string
		next *time.Time
		want bool
	}{
		{"never reviewed", nil, true},
		{"in the past", &past, true},
		{"exactly now", &t0, true},
		{"in the future", &future, false},
	}
	for _, tc := range cases {
		if got := IsDue(tc.next, t0); got != tc.want {
			t.Errorf("%s: IsDue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseQuality(t *testing.T) {
	for v := 0; v <= 5; v++ {
		q, err := ParseQuality(v)
		if err != nil {
			t.Fatalf("ParseQuality(%d): %v", v, err)
		}
		if int(q) != v {
			t.Fatalf("ParseQuality(%d) = %d", v, q)
		}
	}
	for _, v := range []int{-1, 6, 100} {
		if _, err := ParseQuality(v); !errors.Is(err, ErrInvalidQuality) {
			t.Fatalf("ParseQuality(%d) err = %v, want ErrInvalidQuality", v, err)
		}
	}
}

func TestQualityOutcome(t *testing.T) {
	if QualityFamiliar.Passed() || QualityFamiliar.Outcome() != "failed" {
		t.Fatal("quality 2 should fail")
	}
	if !QualityHard.Passed() || QualityHard.Outcome() != "passed" {
		t.Fatal("quality 3 should pass")
	}
	if QualityPerfect.String() != "perfect" {
		t.Fatalf("String = %q", QualityPerfect.String())
	}
}
