package services

import (
	"context"
	"math"
	"testing"
	"time"

	types "github.com/yungbote/repeat-backend/internal/domain"
)

func TestStatisticsEmpty(t *testing.T) {
	env := newTestEnv(t)
	stats, err := env.stats.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats.TotalCards != 0 || stats.CardsLearned != 0 || stats.AverageAccuracy != 0 || len(stats.DailyStats) != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestStatisticsAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	deck, _ := env.decks.Create(ctx, "deck")
	a, _ := env.cards.Create(ctx, deck.ID, "a", "a")
	b, _ := env.cards.Create(ctx, deck.ID, "b", "b")
	_, _ = env.cards.Create(ctx, deck.ID, "c", "c")

	// Outside the window once the clock moves forward eight days.
	if _, err := env.reviews.Review(ctx, b.ID, 0, nil); err != nil {
		t.Fatalf("Review: %v", err)
	}
	env.clock.Advance(8 * 24 * time.Hour)

	for _, q := range []int{5, 2} {
		if _, err := env.reviews.Review(ctx, a.ID, q, nil); err != nil {
			t.Fatalf("Review: %v", err)
		}
	}
	env.clock.Advance(24 * time.Hour)
	for _, q := range []int{4, 3} {
		if _, err := env.reviews.Review(ctx, b.ID, q, nil); err != nil {
			t.Fatalf("Review: %v", err)
		}
	}

	stats, err := env.stats.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats.TotalCards != 3 {
		t.Fatalf("TotalCards = %d", stats.TotalCards)
	}
	// a failed last (interval 0); b passed twice (interval 6).
	if stats.CardsLearned != 1 {
		t.Fatalf("CardsLearned = %d", stats.CardsLearned)
	}
	if math.Abs(stats.AverageAccuracy-75) > 1e-9 {
		t.Fatalf("AverageAccuracy = %v", stats.AverageAccuracy)
	}
	want := []types.DailyStat{{Date: "2025-03-18", CardsReviewed: 2}, {Date: "2025-03-19", CardsReviewed: 2}}
	if len(stats.DailyStats) != len(want) {
		t.Fatalf("DailyStats = %+v", stats.DailyStats)
	}
	for i := range want {
		if stats.DailyStats[i] != want[i] {
			t.Fatalf("DailyStats[%d] = %+v, want %+v", i, stats.DailyStats[i], want[i])
		}
	}
}

func TestAccuracyAndDailyHelpers(t *testing.T) {
	day := time.Date(2025, 1, 2, 23, 30, 0, 0, time.FixedZone("x", -2*3600))
	reviews := []*types.Review{
		{Quality: 3, ReviewedAt: day},
		{Quality: 2, ReviewedAt: day.Add(time.Hour)},
	}
	if got := accuracy(reviews); got != 50 {
		t.Fatalf("accuracy = %v", got)
	}
	got := dailyStats(reviews)
	if len(got) != 1 || got[0].Date != "2025-01-03" || got[0].CardsReviewed != 2 {
		t.Fatalf("dailyStats = %+v", got)
	}
}
