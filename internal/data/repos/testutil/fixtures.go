package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
	types "github.com/yungbote/repeat-backend/internal/domain"
)

func SeedDeck(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Deck {
	tb.Helper()
	d := &types.Deck{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed deck: %v", err)
	}
	return d
}

func SeedCard(tb testing.TB, ctx context.Context, tx *gorm.DB, deckID uuid.UUID, front, back string) *types.Card {
	tb.Helper()
	c := types.NewCard(deckID, front, back)
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed card: %v", err)
	}
	return c
}

// SeedScheduledCard seeds a card that already has a schedule.
func SeedScheduledCard(tb testing.TB, ctx context.Context, tx *gorm.DB, deckID uuid.UUID, ease float64, interval int, next time.Time) *types.Card {
	tb.Helper()
	c := types.NewCard(deckID, "front", "back")
	c.EaseFactor = ease
	c.IntervalDays = interval
	n := next.UTC()
	c.NextReview = &n
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed scheduled card: %v", err)
	}
	return c
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, cardID uuid.UUID, quality int, at time.Time) *types.Review {
	tb.Helper()
	r := &types.Review{
		ID:           uuid.New(),
		CardID:       cardID,
		Quality:      quality,
		ReviewedAt:   at.UTC(),
		EaseFactor:   2.5,
		IntervalDays: 1,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}

func PtrTime(t time.Time) *time.Time {
	return &t
}
