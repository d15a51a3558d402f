package study

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/repeat-backend/internal/data/repos/testutil"
	types "github.com/yungbote/repeat-backend/internal/domain"
)

func TestReviewRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewReviewRepo(db, testutil.Logger(t))

	deck := testutil.SeedDeck(t, ctx, tx, "deck")
	card := testutil.SeedCard(t, ctx, tx, deck.ID, "f", "b")
	other := testutil.SeedCard(t, ctx, tx, deck.ID, "f2", "b2")

	_ = testutil.SeedReview(t, ctx, tx, card.ID, 4, t0.AddDate(0, 0, -10))
	r := &types.Review{
		CardID:       card.ID,
		Quality:      5,
		ReviewedAt:   t0,
		EaseFactor:   2.5,
		IntervalDays: 6,
		NextReview:   testutil.PtrTime(t0.AddDate(0, 0, 6)),
		Metadata:     datatypes.JSON([]byte(`{"source":"test"}`)),
	}
	if _, err := repo.Create(ctx, tx, []*types.Review{r}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = testutil.SeedReview(t, ctx, tx, other.ID, 1, t0.Add(-time.Hour))

	since, err := repo.ListSince(ctx, tx, t0.AddDate(0, 0, -6))
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(since) != 2 || since[0].CardID != other.ID || since[1].ID != r.ID {
		t.Fatalf("ListSince returned %d rows in unexpected order", len(since))
	}

	hist, err := repo.ListByCardID(ctx, tx, card.ID, 0)
	if err != nil || len(hist) != 2 || hist[0].ID != r.ID {
		t.Fatalf("ListByCardID: err=%v len=%d", err, len(hist))
	}
	if hist, err := repo.ListByCardID(ctx, tx, card.ID, 1); err != nil || len(hist) != 1 {
		t.Fatalf("ListByCardID limit: err=%v len=%d", err, len(hist))
	}
}
