package settings

import (
	"context"
	"testing"

	"github.com/yungbote/repeat-backend/internal/data/repos/testutil"
)

func TestSettingsRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSettingsRepo(db, testutil.Logger(t))

	s, err := repo.GetOrCreate(ctx, tx)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !s.NotificationsEnabled || s.CardsPerDay != 20 || s.DarkMode {
		t.Fatalf("defaults = %+v", s)
	}

	again, err := repo.GetOrCreate(ctx, tx)
	if err != nil || again.ID != s.ID {
		t.Fatalf("second GetOrCreate created a new row: err=%v", err)
	}

	s.NotificationsEnabled = false
	s.CardsPerDay = 50
	s.DarkMode = true
	if err := repo.Update(ctx, tx, s); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetOrCreate(ctx, tx)
	if err != nil {
		t.Fatalf("GetOrCreate after update: %v", err)
	}
	if got.NotificationsEnabled || got.CardsPerDay != 50 || !got.DarkMode {
		t.Fatalf("update not persisted: %+v", got)
	}
}
