package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/repeat-backend/internal/platform/apierr"
	"github.com/yungbote/repeat-backend/internal/realtime"
)

func TestSettingsService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s, err := env.settings.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !s.NotificationsEnabled || s.CardsPerDay != 20 || s.DarkMode {
		t.Fatalf("defaults = %+v", s)
	}

	for _, bad := range []int{0, -5, 1001} {
		v := bad
		if _, err := env.settings.Update(ctx, SettingsUpdate{CardsPerDay: &v}); !errors.Is(err, apierr.ErrInvalidArgument) {
			t.Fatalf("cards_per_day %d: err = %v", bad, err)
		}
	}

	dark := true
	updated, err := env.settings.Update(ctx, SettingsUpdate{DarkMode: &dark})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.DarkMode || updated.CardsPerDay != 20 || !updated.NotificationsEnabled {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}

	off := false
	n := 1000
	if _, err := env.settings.Update(ctx, SettingsUpdate{NotificationsEnabled: &off, CardsPerDay: &n}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	s, _ = env.settings.Get(ctx)
	if s.NotificationsEnabled || s.CardsPerDay != 1000 || !s.DarkMode {
		t.Fatalf("settings = %+v", s)
	}

	if ev := env.emitter.events(realtime.ChannelAll); len(ev) != 2 || ev[0] != realtime.SSEEventSettingsUpdated {
		t.Fatalf("events = %v", ev)
	}
}
