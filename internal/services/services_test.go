package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/repeat-backend/internal/data/repos"
	"github.com/yungbote/repeat-backend/internal/data/repos/testutil"
	"github.com/yungbote/repeat-backend/internal/realtime"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type recordingEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (e *recordingEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	e.mu.Lock()
	e.msgs = append(e.msgs, msg)
	e.mu.Unlock()
}

func (e *recordingEmitter) events(channel string) []realtime.SSEEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []realtime.SSEEvent
	for _, m := range e.msgs {
		if m.Channel == channel {
			out = append(out, m.Event)
		}
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	clock    *fakeClock
	emitter  *recordingEmitter
	decks    DeckService
	cards    CardService
	reviews  ReviewService
	stats    StatisticsService
	settings SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	clock := &fakeClock{now: t0}
	emitter := &recordingEmitter{}
	notify := NewStudyNotifier(emitter)

	deckRepo := repos.NewDeckRepo(db, log)
	cardRepo := repos.NewCardRepo(db, log)
	reviewRepo := repos.NewReviewRepo(db, log)
	settingsRepo := repos.NewSettingsRepo(db, log)

	return &testEnv{
		clock:    clock,
		emitter:  emitter,
		decks:    NewDeckService(db, log, clock.Now, deckRepo, cardRepo, notify),
		cards:    NewCardService(db, log, clock.Now, deckRepo, cardRepo, settingsRepo, notify),
		reviews:  NewReviewService(db, log, clock.Now, cardRepo, reviewRepo, notify),
		stats:    NewStatisticsService(db, log, clock.Now, cardRepo, reviewRepo),
		settings: NewSettingsService(db, log, settingsRepo, notify),
	}
}
