package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/repeat-backend/internal/app"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "cards.db")
	core, err := app.NewCore(context.Background(), logger.Nop(), cfg, nil)
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	t.Cleanup(core.Close)
	out := &bytes.Buffer{}
	return &Context{Services: core.Services, Out: out}, out
}

func TestDeckAndCardCommands(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&DeckCreateCmd{Name: "French"}).Run(ctx); err != nil {
		t.Fatalf("deck create: %v", err)
	}
	decks, err := ctx.Services.Deck.List(context.Background())
	if err != nil || len(decks) != 1 {
		t.Fatalf("expected one deck, got %d (%v)", len(decks), err)
	}
	deckID := decks[0].ID.String()

	if err := (&CardAddCmd{Deck: deckID, Front: "chat", Back: "cat"}).Run(ctx); err != nil {
		t.Fatalf("card add: %v", err)
	}

	out.Reset()
	if err := (&DeckListCmd{}).Run(ctx); err != nil {
		t.Fatalf("deck list: %v", err)
	}
	if !strings.Contains(out.String(), "French") {
		t.Fatalf("deck list output missing deck: %q", out.String())
	}

	out.Reset()
	if err := (&DueCmd{Deck: deckID}).Run(ctx); err != nil {
		t.Fatalf("due: %v", err)
	}
	if !strings.Contains(out.String(), "chat") || !strings.Contains(out.String(), "new") {
		t.Fatalf("due output: %q", out.String())
	}

	if err := (&CardListCmd{Deck: "not-a-uuid"}).Run(ctx); err == nil {
		t.Fatal("expected invalid id error")
	}

	if err := (&DeckDeleteCmd{ID: deckID}).Run(ctx); err != nil {
		t.Fatalf("deck delete: %v", err)
	}
	out.Reset()
	if err := (&DeckListCmd{}).Run(ctx); err != nil {
		t.Fatalf("deck list: %v", err)
	}
	if !strings.Contains(out.String(), "(none)") {
		t.Fatalf("expected empty list, got %q", out.String())
	}
}

func TestReviewAndStatsCommands(t *testing.T) {
	ctx, out := newTestContext(t)
	bg := context.Background()
	deck, err := ctx.Services.Deck.Create(bg, "Go")
	if err != nil {
		t.Fatal(err)
	}
	card, err := ctx.Services.Card.Create(bg, deck.ID, "defer", "runs at return")
	if err != nil {
		t.Fatal(err)
	}

	if err := (&ReviewCmd{Card: card.ID.String(), Quality: 5}).Run(ctx); err != nil {
		t.Fatalf("review: %v", err)
	}
	if !strings.Contains(out.String(), "interval 1 day") {
		t.Fatalf("review output: %q", out.String())
	}
	if err := (&ReviewCmd{Card: card.ID.String(), Quality: 9}).Run(ctx); err == nil {
		t.Fatal("expected quality error")
	}

	out.Reset()
	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out.String(), "Total cards:   1") || !strings.Contains(out.String(), "100.0%") {
		t.Fatalf("stats output: %q", out.String())
	}
}

func TestSettingsCommand(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings show: %v", err)
	}
	if !strings.Contains(out.String(), "20") {
		t.Fatalf("expected default cards per day, got %q", out.String())
	}

	out.Reset()
	if err := (&SettingsCmd{CardsPerDay: 35, DarkMode: "on"}).Run(ctx); err != nil {
		t.Fatalf("settings set: %v", err)
	}
	s, err := ctx.Services.Settings.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.CardsPerDay != 35 || !s.DarkMode || !s.NotificationsEnabled {
		t.Fatalf("unexpected settings %+v", s)
	}

	if err := (&SettingsCmd{CardsPerDay: -4}).Run(ctx); err == nil {
		t.Fatal("expected validation error")
	}
}
