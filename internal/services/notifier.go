package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/realtime"
)

// StudyNotifier turns committed changes into realtime events. Deck-scoped
// events go to the deck channel as well as the global one.
type StudyNotifier interface {
	DeckCreated(ctx context.Context, deck *types.Deck)
	DeckDeleted(ctx context.Context, deckID uuid.UUID)
	CardCreated(ctx context.Context, card *types.Card)
	CardUpdated(ctx context.Context, card *types.Card)
	CardDeleted(ctx context.Context, card *types.Card)
	ReviewRecorded(ctx context.Context, result *types.ReviewResult)
	SettingsUpdated(ctx context.Context, s *types.Settings)
}

type studyNotifier struct {
	emit realtime.Emitter
}

func NewStudyNotifier(emit realtime.Emitter) StudyNotifier {
	return &studyNotifier{emit: emit}
}

func (n *studyNotifier) send(ctx context.Context, deckID uuid.UUID, event realtime.SSEEvent, data any) {
	if n == nil || n.emit == nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{Channel: realtime.ChannelAll, Event: event, Data: data})
	if deckID != uuid.Nil {
		n.emit.Emit(ctx, realtime.SSEMessage{Channel: realtime.DeckChannel(deckID), Event: event, Data: data})
	}
}

func (n *studyNotifier) DeckCreated(ctx context.Context, deck *types.Deck) {
	if deck == nil {
		return
	}
	n.send(ctx, uuid.Nil, realtime.SSEEventDeckCreated, map[string]any{"deck": deck})
}

func (n *studyNotifier) DeckDeleted(ctx context.Context, deckID uuid.UUID) {
	n.send(ctx, deckID, realtime.SSEEventDeckDeleted, map[string]any{"deck_id": deckID})
}

func (n *studyNotifier) CardCreated(ctx context.Context, card *types.Card) {
	if card == nil {
		return
	}
	n.send(ctx, card.DeckID, realtime.SSEEventCardCreated, map[string]any{"card": card})
}

func (n *studyNotifier) CardUpdated(ctx context.Context, card *types.Card) {
	if card == nil {
		return
	}
	n.send(ctx, card.DeckID, realtime.SSEEventCardUpdated, map[string]any{"card": card})
}

func (n *studyNotifier) CardDeleted(ctx context.Context, card *types.Card) {
	if card == nil {
		return
	}
	n.send(ctx, card.DeckID, realtime.SSEEventCardDeleted, map[string]any{"card_id": card.ID, "deck_id": card.DeckID})
}

func (n *studyNotifier) ReviewRecorded(ctx context.Context, result *types.ReviewResult) {
	if result == nil || result.Card == nil {
		return
	}
	n.send(ctx, result.Card.DeckID, realtime.SSEEventReviewRecorded, result)
}

func (n *studyNotifier) SettingsUpdated(ctx context.Context, s *types.Settings) {
	if s == nil {
		return
	}
	n.send(ctx, uuid.Nil, realtime.SSEEventSettingsUpdated, map[string]any{"settings": s})
}
