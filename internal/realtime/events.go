package realtime

import (
	"strings"

	"github.com/google/uuid"
)

type SSEEvent string

const (
	SSEEventDeckCreated     SSEEvent = "DeckCreated"
	SSEEventDeckDeleted     SSEEvent = "DeckDeleted"
	SSEEventCardCreated     SSEEvent = "CardCreated"
	SSEEventCardUpdated     SSEEvent = "CardUpdated"
	SSEEventCardDeleted     SSEEvent = "CardDeleted"
	SSEEventReviewRecorded  SSEEvent = "ReviewRecorded"
	SSEEventSettingsUpdated SSEEvent = "SettingsUpdated"
)

// ChannelAll carries every event.
const ChannelAll = "repeat"

const deckChannelPrefix = "deck:"

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

func DeckChannel(deckID uuid.UUID) string {
	return deckChannelPrefix + deckID.String()
}

// ValidChannel reports whether a client may subscribe to name.
func ValidChannel(name string) bool {
	name = strings.TrimSpace(name)
	if name == ChannelAll {
		return true
	}
	if !strings.HasPrefix(name, deckChannelPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(name, deckChannelPrefix))
	return err == nil
}
