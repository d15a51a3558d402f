package domain

import (
	"github.com/yungbote/repeat-backend/internal/domain/settings"
	"github.com/yungbote/repeat-backend/internal/domain/study"
)

type Deck = study.Deck
type DeckWithStats = study.DeckWithStats
type DeckCounts = study.DeckCounts
type Card = study.Card
type Review = study.Review
type ReviewResult = study.ReviewResult
type Statistics = study.Statistics
type DailyStat = study.DailyStat

type Settings = settings.Settings

var NewCard = study.NewCard

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&study.Deck{},
		&study.Card{},
		&study.Review{},
		&settings.Settings{},
	}
}
