package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/platform/logger"
	"github.com/yungbote/repeat-backend/internal/realtime"
	"github.com/yungbote/repeat-backend/internal/realtime/bus"
	"github.com/yungbote/repeat-backend/internal/services"
)

type Services struct {
	Notifier   services.StudyNotifier
	Deck       services.DeckService
	Card       services.CardService
	Review     services.ReviewService
	Statistics services.StatisticsService
	Settings   services.SettingsService
}

// newEmitter prefers the Redis bus so every instance sees the event; without
// it events go straight to the local hub (or nowhere when hub is nil).
func newEmitter(log *logger.Logger, clients Clients, hub *realtime.SSEHub) realtime.Emitter {
	switch {
	case clients.Bus != nil:
		return &bus.Emitter{Bus: clients.Bus, Log: log}
	case hub != nil:
		return &realtime.HubEmitter{Hub: hub}
	default:
		return realtime.NopEmitter{}
	}
}

func wireServices(db *gorm.DB, log *logger.Logger, clock services.Clock, r Repos, emit realtime.Emitter) Services {
	log.Info("Wiring services...")
	notify := services.NewStudyNotifier(emit)
	return Services{
		Notifier:   notify,
		Deck:       services.NewDeckService(db, log, clock, r.Deck, r.Card, notify),
		Card:       services.NewCardService(db, log, clock, r.Deck, r.Card, r.Settings, notify),
		Review:     services.NewReviewService(db, log, clock, r.Card, r.Review, notify),
		Statistics: services.NewStatisticsService(db, log, clock, r.Card, r.Review),
		Settings:   services.NewSettingsService(db, log, r.Settings, notify),
	}
}
