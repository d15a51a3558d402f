package app

import (
	httpH "github.com/yungbote/repeat-backend/internal/http/handlers"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
	"github.com/yungbote/repeat-backend/internal/realtime"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Deck       *httpH.DeckHandler
	Card       *httpH.CardHandler
	Statistics *httpH.StatisticsHandler
	Settings   *httpH.SettingsHandler
	Realtime   *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, s Services, ping httpH.Pinger, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(ping),
		Deck:       httpH.NewDeckHandler(s.Deck, s.Card),
		Card:       httpH.NewCardHandler(s.Card, s.Review),
		Statistics: httpH.NewStatisticsHandler(s.Statistics),
		Settings:   httpH.NewSettingsHandler(s.Settings),
		Realtime:   httpH.NewRealtimeHandler(log, hub),
	}
}
