package app

import (
	apphttp "github.com/yungbote/repeat-backend/internal/http"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, h Handlers, m *observability.Metrics) *apphttp.Server {
	rc := apphttp.RouterConfig{
		Logger:            log.With("component", "http"),
		Metrics:           m,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		HealthHandler:     h.Health,
		DeckHandler:       h.Deck,
		CardHandler:       h.Card,
		StatisticsHandler: h.Statistics,
		SettingsHandler:   h.Settings,
		RealtimeHandler:   h.Realtime,
	}
	if cfg.Otel.Enabled {
		rc.TracingService = cfg.Otel.ServiceName
	}
	return apphttp.NewServer(cfg.Addr(), rc)
}
