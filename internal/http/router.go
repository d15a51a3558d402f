package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/repeat-backend/internal/http/handlers"
	httpMW "github.com/yungbote/repeat-backend/internal/http/middleware"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type RouterConfig struct {
	Logger  *logger.Logger
	Metrics *observability.Metrics

	// CORSOrigins overrides the default localhost origins when non-empty.
	CORSOrigins []string
	// TracingService is the otel service name; empty disables span middleware.
	TracingService string

	HealthHandler     *httpH.HealthHandler
	DeckHandler       *httpH.DeckHandler
	CardHandler       *httpH.CardHandler
	StatisticsHandler *httpH.StatisticsHandler
	SettingsHandler   *httpH.SettingsHandler
	RealtimeHandler   *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(gin.Recovery())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Decks
		if cfg.DeckHandler != nil {
			api.GET("/decks", cfg.DeckHandler.ListDecks)
			api.POST("/decks", cfg.DeckHandler.CreateDeck)
			api.GET("/decks/:id", cfg.DeckHandler.GetDeck)
			api.DELETE("/decks/:id", cfg.DeckHandler.DeleteDeck)
			api.GET("/decks/:id/cards", cfg.DeckHandler.ListDeckCards)
			api.GET("/decks/:id/due_cards", cfg.DeckHandler.ListDueCards)
		}

		// Cards and reviews
		if cfg.CardHandler != nil {
			api.POST("/cards", cfg.CardHandler.CreateCard)
			api.GET("/cards/:id", cfg.CardHandler.GetCard)
			api.PUT("/cards/:id", cfg.CardHandler.UpdateCard)
			api.DELETE("/cards/:id", cfg.CardHandler.DeleteCard)
			api.POST("/cards/:id/review", cfg.CardHandler.ReviewCard)
			api.GET("/cards/:id/reviews", cfg.CardHandler.ListReviews)
		}

		if cfg.StatisticsHandler != nil {
			api.GET("/statistics", cfg.StatisticsHandler.GetStatistics)
		}

		// Settings accepts both verbs for older clients.
		if cfg.SettingsHandler != nil {
			api.GET("/settings", cfg.SettingsHandler.GetSettings)
			api.POST("/settings", cfg.SettingsHandler.UpdateSettings)
			api.PUT("/settings", cfg.SettingsHandler.UpdateSettings)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/events/stream", cfg.RealtimeHandler.Stream)
		}
	}

	return r
}
