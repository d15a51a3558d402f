package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/repeat-backend/internal/http/response"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
	"github.com/yungbote/repeat-backend/internal/realtime"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub}
}

// GET /api/events/stream?channel=repeat&channel=deck:<id>
// With no channel parameter the client gets the global channel.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	channels := c.QueryArray("channel")
	if len(channels) == 0 {
		channels = []string{realtime.ChannelAll}
	}
	for _, ch := range channels {
		if !realtime.ValidChannel(ch) {
			response.RespondError(c, http.StatusBadRequest, "invalid_channel", errors.New("unknown channel "+strings.TrimSpace(ch)))
			return
		}
	}

	client := h.hub.NewSSEClient()
	for _, ch := range channels {
		h.hub.AddChannel(client, ch)
	}
	m := observability.Current()
	m.SSEClientConnected()
	h.log.Debug("SSE stream open", "client_id", client.ID, "channels", channels)

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
	m.SSEClientDisconnected()
	h.log.Debug("SSE stream closed", "client_id", client.ID)
}
