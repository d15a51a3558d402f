package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/repeat-backend/internal/http/response"
	"github.com/yungbote/repeat-backend/internal/services"
)

type SettingsHandler struct {
	settings services.SettingsService
}

func NewSettingsHandler(settings services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "get_settings_failed", err)
		return
	}
	response.RespondOK(c, s)
}

// POST, PUT /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req services.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, "update_settings_failed", err)
		return
	}
	response.RespondOK(c, s)
}
