package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/repeat-backend/internal/http/response"
	"github.com/yungbote/repeat-backend/internal/services"
)

type StatisticsHandler struct {
	stats services.StatisticsService
}

func NewStatisticsHandler(stats services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

// GET /api/statistics
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "statistics_failed", err)
		return
	}
	response.RespondOK(c, stats)
}
