package handler

import (
	"hrm_records_go/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard 返回总数与按年度、按级别的表彰统计。
func (h *StatsHandler) Dashboard(c *gin.Context) {
	dash, err := h.statsService.Dashboard()
	if err != nil {
		writeServiceError(c, "StatsHandler.Dashboard", err)
		return
	}
	respondOK(c, "Statistics retrieved successfully", dash)
}
