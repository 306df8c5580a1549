package handlers

import (
	"net/http"
	"strconv"

	"chainmind-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// MonitoringHandler exposes the in-memory request log.
type MonitoringHandler struct {
	monitoring *services.MonitoringService
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(monitoring *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{
		monitoring: monitoring,
	}
}

// GetLogs returns recent request log entries, newest first.
func (mh *MonitoringHandler) GetLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"logs":    mh.monitoring.RecentLogs(limit),
	})
}
