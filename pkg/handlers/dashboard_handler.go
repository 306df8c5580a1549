package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"chainmind-api/pkg/models"
	"chainmind-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the live supply-chain state and its derived
// views.
type DashboardHandler struct {
	simulation *services.SimulationService
	advisor    *services.AdvisorService
	reports    *services.ReportService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(simulation *services.SimulationService, advisor *services.AdvisorService, reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{
		simulation: simulation,
		advisor:    advisor,
		reports:    reports,
	}
}

// GetState returns the full snapshot plus the activity feed.
func (dh *DashboardHandler) GetState(c *gin.Context) {
	snapshot := dh.simulation.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": snapshot,
		"urgent":   snapshot.Urgent(),
		"activity": dh.simulation.ActivityLog(),
	})
}

// GetActivity returns the activity feed, newest first.
func (dh *DashboardHandler) GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"activity": dh.simulation.ActivityLog(),
	})
}

// TriggerTick advances the simulation one normal step on demand.
func (dh *DashboardHandler) TriggerTick(c *gin.Context) {
	entry := dh.simulation.Tick()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entry":   entry,
	})
}

// TriggerIncident advances the simulation with a manual incident.
func (dh *DashboardHandler) TriggerIncident(c *gin.Context) {
	var req models.IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An incident label is required: " + err.Error()})
		return
	}

	entry := dh.simulation.TriggerIncident(req.Label)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entry":   entry,
	})
}

// GetSummary asks the advisor for the structured system summary. A failed
// call degrades to available=false; the dashboard renders placeholders.
func (dh *DashboardHandler) GetSummary(c *gin.Context) {
	snapshot := dh.simulation.Snapshot()
	summary := dh.advisor.SystemSummary(c.Request.Context(), snapshot)
	if summary == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"available": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"available": true,
		"summary":   summary,
	})
}

// ExportReport streams the snapshot as an Excel workbook.
func (dh *DashboardHandler) ExportReport(c *gin.Context) {
	workbook, err := dh.reports.BuildWorkbook(dh.simulation.Snapshot(), dh.simulation.ActivityLog())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build the report workbook."})
		return
	}
	defer workbook.Close()

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write the report workbook."})
		return
	}

	fileName := fmt.Sprintf("chainmind-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
