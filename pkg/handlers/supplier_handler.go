package handlers

import (
	"net/http"

	"chainmind-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// SupplierHandler runs the AI supplier comparison.
type SupplierHandler struct {
	advisor    *services.AdvisorService
	simulation *services.SimulationService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(advisor *services.AdvisorService, simulation *services.SimulationService) *SupplierHandler {
	return &SupplierHandler{
		advisor:    advisor,
		simulation: simulation,
	}
}

// Compare ranks the supplier roster. Urgency is derived from the current
// stock position, not from the caller. A failed comparison degrades to
// available=false.
func (sh *SupplierHandler) Compare(c *gin.Context) {
	snapshot := sh.simulation.Snapshot()
	urgent := snapshot.Urgent()

	comparison := sh.advisor.CompareSuppliers(c.Request.Context(), snapshot.Suppliers, urgent)
	if comparison == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"available": false,
			"urgent":    urgent,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"available":  true,
		"urgent":     urgent,
		"comparison": comparison,
	})
}
