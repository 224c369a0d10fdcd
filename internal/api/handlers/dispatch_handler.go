// backend-go/internal/api/handlers/dispatch_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

// defaultLeadTimeDays covers OEM-to-dealer transit for endpoints that take
// no lead-time parameter.
const defaultLeadTimeDays = 21

type DispatchHandler struct {
	dispatch *service.DispatchService
}

func NewDispatchHandler(dispatch *service.DispatchService) *DispatchHandler {
	return &DispatchHandler{dispatch: dispatch}
}

func (h *DispatchHandler) Recommendations(c *gin.Context) {
	leadTime, ok := queryIntInRange(c, "lead_time_days", defaultLeadTimeDays, 7, 60)
	if !ok {
		return
	}

	recs, err := h.dispatch.Recommendations(c.Request.Context(), leadTime, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dispatch plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recs)
}

func (h *DispatchHandler) WorkingCapital(c *gin.Context) {
	summary, err := h.dispatch.WorkingCapital(c.Request.Context(), defaultLeadTimeDays, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build working capital summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export streams the dispatch plan as a dated CSV download.
func (h *DispatchHandler) Export(c *gin.Context) {
	leadTime, ok := queryIntInRange(c, "lead_time_days", defaultLeadTimeDays, 7, 60)
	if !ok {
		return
	}

	filename, data, err := h.dispatch.ExportCSV(c.Request.Context(), leadTime, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export dispatch plan", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *DispatchHandler) RiskScores(c *gin.Context) {
	scores, err := h.dispatch.RiskScores(c.Request.Context(), defaultLeadTimeDays, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute risk scores", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scores)
}
