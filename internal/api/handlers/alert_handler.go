// backend-go/internal/api/handlers/alert_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

type AlertHandler struct {
	advisor *service.AdvisorService
}

func NewAlertHandler(advisor *service.AdvisorService) *AlertHandler {
	return &AlertHandler{advisor: advisor}
}

// List returns all active alerts ordered by priority.
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.advisor.Alerts(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate alerts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) Critical(c *gin.Context) {
	alerts, err := h.advisor.CriticalAlerts(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate alerts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) Count(c *gin.Context) {
	counts, err := h.advisor.AlertCounts(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate alerts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, counts)
}
