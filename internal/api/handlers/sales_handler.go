// backend-go/internal/api/handlers/sales_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

type SalesHandler struct {
	analytics *service.AnalyticsService
}

func NewSalesHandler(analytics *service.AnalyticsService) *SalesHandler {
	return &SalesHandler{analytics: analytics}
}

// Dashboard returns the headline summary for the landing page.
func (h *SalesHandler) Dashboard(c *gin.Context) {
	summary, err := h.analytics.Dashboard(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SalesHandler) YoY(c *gin.Context) {
	points, err := h.analytics.YoY(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute yoy analysis", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, points)
}

func (h *SalesHandler) MoM(c *gin.Context) {
	months, ok := queryIntInRange(c, "months", 24, 2, 60)
	if !ok {
		return
	}

	points, err := h.analytics.MoM(c.Request.Context(), months)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute mom analysis", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, points)
}

func (h *SalesHandler) SKUPerformance(c *gin.Context) {
	perf, err := h.analytics.SKUPerformance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute sku performance", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, perf)
}

func (h *SalesHandler) TopPerformers(c *gin.Context) {
	limit, ok := queryIntInRange(c, "limit", 10, 1, 50)
	if !ok {
		return
	}

	top, err := h.analytics.TopPerformers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute top performers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, top)
}

func (h *SalesHandler) SlowMovers(c *gin.Context) {
	slow, err := h.analytics.SlowMovers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute slow movers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, slow)
}

func (h *SalesHandler) ColourAnalysis(c *gin.Context) {
	colours, err := h.analytics.ColourAnalysis(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute colour analysis", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, colours)
}

func (h *SalesHandler) SeasonalPatterns(c *gin.Context) {
	patterns, err := h.analytics.SeasonalPatterns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute seasonal patterns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, patterns)
}
