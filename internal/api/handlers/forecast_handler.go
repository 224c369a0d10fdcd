// backend-go/internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

// defaultHorizonDays is used by endpoints that take no horizon parameter.
const defaultHorizonDays = 60

type ForecastHandler struct {
	forecast *service.ForecastService
}

func NewForecastHandler(forecast *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecast: forecast}
}

// Forecast returns the day-by-day demand projection for every SKU.
func (h *ForecastHandler) Forecast(c *gin.Context) {
	horizon, ok := queryIntInRange(c, "horizon_days", defaultHorizonDays, 7, 120)
	if !ok {
		return
	}

	points, err := h.forecast.Forecast(c.Request.Context(), horizon, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run forecast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, points)
}

func (h *ForecastHandler) Summary(c *gin.Context) {
	horizon, ok := queryIntInRange(c, "horizon_days", defaultHorizonDays, 7, 120)
	if !ok {
		return
	}

	summaries, err := h.forecast.Summary(c.Request.Context(), horizon, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build forecast summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// BySKU narrows the forecast to one SKU code. Unknown codes yield an empty
// list rather than a 404, matching the exploratory frontend.
func (h *ForecastHandler) BySKU(c *gin.Context) {
	horizon, ok := queryIntInRange(c, "horizon_days", defaultHorizonDays, 7, 120)
	if !ok {
		return
	}

	points, err := h.forecast.ForecastSKU(c.Request.Context(), c.Param("sku_code"), horizon, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run forecast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, points)
}

func (h *ForecastHandler) WhatIf(c *gin.Context) {
	var req domain.WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.forecast.WhatIf(c.Request.Context(), req, defaultHorizonDays, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run scenario", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
