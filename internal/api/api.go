// backend-go/internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/api/handlers"
	"github.com/dealersight/wheeler-intel/backend-go/internal/api/middleware"
	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

const apiVersion = "1.0.0"

// Services bundles everything the router serves.
type Services struct {
	Dataset   *service.DatasetService
	Stock     *service.StockService
	Analytics *service.AnalyticsService
	Forecast  *service.ForecastService
	Dispatch  *service.DispatchService
	Advisor   *service.AdvisorService
}

// AppInfo feeds the health and root endpoints.
type AppInfo struct {
	Name string
	Env  string
}

func NewRouter(services *Services, app AppInfo, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": app.Name,
			"health":  "/api/health",
		})
	})

	apiGroup := router.Group("/api")

	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": apiVersion,
			"app":     app.Name,
			"env":     app.Env,
		})
	})

	if services == nil {
		return router
	}

	if services.Analytics != nil {
		salesHandler := handlers.NewSalesHandler(services.Analytics)
		salesGroup := apiGroup.Group("/sales")
		{
			salesGroup.GET("/dashboard", salesHandler.Dashboard)
			salesGroup.GET("/yoy", salesHandler.YoY)
			salesGroup.GET("/mom", salesHandler.MoM)
			salesGroup.GET("/sku-performance", salesHandler.SKUPerformance)
			salesGroup.GET("/top-performers", salesHandler.TopPerformers)
			salesGroup.GET("/slow-movers", salesHandler.SlowMovers)
			salesGroup.GET("/colour-analysis", salesHandler.ColourAnalysis)
			salesGroup.GET("/seasonal-patterns", salesHandler.SeasonalPatterns)
		}
	}

	if services.Forecast != nil {
		forecastHandler := handlers.NewForecastHandler(services.Forecast)
		forecastGroup := apiGroup.Group("/forecast")
		{
			forecastGroup.GET("", forecastHandler.Forecast)
			forecastGroup.GET("/summary", forecastHandler.Summary)
			forecastGroup.GET("/sku/:sku_code", forecastHandler.BySKU)
			forecastGroup.POST("/what-if", forecastHandler.WhatIf)
		}
	}

	if services.Dispatch != nil {
		dispatchHandler := handlers.NewDispatchHandler(services.Dispatch)
		dispatchGroup := apiGroup.Group("/dispatch")
		{
			dispatchGroup.GET("/recommendations", dispatchHandler.Recommendations)
			dispatchGroup.GET("/working-capital", dispatchHandler.WorkingCapital)
			dispatchGroup.GET("/export", dispatchHandler.Export)
			dispatchGroup.GET("/risk-scores", dispatchHandler.RiskScores)
		}
	}

	if services.Advisor != nil {
		festivalHandler := handlers.NewFestivalHandler(services.Advisor)
		festivalGroup := apiGroup.Group("/festivals")
		{
			festivalGroup.GET("/upcoming", festivalHandler.Upcoming)
			festivalGroup.GET("/calendar", festivalHandler.Calendar)
			festivalGroup.GET("/impact/:festival_name", festivalHandler.Impact)
			festivalGroup.GET("/marriage-season", festivalHandler.MarriageSeason)
		}

		alertHandler := handlers.NewAlertHandler(services.Advisor)
		alertGroup := apiGroup.Group("/alerts")
		{
			alertGroup.GET("", alertHandler.List)
			alertGroup.GET("/critical", alertHandler.Critical)
			alertGroup.GET("/count", alertHandler.Count)
		}

		copilotHandler := handlers.NewCopilotHandler(services.Advisor)
		copilotGroup := apiGroup.Group("/copilot")
		{
			copilotGroup.POST("/chat", copilotHandler.Chat)
			copilotGroup.GET("/suggestions", copilotHandler.Suggestions)
		}
	}

	marketHandler := handlers.NewMarketHandler()
	marketGroup := apiGroup.Group("/market")
	{
		marketGroup.GET("/trends", marketHandler.Trends)
		marketGroup.GET("/competitor-news", marketHandler.CompetitorNews)
		marketGroup.GET("/ev-trends", marketHandler.EVTrends)
		marketGroup.GET("/fuel", marketHandler.Fuel)
		marketGroup.GET("/policy", marketHandler.Policy)
		marketGroup.GET("/all", marketHandler.All)
	}

	if services.Dataset != nil {
		datasetHandler := handlers.NewDatasetHandler(services.Dataset)
		salesDataGroup := apiGroup.Group("/sales-data")
		{
			salesDataGroup.POST("/upload", datasetHandler.Upload)
			salesDataGroup.GET("/status", datasetHandler.Status)
		}
	}

	if services.Stock != nil {
		stockHandler := handlers.NewStockHandler(services.Stock)
		stockGroup := apiGroup.Group("/stock")
		{
			stockGroup.GET("/template", stockHandler.Template)
			stockGroup.GET("/inventory", stockHandler.Inventory)
			stockGroup.GET("/summary", stockHandler.Summary)
			stockGroup.DELETE("/clear", stockHandler.Clear)
			stockGroup.POST("/upload", stockHandler.Upload)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
