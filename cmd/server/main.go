// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/alerts"
	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/api"
	"github.com/dealersight/wheeler-intel/backend-go/internal/cache"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/config"
	"github.com/dealersight/wheeler-intel/backend-go/internal/copilot"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dispatch"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository/postgres"
	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
	"github.com/dealersight/wheeler-intel/backend-go/internal/storage"
	"github.com/dealersight/wheeler-intel/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	salesRepo := postgres.NewSalesRepository(db)
	stockRepo := postgres.NewStockRepository(db)

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize dashboard cache: %v", err)
	}

	// Upload archive is optional; dataset endpoints work without it.
	var archive storage.ObjectStorage
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		if err := minioClient.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("Failed to ensure storage bucket: %v", err)
		}
		archive = minioClient
	}

	// Curated tables and model engines are immutable once constructed and
	// shared by every request.
	cal := calendar.NewDefault()
	thresholds := analytics.DefaultThresholds()
	forecaster := forecast.New(cal)
	planner := dispatch.New(forecaster)
	alertEngine := alerts.New(cal, thresholds)
	chat := copilot.New(cal, forecaster, planner, thresholds)

	services := &api.Services{
		Dataset:   service.NewDatasetService(salesRepo, dashboardCache, archive),
		Stock:     service.NewStockService(stockRepo),
		Analytics: service.NewAnalyticsService(salesRepo, dashboardCache, alertEngine, thresholds),
		Forecast:  service.NewForecastService(salesRepo, forecaster),
		Dispatch:  service.NewDispatchService(salesRepo, stockRepo, planner),
		Advisor:   service.NewAdvisorService(salesRepo, stockRepo, cal, alertEngine, chat),
	}

	router := api.NewRouter(services, api.AppInfo{Name: cfg.App.Name, Env: cfg.Server.Mode}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
