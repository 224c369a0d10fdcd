// backend-go/cmd/ingestd/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/dealersight/wheeler-intel/backend-go/internal/cache"
	"github.com/dealersight/wheeler-intel/backend-go/internal/config"
	"github.com/dealersight/wheeler-intel/backend-go/internal/ingest"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository/postgres"
)

// ingestd watches nothing on its own; it exposes the Drive folder listing
// and on-demand ingest endpoints so an external scheduler can drive pulls.
func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	if cfg.Drive.CredentialsJSON == "" {
		log.Fatal("GOOGLE_DRIVE_CREDENTIALS_JSON is required")
	}

	ctx := context.Background()

	// Initialize Google Drive source
	source, err := ingest.NewDriveClient(ctx, cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive client: %v", err)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	salesRepo := postgres.NewSalesRepository(db)

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize dashboard cache: %v", err)
	}

	ingestService := ingest.NewService(source, salesRepo, dashboardCache, ingest.DefaultWorkerCount)

	// Register routes
	r := mux.NewRouter()
	handler := ingest.NewHandler(source, ingestService)
	handler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
