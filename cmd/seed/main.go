package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the sales dataset with sample or imported data",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate the sample sales dataset and write it as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output CSV path",
						Value: "./data/seeds/sample_sales.csv",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for the day-level noise",
						Value: 42,
					},
				},
				Action: runGenerate,
			},
			{
				Name:  "load",
				Usage: "Generate the sample dataset and load it into the database",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for the day-level noise",
						Value: 42,
					},
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Clear existing sales records before loading",
						Value: false,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runLoad,
			},
			{
				Name:  "import",
				Usage: "Download sales CSV/XLSX exports from object storage and append them",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "storage-endpoint",
						Usage:   "S3-compatible endpoint",
						Value:   "127.0.0.1:9000",
						EnvVars: []string{"STORAGE_ENDPOINT"},
					},
					&cli.StringFlag{
						Name:    "storage-access-key",
						Usage:   "Storage access key",
						EnvVars: []string{"STORAGE_ACCESS_KEY"},
					},
					&cli.StringFlag{
						Name:    "storage-secret-key",
						Usage:   "Storage secret key",
						EnvVars: []string{"STORAGE_SECRET_KEY"},
					},
					&cli.StringFlag{
						Name:    "storage-bucket",
						Usage:   "Storage bucket",
						Value:   "wheeler-uploads",
						EnvVars: []string{"STORAGE_BUCKET"},
					},
					&cli.BoolFlag{
						Name:    "storage-use-ssl",
						Usage:   "Use TLS for the storage endpoint",
						EnvVars: []string{"STORAGE_USE_SSL"},
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Object key prefix to import",
						Value: "imports/",
					},
					&cli.StringFlag{
						Name:  "download-dir",
						Usage: "Local directory for downloaded files",
						Value: "./data/tmp/imports",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runImport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
