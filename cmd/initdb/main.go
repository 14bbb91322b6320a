// Package main is the database initializer. It clears any existing data
// and recreates the tables from the embedded schema script.
//
// Destructive by design: run once before first start, or to reset an
// environment. Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/initdb
package main

import (
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"github.com/inkwell/inkwell/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	if _, err := db.Exec(repository.Schema); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	logger.Info("initialized the database")
}
