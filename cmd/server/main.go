package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/deckfill/deckfill/internal/api"
	"github.com/deckfill/deckfill/internal/config"
	"github.com/deckfill/deckfill/internal/server"
	"github.com/deckfill/deckfill/internal/services"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger()

	// Postgres when DATABASE_URL is set, a local SQLite file otherwise.
	var dbService services.DBService
	var err error
	if cfg.DatabaseURL != "" {
		dbService, err = services.NewPostgresDBService(cfg.DatabaseURL)
	} else {
		dbService, err = services.NewSqliteDBService("deckfill.db")
	}
	if err != nil {
		log.Fatal("Failed to initialize database service:", err)
	}

	deps := server.InitializeServices(dbService.GetDB(), cfg, logger)
	apiServer := api.NewAPIServer(cfg, logger, deps)

	go func() {
		if err := apiServer.Start(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start API server:", err)
		}
	}()

	logger.WithField("port", cfg.Port).Info("server started")

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("\nShutting down server...")

	if err := apiServer.Shutdown(); err != nil {
		log.Printf("Error shutting down API server: %v", err)
	}
	deps.Chunks.Close()
	if err := dbService.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server shut down successfully")
}
