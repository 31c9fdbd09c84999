package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/deckfill/deckfill/internal/api"
	"github.com/deckfill/deckfill/internal/config"
	"github.com/deckfill/deckfill/internal/server"
	"github.com/deckfill/deckfill/internal/services"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	apiServer *api.APIServer
	initOnce  sync.Once
	initErr   error
)

// Handler is the main Vercel function handler
func Handler(w http.ResponseWriter, r *http.Request) {
	// Initialize the API server only once, even across concurrent cold starts
	initOnce.Do(func() {
		initErr = initializeAPIServer()
	})
	if initErr != nil {
		log.Printf("Failed to initialize API server: %v", initErr)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	adaptor.FiberApp(apiServer.GetFiberApp())(w, r)
}

// initializeAPIServer builds the same server cmd/server runs, pointed at
// writable serverless storage.
func initializeAPIServer() error {
	cfg := config.Load()
	logger := config.NewLogger()

	// Serverless filesystems are read-only outside /tmp.
	if os.Getenv("VERCEL") == "1" {
		cfg.UploadDir = filepath.Join("/tmp", "uploads")
		cfg.ExportDir = filepath.Join("/tmp", "exports")
	}

	var dbService services.DBService
	var err error
	if cfg.DatabaseURL != "" {
		dbService, err = services.NewPostgresDBService(cfg.DatabaseURL)
	} else {
		dbService, err = services.NewSqliteDBService(filepath.Join("/tmp", "deckfill.db"))
	}
	if err != nil {
		return err
	}

	deps := server.InitializeServices(dbService.GetDB(), cfg, logger)
	apiServer = api.NewAPIServer(cfg, logger, deps)
	return nil
}
