package config

import (
	"log"
	"os"
	"strconv"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/joho/godotenv"
)

// Config carries all environment-driven settings. Behavior differences that
// used to live in duplicated server entrypoints are switches here instead.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// UploadDir holds source PPTX files and derived slide images.
	UploadDir string
	// ExportDir holds generated artifacts, one subdirectory per user.
	ExportDir string
	// MaxUploadBytes caps multipart template uploads. Default 10MB.
	MaxUploadBytes int64

	// DefaultExportFormat resolves the pdf-vs-pptx ambiguity explicitly.
	DefaultExportFormat models.ExportFormat

	SupabaseURL string
	SupabaseKey string
	// StorageBucket is the object-storage bucket mirroring uploads/exports.
	StorageBucket string

	// ConvertAPIURL is the remote PPTX-to-image conversion endpoint.
	// Empty means convert locally.
	ConvertAPIURL string
	ConvertAPIKey string
}

// Load reads configuration from the environment, loading .env when present.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: no .env file found")
	}

	cfg := Config{
		Port:                getEnv("PORT", "3000"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           getEnv("JWT_SECRET", "development-secret"),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		ExportDir:           getEnv("EXPORT_DIR", "exports"),
		MaxUploadBytes:      getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		DefaultExportFormat: models.ExportFormatPPTX,
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseKey:         os.Getenv("SUPABASE_SERVICE_KEY"),
		StorageBucket:       getEnv("STORAGE_BUCKET", "ppt-templates"),
		ConvertAPIURL:       os.Getenv("CONVERT_API_URL"),
		ConvertAPIKey:       os.Getenv("CONVERT_API_KEY"),
	}

	if f := os.Getenv("EXPORT_DEFAULT_FORMAT"); f != "" {
		switch models.ExportFormat(f) {
		case models.ExportFormatPPTX, models.ExportFormatPDF:
			cfg.DefaultExportFormat = models.ExportFormat(f)
		default:
			log.Printf("Warning: invalid EXPORT_DEFAULT_FORMAT %q, using pptx", f)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default", key, v)
		return fallback
	}
	return n
}
