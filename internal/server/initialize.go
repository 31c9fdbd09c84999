package server

import (
	"time"

	"github.com/deckfill/deckfill/internal/api"
	"github.com/deckfill/deckfill/internal/config"
	"github.com/deckfill/deckfill/internal/convert"
	"github.com/deckfill/deckfill/internal/generate"
	"github.com/deckfill/deckfill/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InitializeServices wires every service and the generation pipeline onto
// one database handle. Both entrypoints (cmd/server and the serverless
// adaptor) go through here so behavior cannot drift between them.
func InitializeServices(db *gorm.DB, cfg config.Config, log *logrus.Logger) api.Deps {
	authService := services.NewAuthService(db, cfg.JWTSecret)
	templateService := services.NewTemplateService(db)
	fieldService := services.NewFieldService(db)
	categoryService := services.NewCategoryService(db)
	exportService := services.NewExportService(db)
	chunkStore := services.NewChunkStore(10 * time.Minute)
	storageService := services.NewStorageService(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket, log)

	var converter convert.Converter
	if cfg.ConvertAPIURL != "" {
		converter = convert.NewRemoteConverter(cfg.ConvertAPIURL, cfg.ConvertAPIKey, log)
	} else {
		converter = convert.NewLocalConverter(0, log)
	}
	importer := convert.NewImportService(templateService, storageService, converter, cfg.UploadDir, log)

	renderer := generate.NewFieldRenderer(log)
	composer := generate.NewSlideComposer(renderer, cfg.UploadDir, log)
	var artifactStore generate.ArtifactStore
	if storageService != nil {
		artifactStore = storageService
	}
	assembler := generate.NewAssembler(composer, exportService, artifactStore, cfg.ExportDir, cfg.DefaultExportFormat, log)

	return api.Deps{
		Auth:       authService,
		Templates:  templateService,
		Fields:     fieldService,
		Categories: categoryService,
		Exports:    exportService,
		Storage:    storageService,
		Chunks:     chunkStore,
		Importer:   importer,
		Assembler:  assembler,
	}
}
