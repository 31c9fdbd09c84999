package api

import (
	"github.com/deckfill/deckfill/internal/api/middleware"
	"github.com/deckfill/deckfill/internal/config"
	"github.com/deckfill/deckfill/internal/convert"
	"github.com/deckfill/deckfill/internal/generate"
	"github.com/deckfill/deckfill/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

// APIServer is the single HTTP surface: auth, template CRUD, fields,
// categories, exports and generation.
type APIServer struct {
	app       *fiber.App
	validator *validator.Validate
	cfg       config.Config
	log       *logrus.Logger

	authService     services.AuthService
	templateService services.TemplateService
	fieldService    services.FieldService
	categoryService services.CategoryService
	exportService   services.ExportService
	storageService  services.StorageService
	chunkStore      services.ChunkStore
	importer        *convert.ImportService
	assembler       *generate.Assembler
}

// Deps bundles the service dependencies of the API server.
type Deps struct {
	Auth       services.AuthService
	Templates  services.TemplateService
	Fields     services.FieldService
	Categories services.CategoryService
	Exports    services.ExportService
	Storage    services.StorageService
	Chunks     services.ChunkStore
	Importer   *convert.ImportService
	Assembler  *generate.Assembler
}

func NewAPIServer(cfg config.Config, log *logrus.Logger, deps Deps) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             int(cfg.MaxUploadBytes) + 1<<20,
	})

	// Add middleware
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	server := &APIServer{
		app:             app,
		validator:       validator.New(),
		cfg:             cfg,
		log:             log,
		authService:     deps.Auth,
		templateService: deps.Templates,
		fieldService:    deps.Fields,
		categoryService: deps.Categories,
		exportService:   deps.Exports,
		storageService:  deps.Storage,
		chunkStore:      deps.Chunks,
		importer:        deps.Importer,
		assembler:       deps.Assembler,
	}
	server.setupRoutes()
	return server
}

func (s *APIServer) setupRoutes() {
	// Public routes
	s.app.Post("/api/auth/register", s.handleRegister)
	s.app.Post("/api/auth/login", s.handleLogin)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	authRequired := middleware.NewAuthMiddleware(s.authService)

	templates := s.app.Group("/api/templates", authRequired)
	templates.Get("/", s.handleListTemplates)
	templates.Post("/", s.handleUploadTemplate)
	templates.Post("/upload/chunk", s.handleUploadChunk)
	templates.Get("/:id", s.handleGetTemplate)
	templates.Put("/:id", s.handleUpdateTemplate)
	templates.Delete("/:id", s.handleDeleteTemplate)
	templates.Post("/:id/generate", s.handleGenerate)

	templates.Get("/:id/fields", s.handleListFields)
	templates.Post("/:id/fields", s.handleCreateField)
	templates.Get("/:id/fields/:fieldId", s.handleGetField)
	templates.Put("/:id/fields/:fieldId", s.handleUpdateField)
	templates.Delete("/:id/fields/:fieldId", s.handleDeleteField)

	categories := s.app.Group("/api/categories", authRequired)
	categories.Get("/", s.handleListCategories)
	categories.Post("/", s.handleCreateCategory)
	categories.Get("/:id", s.handleGetCategory)
	categories.Put("/:id", s.handleUpdateCategory)
	categories.Delete("/:id", s.handleDeleteCategory)

	exports := s.app.Group("/api/exports", authRequired)
	exports.Get("/", s.handleListExports)
	exports.Get("/:id/download", s.handleDownloadExport)
	exports.Delete("/:id", s.handleDeleteExport)
}

// Start starts the server on the given address.
func (s *APIServer) Start(addr string) error {
	return s.app.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

// GetFiberApp exposes the Fiber app for the serverless adaptor and tests.
func (s *APIServer) GetFiberApp() *fiber.App {
	return s.app
}
