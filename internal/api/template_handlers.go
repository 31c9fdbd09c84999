package api

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deckfill/deckfill/internal/api/middleware"
	"github.com/deckfill/deckfill/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UpdateTemplateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CategoryIDs []uint `json:"category_ids"`
}

type ChunkUploadRequest struct {
	UploadID    string `form:"upload_id" validate:"required"`
	ChunkIndex  int    `form:"chunk_index"`
	TotalChunks int    `form:"total_chunks" validate:"required,min=1"`
	Name        string `form:"name"`
	Description string `form:"description"`
}

// handleListTemplates returns the user's templates with first-slide
// thumbnails and categories.
func (s *APIServer) handleListTemplates(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	templates, err := s.templateService.ListTemplates(user.ID, c.Query("keyword"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"templates": templates})
}

// handleUploadTemplate accepts a multipart .pptx upload and kicks off the
// slide conversion in the background.
func (s *APIServer) handleUploadTemplate(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing file",
		})
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pptx") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only .pptx files are accepted",
		})
	}
	if fileHeader.Size > s.cfg.MaxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File exceeds %d bytes", s.cfg.MaxUploadBytes),
		})
	}

	name := c.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	filePath, err := s.saveUpload(user.ID, func(path string) error {
		return c.SaveFile(fileHeader, path)
	})
	if err != nil {
		return s.serviceError(c, err)
	}

	return s.createTemplate(c, user.ID, name, c.FormValue("description"), filePath)
}

// handleUploadChunk accepts one part of a chunked upload. The template is
// created once the final chunk arrives and the payload assembles.
func (s *APIServer) handleUploadChunk(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	var req ChunkUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	fileHeader, err := c.FormFile("chunk")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing chunk",
		})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return s.serviceError(c, err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return s.serviceError(c, err)
	}

	// Scope upload IDs per user so one user cannot append to another's upload.
	uploadKey := fmt.Sprintf("%d:%s", user.ID, req.UploadID)
	if err := s.chunkStore.Put(uploadKey, req.ChunkIndex, req.TotalChunks, data); err != nil {
		return s.serviceError(c, err)
	}

	payload, complete, err := s.chunkStore.Assemble(uploadKey)
	if err != nil {
		return s.serviceError(c, err)
	}
	if !complete {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"upload_id":   req.UploadID,
			"chunk_index": req.ChunkIndex,
		})
	}

	if int64(len(payload)) > s.cfg.MaxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File exceeds %d bytes", s.cfg.MaxUploadBytes),
		})
	}

	name := req.Name
	if name == "" {
		name = "Untitled"
	}

	filePath, err := s.saveUpload(user.ID, func(path string) error {
		return os.WriteFile(path, payload, 0644)
	})
	if err != nil {
		return s.serviceError(c, err)
	}

	return s.createTemplate(c, user.ID, name, req.Description, filePath)
}

// saveUpload writes an uploaded presentation into the user's upload
// directory under a fresh name.
func (s *APIServer) saveUpload(userID uint, write func(path string) error) (string, error) {
	dir := filepath.Join(s.cfg.UploadDir, fmt.Sprintf("user_%d", userID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+".pptx")
	if err := write(path); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}

func (s *APIServer) createTemplate(c *fiber.Ctx, userID uint, name, description, filePath string) error {
	template := &models.Template{
		UserID:      userID,
		Name:        name,
		Description: description,
		FilePath:    filePath,
		Status:      models.TemplateStatusUploaded,
	}
	if err := s.templateService.CreateTemplate(template); err != nil {
		os.Remove(filePath)
		return s.serviceError(c, err)
	}

	go func(t models.Template) {
		if err := s.importer.Import(context.Background(), &t); err != nil {
			s.log.WithError(err).WithField("template_id", t.ID).Error("import failed")
		}
	}(*template)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"template": template})
}

func (s *APIServer) handleGetTemplate(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	template, err := s.templateService.GetTemplateByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"template": template})
}

func (s *APIServer) handleUpdateTemplate(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	var req UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	template, err := s.templateService.GetTemplateByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}

	template.Name = req.Name
	template.Description = req.Description
	template.Slides = nil
	template.Fields = nil
	template.Categories = nil
	if err := s.templateService.UpdateTemplate(template); err != nil {
		return s.serviceError(c, err)
	}

	if req.CategoryIDs != nil {
		if err := s.templateService.SetCategories(user.ID, id, req.CategoryIDs); err != nil {
			return s.serviceError(c, err)
		}
	}

	updated, err := s.templateService.GetTemplateByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"template": updated})
}

// handleDeleteTemplate removes the template and its slides, then cleans up
// the source file, slide images and storage mirrors best-effort.
func (s *APIServer) handleDeleteTemplate(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	template, err := s.templateService.GetTemplateByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}
	if err := s.templateService.DeleteTemplate(user.ID, id); err != nil {
		return s.serviceError(c, err)
	}

	if template.FilePath != "" {
		if err := os.Remove(template.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.WithError(err).Warn("remove template file")
		}
	}
	if err := os.RemoveAll(filepath.Join(s.cfg.UploadDir, fmt.Sprintf("template_%d", id))); err != nil {
		s.log.WithError(err).Warn("remove slide images")
	}

	if s.storageService != nil {
		objects := make([]string, 0, len(template.Slides)+1)
		if template.StorageUploaded && template.FilePath != "" {
			objects = append(objects, fmt.Sprintf("templates/%d/%d/%s", user.ID, id, filepath.Base(template.FilePath)))
		}
		for _, slide := range template.Slides {
			if slide.ImageURL != "" && slide.ImagePath != "" {
				objects = append(objects, fmt.Sprintf("templates/%d/%d/%s", user.ID, id, filepath.Base(slide.ImagePath)))
			}
		}
		if err := s.storageService.Remove(objects); err != nil {
			s.log.WithError(err).Warn("remove template mirrors")
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
