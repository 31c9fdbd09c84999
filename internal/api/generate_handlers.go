package api

import (
	"github.com/deckfill/deckfill/internal/api/middleware"
	"github.com/deckfill/deckfill/internal/generate"
	"github.com/deckfill/deckfill/internal/models"
	"github.com/gofiber/fiber/v2"
)

type GenerateRequest struct {
	Values     map[string]interface{} `json:"values"`
	Format     models.ExportFormat    `json:"format" validate:"omitempty,oneof=pptx pdf"`
	Recipients []string               `json:"recipients"`
}

// handleGenerate renders the template with the submitted values and records
// the export.
func (s *APIServer) handleGenerate(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	var req GenerateRequest
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

	export, err := s.assembler.Generate(template, generate.Request{
		Values:     req.Values,
		Format:     req.Format,
		Recipients: req.Recipients,
	})
	if err != nil {
		return s.serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"export":   export,
		"filePath": export.FilePath,
	})
}
