package api

import (
	"github.com/deckfill/deckfill/internal/api/middleware"
	"github.com/deckfill/deckfill/internal/models"
	"github.com/gofiber/fiber/v2"
)

// FieldRequest is the create/update payload for a field. Positions are in
// reference-canvas pixels (960x540).
type FieldRequest struct {
	SlideIndex   int              `json:"slide_index" validate:"min=0"`
	Name         string           `json:"name" validate:"required"`
	Label        string           `json:"label"`
	Type         models.FieldType `json:"type"`
	DefaultValue string           `json:"default_value"`
	PositionX    float64          `json:"position_x"`
	PositionY    float64          `json:"position_y"`
	Width        *float64         `json:"width"`
	Height       *float64         `json:"height"`
}

func (s *APIServer) handleListFields(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	templateID, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	fields, err := s.fieldService.ListFields(user.ID, templateID)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"fields": fields})
}

func (s *APIServer) handleCreateField(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	templateID, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	var req FieldRequest
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

	field := req.toModel(templateID)
	if err := s.fieldService.CreateField(user.ID, field); err != nil {
		return s.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"field": field})
}

func (s *APIServer) handleGetField(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	templateID, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}
	fieldID, err := paramID(c, "fieldId")
	if err != nil {
		return s.serviceError(c, err)
	}

	field, err := s.fieldService.GetFieldByID(user.ID, templateID, fieldID)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"field": field})
}

func (s *APIServer) handleUpdateField(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	templateID, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}
	fieldID, err := paramID(c, "fieldId")
	if err != nil {
		return s.serviceError(c, err)
	}

	var req FieldRequest
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

	existing, err := s.fieldService.GetFieldByID(user.ID, templateID, fieldID)
	if err != nil {
		return s.serviceError(c, err)
	}

	field := req.toModel(templateID)
	field.ID = existing.ID
	field.CreatedAt = existing.CreatedAt
	if err := s.fieldService.UpdateField(user.ID, field); err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"field": field})
}

func (s *APIServer) handleDeleteField(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	templateID, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}
	fieldID, err := paramID(c, "fieldId")
	if err != nil {
		return s.serviceError(c, err)
	}

	if err := s.fieldService.DeleteField(user.ID, templateID, fieldID); err != nil {
		return s.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (r FieldRequest) toModel(templateID uint) *models.Field {
	return &models.Field{
		TemplateID:   templateID,
		SlideIndex:   r.SlideIndex,
		Name:         r.Name,
		Label:        r.Label,
		Type:         r.Type,
		DefaultValue: r.DefaultValue,
		PositionX:    r.PositionX,
		PositionY:    r.PositionY,
		Width:        r.Width,
		Height:       r.Height,
	}
}
