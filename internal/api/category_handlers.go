package api

import (
	"github.com/deckfill/deckfill/internal/api/middleware"
	"github.com/deckfill/deckfill/internal/models"
	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID *uint  `json:"parent_id"`
}

func (s *APIServer) handleListCategories(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	categories, err := s.categoryService.ListCategories(user.ID)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (s *APIServer) handleCreateCategory(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	var req CategoryRequest
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

	category := &models.Category{
		UserID:   user.ID,
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if err := s.categoryService.CreateCategory(category); err != nil {
		return s.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

func (s *APIServer) handleGetCategory(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	category, err := s.categoryService.GetCategoryByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

func (s *APIServer) handleUpdateCategory(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	var req CategoryRequest
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

	category, err := s.categoryService.GetCategoryByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}

	category.Name = req.Name
	category.ParentID = req.ParentID
	category.Children = nil
	if err := s.categoryService.UpdateCategory(category); err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

func (s *APIServer) handleDeleteCategory(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	if err := s.categoryService.DeleteCategory(user.ID, id); err != nil {
		return s.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
