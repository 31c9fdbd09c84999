package api

import (
	"fmt"
	"os"

	"github.com/deckfill/deckfill/internal/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func (s *APIServer) handleListExports(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	exports, err := s.exportService.ListExports(user.ID)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"exports": exports})
}

// handleDownloadExport streams the artifact and bumps its download counter.
func (s *APIServer) handleDownloadExport(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	export, err := s.exportService.GetExportByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}
	if err := s.exportService.IncrementDownloadCount(user.ID, id); err != nil {
		return s.serviceError(c, err)
	}
	return c.Download(export.FilePath, export.FileName)
}

// handleDeleteExport removes the history row, the local artifact and its
// storage mirror. File cleanup is best-effort once the row is gone.
func (s *APIServer) handleDeleteExport(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return s.serviceError(c, err)
	}

	export, err := s.exportService.GetExportByID(user.ID, id)
	if err != nil {
		return s.serviceError(c, err)
	}
	if err := s.exportService.DeleteExport(user.ID, id); err != nil {
		return s.serviceError(c, err)
	}

	if err := os.Remove(export.FilePath); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).Warn("remove export artifact")
	}
	if s.storageService != nil {
		objectPath := fmt.Sprintf("exports/%d/%s", user.ID, export.FileName)
		if err := s.storageService.Remove([]string{objectPath}); err != nil {
			s.log.WithError(err).Warn("remove export mirror")
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
