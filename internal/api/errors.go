package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/deckfill/deckfill/internal/generate"
	"github.com/deckfill/deckfill/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// serviceError maps service-layer errors onto HTTP responses. Validation
// sentinels become 400s, missing rows 404s, everything else a 500 with the
// detail kept out of the response body.
func (s *APIServer) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, services.ErrInvalidFieldName),
		errors.Is(err, services.ErrInvalidFieldType),
		errors.Is(err, services.ErrNegativePosition),
		errors.Is(err, services.ErrNegativeSize),
		errors.Is(err, services.ErrCategoryCycle),
		errors.Is(err, errInvalidParam),
		errors.Is(err, services.ErrChunkOutOfOrder),
		errors.Is(err, generate.ErrUnsupportedFormat),
		errors.Is(err, generate.ErrFieldSlideIndex),
		errors.Is(err, generate.ErrInvalidCoordinate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrChunkUploadNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		s.log.WithError(err).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}

var errInvalidParam = errors.New("must be a positive integer")

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, errInvalidParam)
	}
	return uint(id), nil
}
