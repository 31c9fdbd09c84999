package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/deckfill/deckfill/internal/services"
	"github.com/sirupsen/logrus"
)

// ImportService runs the post-upload pipeline: rasterize the presentation,
// persist the slide rows and mirror artifacts to object storage.
type ImportService struct {
	templates services.TemplateService
	storage   services.StorageService
	converter Converter
	uploadDir string
	logger    *logrus.Logger
}

// NewImportService creates an ImportService. storage may be nil when object
// storage is not configured.
func NewImportService(templates services.TemplateService, storage services.StorageService, converter Converter, uploadDir string, logger *logrus.Logger) *ImportService {
	return &ImportService{
		templates: templates,
		storage:   storage,
		converter: converter,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Import drives the template through the import state machine:
// uploaded -> converting -> converted, or conversion_failed on error.
// Storage uploads are best-effort and never fail the import.
func (s *ImportService) Import(ctx context.Context, template *models.Template) error {
	if err := s.templates.SetStatus(template.ID, models.TemplateStatusConverting); err != nil {
		return fmt.Errorf("mark converting: %w", err)
	}

	outputDir := filepath.Join(s.uploadDir, fmt.Sprintf("template_%d", template.ID))
	images, err := s.converter.Convert(ctx, template.FilePath, outputDir)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"template_id": template.ID,
			"file":        template.FilePath,
		}).WithError(err).Error("conversion failed")
		if statusErr := s.templates.SetStatus(template.ID, models.TemplateStatusConversionFailed); statusErr != nil {
			s.logger.WithError(statusErr).Error("mark conversion_failed")
		}
		return err
	}

	slides := make([]models.Slide, 0, len(images))
	for _, img := range images {
		slide := models.Slide{
			SlideIndex: img.SlideIndex,
			ImagePath:  img.ImagePath,
			Width:      img.Width,
			Height:     img.Height,
		}
		if s.storage != nil && img.ImagePath != "" {
			slide.ImageURL = s.uploadImage(template, img)
		}
		slides = append(slides, slide)
	}

	if err := s.templates.ReplaceSlides(template.ID, slides); err != nil {
		if statusErr := s.templates.SetStatus(template.ID, models.TemplateStatusConversionFailed); statusErr != nil {
			s.logger.WithError(statusErr).Error("mark conversion_failed")
		}
		return fmt.Errorf("persist slides: %w", err)
	}

	s.uploadSource(template)

	if err := s.templates.SetStatus(template.ID, models.TemplateStatusConverted); err != nil {
		return fmt.Errorf("mark converted: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"template_id": template.ID,
		"slides":      len(slides),
	}).Info("template converted")
	return nil
}

func (s *ImportService) uploadImage(template *models.Template, img SlideImage) string {
	f, err := os.Open(img.ImagePath)
	if err != nil {
		s.logger.WithError(err).Warn("open slide image for upload")
		return ""
	}
	defer f.Close()

	objectPath := fmt.Sprintf("templates/%d/%d/%s", template.UserID, template.ID, filepath.Base(img.ImagePath))
	url, err := s.storage.Upload(objectPath, f)
	if err != nil {
		return ""
	}
	return url
}

// uploadSource mirrors the original presentation file and records its URL.
func (s *ImportService) uploadSource(template *models.Template) {
	if s.storage == nil || template.FilePath == "" {
		return
	}
	f, err := os.Open(template.FilePath)
	if err != nil {
		s.logger.WithError(err).Warn("open presentation for upload")
		return
	}
	defer f.Close()

	objectPath := fmt.Sprintf("templates/%d/%d/%s", template.UserID, template.ID, filepath.Base(template.FilePath))
	url, err := s.storage.Upload(objectPath, f)
	if err != nil {
		return
	}

	template.FileURL = url
	template.StorageUploaded = true
	if err := s.templates.SetFileURL(template.ID, url); err != nil {
		s.logger.WithError(err).Warn("record presentation URL")
	}
}
