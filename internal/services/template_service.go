package services

import (
	"fmt"

	"github.com/deckfill/deckfill/internal/models"
	"gorm.io/gorm"
)

// TemplateService handles template and slide persistence.
type TemplateService interface {
	CreateTemplate(template *models.Template) error
	GetTemplateByID(userID, id uint) (*models.Template, error)
	ListTemplates(userID uint, keyword string) ([]models.Template, error)
	UpdateTemplate(template *models.Template) error
	DeleteTemplate(userID, id uint) error
	SetStatus(id uint, status models.TemplateStatus) error
	SetFileURL(id uint, url string) error
	ReplaceSlides(templateID uint, slides []models.Slide) error
	SetCategories(userID, templateID uint, categoryIDs []uint) error
}

type templateService struct {
	db *gorm.DB
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(db *gorm.DB) TemplateService {
	return &templateService{db: db}
}

// CreateTemplate creates a new template
func (s *templateService) CreateTemplate(template *models.Template) error {
	return s.db.Create(template).Error
}

// GetTemplateByID returns a user's template with its slides, fields and
// categories preloaded. Slides are ordered by slide_index.
func (s *templateService) GetTemplateByID(userID, id uint) (*models.Template, error) {
	var template models.Template
	err := s.db.
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("slide_index ASC")
		}).
		Preload("Fields").
		Preload("Categories").
		Where("user_id = ?", userID).
		First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// ListTemplates returns a user's templates with optional keyword filtering.
// The first slide is preloaded so callers can show a thumbnail.
func (s *templateService) ListTemplates(userID uint, keyword string) ([]models.Template, error) {
	query := s.db.Model(&models.Template{}).Where("user_id = ?", userID)

	if keyword != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	var templates []models.Template
	err := query.
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Where("slide_index = ?", 0)
		}).
		Preload("Categories").
		Order("created_at DESC").
		Find(&templates).Error
	return templates, err
}

// UpdateTemplate updates an existing template
func (s *templateService) UpdateTemplate(template *models.Template) error {
	return s.db.Save(template).Error
}

// DeleteTemplate deletes a user's template; slides and fields cascade.
func (s *templateService) DeleteTemplate(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var template models.Template
		if err := tx.Where("user_id = ?", userID).First(&template, id).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&models.Slide{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&models.Field{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&template).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&template).Error
	})
}

// SetStatus updates only the import status of a template.
func (s *templateService) SetStatus(id uint, status models.TemplateStatus) error {
	return s.db.Model(&models.Template{}).Where("id = ?", id).Update("status", status).Error
}

// SetFileURL records the mirrored presentation URL after a storage upload.
func (s *templateService) SetFileURL(id uint, url string) error {
	return s.db.Model(&models.Template{}).Where("id = ?", id).
		Updates(map[string]interface{}{"file_url": url, "storage_uploaded": true}).Error
}

// ReplaceSlides swaps a template's slide rows for the given set and updates
// slide_count. Re-running a conversion is idempotent.
func (s *templateService) ReplaceSlides(templateID uint, slides []models.Slide) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&models.Slide{}).Error; err != nil {
			return err
		}
		for i := range slides {
			slides[i].TemplateID = templateID
		}
		if len(slides) > 0 {
			if err := tx.Create(&slides).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Template{}).Where("id = ?", templateID).
			Update("slide_count", len(slides)).Error
	})
}

// SetCategories replaces the template's category links. All categories must
// belong to the same user.
func (s *templateService) SetCategories(userID, templateID uint, categoryIDs []uint) error {
	var template models.Template
	if err := s.db.Where("user_id = ?", userID).First(&template, templateID).Error; err != nil {
		return err
	}

	var categories []models.Category
	if len(categoryIDs) > 0 {
		if err := s.db.Where("user_id = ? AND id IN ?", userID, categoryIDs).Find(&categories).Error; err != nil {
			return err
		}
		if len(categories) != len(categoryIDs) {
			return fmt.Errorf("unknown category in %v", categoryIDs)
		}
	}
	return s.db.Model(&template).Association("Categories").Replace(categories)
}
