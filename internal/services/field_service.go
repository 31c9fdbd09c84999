package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/deckfill/deckfill/internal/models"
	"gorm.io/gorm"
)

var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var (
	ErrInvalidFieldName = errors.New("field name must match [a-zA-Z0-9_]+")
	ErrInvalidFieldType = errors.New("field type must be text, date, checkbox or image")
	ErrNegativePosition = errors.New("field position must be non-negative")
	ErrNegativeSize     = errors.New("field width and height must be non-negative")
)

// FieldService handles the field sub-resource of templates.
type FieldService interface {
	CreateField(userID uint, field *models.Field) error
	GetFieldByID(userID, templateID, id uint) (*models.Field, error)
	ListFields(userID, templateID uint) ([]models.Field, error)
	UpdateField(userID uint, field *models.Field) error
	DeleteField(userID, templateID, id uint) error
}

type fieldService struct {
	db *gorm.DB
}

// NewFieldService creates a new FieldService
func NewFieldService(db *gorm.DB) FieldService {
	return &fieldService{db: db}
}

func validateField(field *models.Field) error {
	if !fieldNamePattern.MatchString(field.Name) {
		return ErrInvalidFieldName
	}
	switch field.Type {
	case models.FieldTypeText, models.FieldTypeDate, models.FieldTypeCheckbox, models.FieldTypeImage:
	case "":
		field.Type = models.FieldTypeText
	default:
		return ErrInvalidFieldType
	}
	if field.PositionX < 0 || field.PositionY < 0 {
		return ErrNegativePosition
	}
	if (field.Width != nil && *field.Width < 0) || (field.Height != nil && *field.Height < 0) {
		return ErrNegativeSize
	}
	return nil
}

// ownedTemplate verifies the template belongs to the user.
func (s *fieldService) ownedTemplate(userID, templateID uint) error {
	var count int64
	err := s.db.Model(&models.Template{}).
		Where("id = ? AND user_id = ?", templateID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateField validates and persists a field on a user's template.
func (s *fieldService) CreateField(userID uint, field *models.Field) error {
	if err := validateField(field); err != nil {
		return err
	}
	if err := s.ownedTemplate(userID, field.TemplateID); err != nil {
		return fmt.Errorf("template %d: %w", field.TemplateID, err)
	}
	return s.db.Create(field).Error
}

// GetFieldByID returns one field of a user's template.
func (s *fieldService) GetFieldByID(userID, templateID, id uint) (*models.Field, error) {
	if err := s.ownedTemplate(userID, templateID); err != nil {
		return nil, err
	}
	var field models.Field
	err := s.db.Where("template_id = ?", templateID).First(&field, id).Error
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// ListFields returns all fields of a user's template.
func (s *fieldService) ListFields(userID, templateID uint) ([]models.Field, error) {
	if err := s.ownedTemplate(userID, templateID); err != nil {
		return nil, err
	}
	var fields []models.Field
	err := s.db.Where("template_id = ?", templateID).
		Order("slide_index ASC, id ASC").
		Find(&fields).Error
	return fields, err
}

// UpdateField validates and saves an existing field.
func (s *fieldService) UpdateField(userID uint, field *models.Field) error {
	if err := validateField(field); err != nil {
		return err
	}
	if err := s.ownedTemplate(userID, field.TemplateID); err != nil {
		return err
	}
	return s.db.Save(field).Error
}

// DeleteField deletes one field of a user's template.
func (s *fieldService) DeleteField(userID, templateID, id uint) error {
	if err := s.ownedTemplate(userID, templateID); err != nil {
		return err
	}
	result := s.db.Where("template_id = ?", templateID).Delete(&models.Field{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
