package services

import (
	"errors"

	"github.com/deckfill/deckfill/internal/models"
	"gorm.io/gorm"
)

var ErrCategoryCycle = errors.New("category cannot be its own ancestor")

// CategoryService handles hierarchical, user-owned categories.
type CategoryService interface {
	CreateCategory(category *models.Category) error
	GetCategoryByID(userID, id uint) (*models.Category, error)
	ListCategories(userID uint) ([]models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(userID, id uint) error
}

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

// validateParent checks the parent exists, belongs to the same user and does
// not create a cycle.
func (s *categoryService) validateParent(category *models.Category) error {
	if category.ParentID == nil {
		return nil
	}
	parentID := *category.ParentID
	for parentID != 0 {
		if parentID == category.ID && category.ID != 0 {
			return ErrCategoryCycle
		}
		var parent models.Category
		if err := s.db.Where("user_id = ?", category.UserID).First(&parent, parentID).Error; err != nil {
			return err
		}
		if parent.ParentID == nil {
			break
		}
		parentID = *parent.ParentID
	}
	return nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(category *models.Category) error {
	if err := s.validateParent(category); err != nil {
		return err
	}
	return s.db.Create(category).Error
}

// GetCategoryByID returns a user's category with children preloaded.
func (s *categoryService) GetCategoryByID(userID, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.
		Preload("Children").
		Where("user_id = ?", userID).
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all of a user's categories.
func (s *categoryService) ListCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	return categories, err
}

// UpdateCategory updates an existing category
func (s *categoryService) UpdateCategory(category *models.Category) error {
	if err := s.validateParent(category); err != nil {
		return err
	}
	return s.db.Save(category).Error
}

// DeleteCategory deletes a user's category. Children are re-parented to the
// deleted category's parent; template links are removed.
func (s *categoryService) DeleteCategory(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("user_id = ?", userID).First(&category, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ?", id).
			Update("parent_id", category.ParentID).Error; err != nil {
			return err
		}
		if err := tx.Model(&category).Association("Templates").Clear(); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
