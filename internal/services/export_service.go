package services

import (
	"github.com/deckfill/deckfill/internal/models"
	"gorm.io/gorm"
)

// ExportService handles the append-only export history.
type ExportService interface {
	CreateExport(export *models.Export) error
	GetExportByID(userID, id uint) (*models.Export, error)
	ListExports(userID uint) ([]models.Export, error)
	IncrementDownloadCount(userID, id uint) error
	DeleteExport(userID, id uint) error
}

type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportService
func NewExportService(db *gorm.DB) ExportService {
	return &exportService{db: db}
}

// CreateExport records a generated artifact.
func (s *exportService) CreateExport(export *models.Export) error {
	return s.db.Create(export).Error
}

// GetExportByID returns one of a user's exports.
func (s *exportService) GetExportByID(userID, id uint) (*models.Export, error) {
	var export models.Export
	err := s.db.Where("user_id = ?", userID).First(&export, id).Error
	if err != nil {
		return nil, err
	}
	return &export, nil
}

// ListExports returns a user's export history, newest first.
func (s *exportService) ListExports(userID uint) ([]models.Export, error) {
	var exports []models.Export
	err := s.db.Where("user_id = ?", userID).
		Order("export_date DESC").
		Find(&exports).Error
	return exports, err
}

// IncrementDownloadCount bumps the counter on download.
func (s *exportService) IncrementDownloadCount(userID, id uint) error {
	result := s.db.Model(&models.Export{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("download_count", gorm.Expr("download_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteExport removes an export record.
func (s *exportService) DeleteExport(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Export{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
