package models

import (
	"time"
)

// ExportFormat is the output artifact format.
type ExportFormat string

const (
	ExportFormatPPTX ExportFormat = "pptx"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ExportStatus tracks the lifecycle of a generated artifact.
type ExportStatus string

const (
	ExportStatusPending ExportStatus = "pending"
	ExportStatusSuccess ExportStatus = "success"
	ExportStatusError   ExportStatus = "error"
)

// Export is a generated artifact recorded in history. Append-only; deleted
// explicitly by the owning user.
type Export struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index" json:"user_id"`
	TemplateID    uint         `gorm:"not null;index" json:"template_id"`
	FilePath      string       `gorm:"not null" json:"file_path"`
	FileName      string       `gorm:"not null" json:"file_name"`
	FileSize      int64        `json:"file_size"`
	Format        ExportFormat `gorm:"not null" json:"format"`
	ExportDate    time.Time    `json:"export_date"`
	DownloadCount int          `gorm:"default:0" json:"download_count"`
	// Values snapshots the submitted field values for audit and re-export.
	Values     JSON         `gorm:"type:text" json:"values"`
	Recipients StringList   `gorm:"type:text" json:"recipients"`
	Status     ExportStatus `gorm:"default:pending" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	Template Template `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
}
