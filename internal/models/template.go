package models

import (
	"time"

	"gorm.io/gorm"
)

// TemplateStatus tracks the import state machine:
// uploaded -> converting -> converted | conversion_failed.
type TemplateStatus string

const (
	TemplateStatusUploaded         TemplateStatus = "uploaded"
	TemplateStatusConverting       TemplateStatus = "converting"
	TemplateStatusConverted        TemplateStatus = "converted"
	TemplateStatusConversionFailed TemplateStatus = "conversion_failed"
)

// Template is an uploaded PPTX plus its derived slide images and fields.
type Template struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description"`
	FilePath        string         `json:"file_path"`
	FileURL         string         `json:"file_url"`
	SlideCount      int            `gorm:"default:0" json:"slide_count"`
	Status          TemplateStatus `gorm:"default:uploaded" json:"status"`
	StorageUploaded bool           `gorm:"default:false" json:"storage_uploaded"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Slides     []Slide    `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"slides,omitempty"`
	Fields     []Field    `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
	Categories []Category `gorm:"many2many:template_categories" json:"categories,omitempty"`
}

// Slide is one rasterized page of a template. SlideIndex is 0-based and
// contiguous per template.
type Slide struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TemplateID uint      `gorm:"not null;index;uniqueIndex:idx_template_slide" json:"template_id"`
	SlideIndex int       `gorm:"not null;uniqueIndex:idx_template_slide" json:"slide_index"`
	ImagePath  string    `json:"image_path"`
	ImageURL   string    `json:"image_url"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FieldType enumerates the supported field kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeDate     FieldType = "date"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeImage    FieldType = "image"
)

// Field is a named, positioned placeholder overlaid on one slide. SlideIndex
// references Slide.SlideIndex by value; it is validated against the slide
// arena at generation time.
type Field struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TemplateID   uint      `gorm:"not null;index" json:"template_id"`
	SlideIndex   int       `gorm:"not null" json:"slide_index"`
	Name         string    `gorm:"not null" json:"name"`
	Label        string    `json:"label"`
	Type         FieldType `gorm:"default:text" json:"type"`
	DefaultValue string    `json:"default_value"`
	PositionX    float64   `gorm:"not null" json:"position_x"`
	PositionY    float64   `gorm:"not null" json:"position_y"`
	Width        *float64  `json:"width"`
	Height       *float64  `json:"height"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
