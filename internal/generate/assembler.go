package generate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedFormat = errors.New("format must be pptx or pdf")
	// ErrFieldSlideIndex rejects fields pointing outside the slide arena
	// instead of silently dropping them.
	ErrFieldSlideIndex = errors.New("field slide_index out of range")
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ExportRecorder persists export history rows. Satisfied by
// services.ExportService.
type ExportRecorder interface {
	CreateExport(export *models.Export) error
}

// ArtifactStore mirrors finished artifacts to object storage. Satisfied by
// services.StorageService; nil disables mirroring.
type ArtifactStore interface {
	Upload(objectPath string, data io.Reader) (string, error)
}

// Assembler drives the slide composer over a whole template and writes the
// final artifact.
type Assembler struct {
	composer      *SlideComposer
	exports       ExportRecorder
	store         ArtifactStore
	exportDir     string
	defaultFormat models.ExportFormat
	logger        *logrus.Logger
}

// NewAssembler creates an Assembler writing artifacts under exportDir.
// store may be nil when object storage is not configured.
func NewAssembler(composer *SlideComposer, exports ExportRecorder, store ArtifactStore, exportDir string, defaultFormat models.ExportFormat, logger *logrus.Logger) *Assembler {
	if defaultFormat == "" {
		defaultFormat = models.ExportFormatPPTX
	}
	return &Assembler{
		composer:      composer,
		exports:       exports,
		store:         store,
		exportDir:     exportDir,
		defaultFormat: defaultFormat,
		logger:        logger,
	}
}

// Request carries the caller's generation inputs.
type Request struct {
	Values map[string]interface{}
	// Format is pptx or pdf; empty uses the configured default.
	Format     models.ExportFormat
	Recipients []string
}

// Generate renders the template into a new artifact and records an Export.
// Document-level failures abort and leave no Export row; field and slide
// level problems degrade per the composer's policy.
func (a *Assembler) Generate(template *models.Template, req Request) (*models.Export, error) {
	format := req.Format
	if format == "" {
		format = a.defaultFormat
	}

	var canvas DocumentCanvas
	switch format {
	case models.ExportFormatPPTX:
		canvas = NewPPTXCanvas()
	case models.ExportFormatPDF:
		canvas = NewPDFCanvas()
	default:
		return nil, fmt.Errorf("%q: %w", req.Format, ErrUnsupportedFormat)
	}

	slides := SortSlides(template.Slides)
	for _, field := range template.Fields {
		if field.SlideIndex < 0 || field.SlideIndex >= len(slides) {
			return nil, fmt.Errorf("field %q references slide %d of %d: %w",
				field.Name, field.SlideIndex, len(slides), ErrFieldSlideIndex)
		}
	}

	for _, slide := range slides {
		a.composer.Compose(canvas.AddSlide(), slide, template.Fields, req.Values)
	}

	userDir := filepath.Join(a.exportDir, fmt.Sprintf("user_%d", template.UserID))
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	fileName := fmt.Sprintf("%s_%d.%s", sanitizeName(template.Name), time.Now().UnixMilli(), format)
	filePath := filepath.Join(userDir, fileName)

	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}
	if err := canvas.Write(f); err != nil {
		f.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("close artifact: %w", err)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	export := &models.Export{
		UserID:     template.UserID,
		TemplateID: template.ID,
		FilePath:   filePath,
		FileName:   fileName,
		FileSize:   info.Size(),
		Format:     format,
		ExportDate: time.Now(),
		Values:     models.JSON(req.Values),
		Recipients: req.Recipients,
		Status:     models.ExportStatusSuccess,
	}
	if err := a.exports.CreateExport(export); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("record export: %w", err)
	}

	a.mirrorArtifact(template.UserID, fileName, filePath)

	a.logger.WithFields(logrus.Fields{
		"template_id": template.ID,
		"format":      format,
		"slides":      len(slides),
		"file":        fileName,
		"bytes":       info.Size(),
	}).Info("export generated")

	return export, nil
}

// mirrorArtifact uploads the artifact to object storage. Best-effort; the
// local file already is the source of truth.
func (a *Assembler) mirrorArtifact(userID uint, fileName, filePath string) {
	if a.store == nil {
		return
	}
	f, err := os.Open(filePath)
	if err != nil {
		a.logger.WithError(err).Warn("open artifact for upload")
		return
	}
	defer f.Close()

	objectPath := fmt.Sprintf("exports/%d/%s", userID, fileName)
	if _, err := a.store.Upload(objectPath, f); err != nil {
		a.logger.WithFields(logrus.Fields{
			"object": objectPath,
		}).WithError(err).Warn("artifact upload failed")
	}
}

func sanitizeName(name string) string {
	cleaned := unsafeNameChars.ReplaceAllString(name, "_")
	if cleaned == "" {
		cleaned = "template"
	}
	return cleaned
}
