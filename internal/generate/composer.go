package generate

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/sirupsen/logrus"
)

// SlideComposer applies a slide's background image and renders the fields
// belonging to it.
type SlideComposer struct {
	renderer *FieldRenderer
	// uploadRoot is stripped from recorded paths as a fallback when the
	// working directory changed since conversion.
	uploadRoot string
	logger     *logrus.Logger
}

// NewSlideComposer creates a SlideComposer.
func NewSlideComposer(renderer *FieldRenderer, uploadRoot string, logger *logrus.Logger) *SlideComposer {
	return &SlideComposer{renderer: renderer, uploadRoot: uploadRoot, logger: logger}
}

// SortSlides orders slides by ascending slide_index. Database return order
// is not trusted.
func SortSlides(slides []models.Slide) []models.Slide {
	sorted := make([]models.Slide, len(slides))
	copy(sorted, slides)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SlideIndex < sorted[j].SlideIndex
	})
	return sorted
}

// Compose draws one slide: background first, then every field whose
// slide_index matches. A missing background degrades to a blank slide with
// a visible warning instead of aborting.
func (c *SlideComposer) Compose(canvas SlideCanvas, slide models.Slide, fields []models.Field, values map[string]interface{}) {
	if path, ok := c.resolveBackground(slide); ok {
		if err := canvas.SetBackground(path); err != nil {
			c.logger.WithFields(logrus.Fields{
				"template_id": slide.TemplateID,
				"slide_index": slide.SlideIndex,
				"image_path":  path,
			}).WithError(err).Warn("background draw failed")
			c.drawMissingBackground(canvas)
		}
	} else {
		c.logger.WithFields(logrus.Fields{
			"template_id": slide.TemplateID,
			"slide_index": slide.SlideIndex,
			"image_path":  slide.ImagePath,
		}).Warn("slide image not found")
		c.drawMissingBackground(canvas)
	}

	for _, field := range fields {
		if field.SlideIndex != slide.SlideIndex {
			continue
		}
		c.renderer.Render(canvas, field, values)
	}
}

func (c *SlideComposer) drawMissingBackground(canvas SlideCanvas) {
	pageW, pageH := canvas.PageSize()
	box, _ := NewMapper(pageW, pageH).MapBox(20, 20, nil, nil)
	//nolint:errcheck // warning on a blank slide is best-effort
	canvas.DrawWarning("Slide image not available", box)
}

// resolveBackground tries the recorded path, then the path with the upload
// root stripped, then a same-named file in the slide's image directory.
func (c *SlideComposer) resolveBackground(slide models.Slide) (string, bool) {
	if slide.ImagePath == "" {
		return "", false
	}

	candidates := []string{slide.ImagePath}
	if c.uploadRoot != "" {
		stripped := strings.TrimPrefix(slide.ImagePath, c.uploadRoot+string(filepath.Separator))
		stripped = strings.TrimPrefix(stripped, c.uploadRoot+"/")
		if stripped != slide.ImagePath {
			candidates = append(candidates, stripped)
		}
		candidates = append(candidates, filepath.Join(c.uploadRoot, filepath.Base(filepath.Dir(slide.ImagePath)), filepath.Base(slide.ImagePath)))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
