package generate

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/sirupsen/logrus"
)

// FieldRenderer draws one field's resolved value onto a slide canvas.
// Rendering errors are logged and the field is skipped; a bad field never
// fails the document.
type FieldRenderer struct {
	logger *logrus.Logger
}

// NewFieldRenderer creates a FieldRenderer.
func NewFieldRenderer(logger *logrus.Logger) *FieldRenderer {
	return &FieldRenderer{logger: logger}
}

// ResolveValue looks up the field's value: submitted value, then the field
// default, then empty string.
func ResolveValue(field models.Field, values map[string]interface{}) interface{} {
	if v, ok := values[field.Name]; ok && v != nil {
		return v
	}
	if field.DefaultValue != "" {
		return field.DefaultValue
	}
	return ""
}

// IsTruthy reports whether a checkbox value means "checked". JSON numbers
// arrive as float64.
func IsTruthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true" || val == "1"
	case int:
		return val == 1
	case float64:
		return val == 1
	default:
		return false
	}
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Render draws the field on the canvas. The canvas belongs to the slide the
// field's slide_index names; the caller has already validated that.
func (r *FieldRenderer) Render(canvas SlideCanvas, field models.Field, values map[string]interface{}) {
	if err := r.render(canvas, field, values); err != nil {
		r.logger.WithFields(logrus.Fields{
			"template_id": field.TemplateID,
			"slide_index": field.SlideIndex,
			"field":       field.Name,
			"type":        field.Type,
		}).WithError(err).Warn("skipping field")
	}
}

func (r *FieldRenderer) render(canvas SlideCanvas, field models.Field, values map[string]interface{}) error {
	pageW, pageH := canvas.PageSize()
	box, err := NewMapper(pageW, pageH).MapBox(field.PositionX, field.PositionY, field.Width, field.Height)
	if err != nil {
		return err
	}

	value := ResolveValue(field, values)

	switch field.Type {
	case models.FieldTypeText, models.FieldTypeDate:
		return canvas.DrawText(stringValue(value), box)

	case models.FieldTypeCheckbox:
		if !IsTruthy(value) {
			return nil
		}
		return canvas.DrawCheckmark(box)

	case models.FieldTypeImage:
		data, format, err := loadImageValue(stringValue(value))
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"field": field.Name,
			}).WithError(err).Warn("image unresolvable, drawing placeholder")
			return canvas.DrawWarning("Image unavailable", box)
		}
		return canvas.DrawImage(data, format, box)

	default:
		return fmt.Errorf("unknown field type %q", field.Type)
	}
}

// loadImageValue reads an image from a base64 data URI or a filesystem path
// and sniffs its format.
func loadImageValue(value string) ([]byte, string, error) {
	if value == "" {
		return nil, "", fmt.Errorf("no image value")
	}

	var data []byte
	if strings.HasPrefix(value, "data:") {
		idx := strings.Index(value, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		decoded, err := base64.StdEncoding.DecodeString(value[idx+1:])
		if err != nil {
			return nil, "", fmt.Errorf("decode data URI: %w", err)
		}
		data = decoded
	} else {
		read, err := os.ReadFile(value)
		if err != nil {
			return nil, "", fmt.Errorf("read image file: %w", err)
		}
		data = read
	}

	format, err := sniffImageFormat(data)
	if err != nil {
		return nil, "", err
	}
	return data, format, nil
}

func sniffImageFormat(data []byte) (string, error) {
	if len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n" {
		return "png", nil
	}
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "jpeg", nil
	}
	return "", fmt.Errorf("unsupported image format")
}
