package generate

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// Minimal valid PNG (1x1 transparent pixel).
var tinyPNG = mustDecodeBase64("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func mustDecodeBase64(s string) []byte {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return data
}

func TestResolveValue(t *testing.T) {
	field := models.Field{Name: "title", DefaultValue: "Fallback"}

	assert.Equal(t, "Submitted", ResolveValue(field, map[string]interface{}{"title": "Submitted"}))
	assert.Equal(t, "Fallback", ResolveValue(field, map[string]interface{}{}))
	assert.Equal(t, "Fallback", ResolveValue(field, map[string]interface{}{"title": nil}))

	field.DefaultValue = ""
	assert.Equal(t, "", ResolveValue(field, map[string]interface{}{}))
}

func TestIsTruthy(t *testing.T) {
	truthy := []interface{}{true, "true", "1", 1, float64(1)}
	for _, v := range truthy {
		assert.True(t, IsTruthy(v), "%v should be truthy", v)
	}

	falsy := []interface{}{false, "false", "0", "yes", 0, float64(0), nil, 2}
	for _, v := range falsy {
		assert.False(t, IsTruthy(v), "%v should be falsy", v)
	}
}

func TestRenderTextField(t *testing.T) {
	renderer := NewFieldRenderer(testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	field := models.Field{Name: "title", Type: models.FieldTypeText, PositionX: 96, PositionY: 54}
	renderer.Render(slide, field, map[string]interface{}{"title": "Hello"})

	require.Len(t, slide.ops, 1)
	assert.Equal(t, "text", slide.ops[0].kind)
	assert.Equal(t, "Hello", slide.ops[0].text)
	assert.InDelta(t, 1.0, slide.ops[0].box.X, 1e-9)
}

func TestRenderMissingValueDrawsEmptyString(t *testing.T) {
	renderer := NewFieldRenderer(testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	field := models.Field{Name: "subtitle", Type: models.FieldTypeText}
	renderer.Render(slide, field, map[string]interface{}{})

	require.Len(t, slide.ops, 1)
	assert.Equal(t, "text", slide.ops[0].kind)
	assert.Equal(t, "", slide.ops[0].text)
}

func TestRenderCheckbox(t *testing.T) {
	renderer := NewFieldRenderer(testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	checked := models.Field{Name: "approved", Type: models.FieldTypeCheckbox}
	renderer.Render(slide, checked, map[string]interface{}{"approved": true})
	require.Len(t, slide.ops, 1)
	assert.Equal(t, "checkmark", slide.ops[0].kind)

	// Falsy values draw nothing.
	unchecked := &fakeSlide{pageW: 10, pageH: 5.625}
	renderer.Render(unchecked, checked, map[string]interface{}{"approved": false})
	assert.Empty(t, unchecked.ops)
}

func TestRenderImageFromFile(t *testing.T) {
	renderer := NewFieldRenderer(testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	imagePath := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(imagePath, tinyPNG, 0644))

	field := models.Field{Name: "logo", Type: models.FieldTypeImage}
	renderer.Render(slide, field, map[string]interface{}{"logo": imagePath})

	require.Len(t, slide.ops, 1)
	assert.Equal(t, "image", slide.ops[0].kind)
	assert.Equal(t, "png", slide.ops[0].format)
}

func TestRenderImageFromDataURI(t *testing.T) {
	renderer := NewFieldRenderer(testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)
	field := models.Field{Name: "logo", Type: models.FieldTypeImage}
	renderer.Render(slide, field, map[string]interface{}{"logo": uri})

	require.Len(t, slide.ops, 1)
	assert.Equal(t, "image", slide.ops[0].kind)
}

func TestRenderUnresolvableImageDrawsPlaceholder(t *testing.T) {
	renderer := NewFieldRenderer(testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	field := models.Field{Name: "logo", Type: models.FieldTypeImage}
	renderer.Render(slide, field, map[string]interface{}{"logo": "/nonexistent/logo.png"})

	require.Len(t, slide.ops, 1)
	assert.Equal(t, "warning", slide.ops[0].kind)
	assert.Equal(t, "Image unavailable", slide.ops[0].text)
}

func TestRenderNegativePositionSkipsField(t *testing.T) {
	renderer := NewFieldRenderer(testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	field := models.Field{Name: "bad", Type: models.FieldTypeText, PositionX: -5}
	renderer.Render(slide, field, map[string]interface{}{"bad": "x"})

	assert.Empty(t, slide.ops)
}
