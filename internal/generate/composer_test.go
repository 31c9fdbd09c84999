package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSlidesAscending(t *testing.T) {
	slides := []models.Slide{
		{SlideIndex: 2},
		{SlideIndex: 0},
		{SlideIndex: 3},
		{SlideIndex: 1},
	}

	sorted := SortSlides(slides)
	for i, slide := range sorted {
		assert.Equal(t, i, slide.SlideIndex)
	}
	// Input untouched.
	assert.Equal(t, 2, slides[0].SlideIndex)
}

func TestComposeDrawsBackgroundAndMatchingFields(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "slide_0.png")
	require.NoError(t, os.WriteFile(imagePath, tinyPNG, 0644))

	composer := NewSlideComposer(NewFieldRenderer(testLogger()), dir, testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	fields := []models.Field{
		{SlideIndex: 0, Name: "on_slide", Type: models.FieldTypeText},
		{SlideIndex: 1, Name: "other_slide", Type: models.FieldTypeText},
	}
	composer.Compose(slide, models.Slide{SlideIndex: 0, ImagePath: imagePath}, fields, map[string]interface{}{
		"on_slide":    "yes",
		"other_slide": "no",
	})

	assert.Equal(t, imagePath, slide.background)
	require.Len(t, slide.ops, 1)
	assert.Equal(t, "yes", slide.ops[0].text)
}

func TestComposeMissingImageDegradesToWarning(t *testing.T) {
	composer := NewSlideComposer(NewFieldRenderer(testLogger()), t.TempDir(), testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	composer.Compose(slide, models.Slide{SlideIndex: 0, ImagePath: "/gone/slide_0.png"}, nil, nil)

	assert.Empty(t, slide.background)
	require.Len(t, slide.ops, 1)
	assert.Equal(t, "warning", slide.ops[0].kind)
	assert.Equal(t, "Slide image not available", slide.ops[0].text)
}

func TestComposeResolvesRelocatedImage(t *testing.T) {
	// The recorded absolute path is stale; the file lives under the
	// current upload root.
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "template_7"), 0755))
	current := filepath.Join(root, "template_7", "slide_0.png")
	require.NoError(t, os.WriteFile(current, tinyPNG, 0644))

	composer := NewSlideComposer(NewFieldRenderer(testLogger()), root, testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625}

	composer.Compose(slide, models.Slide{
		SlideIndex: 0,
		ImagePath:  "/old/deploy/template_7/slide_0.png",
	}, nil, nil)

	assert.Equal(t, current, slide.background)
}

func TestComposeBackgroundDrawFailure(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "slide_0.png")
	require.NoError(t, os.WriteFile(imagePath, tinyPNG, 0644))

	composer := NewSlideComposer(NewFieldRenderer(testLogger()), dir, testLogger())
	slide := &fakeSlide{pageW: 10, pageH: 5.625, bgErr: assert.AnError}

	composer.Compose(slide, models.Slide{SlideIndex: 0, ImagePath: imagePath}, nil, nil)

	require.Len(t, slide.ops, 1)
	assert.Equal(t, "warning", slide.ops[0].kind)
}
