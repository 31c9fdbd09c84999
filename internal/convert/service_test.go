package convert

import (
	"context"
	"errors"
	"testing"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/deckfill/deckfill/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	slides []SlideImage
	err    error
}

func (c *fakeConverter) Convert(ctx context.Context, filePath, outputDir string) ([]SlideImage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.slides, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func setupImportTest(t *testing.T, converter Converter) (*ImportService, services.TemplateService, *models.Template) {
	t.Helper()
	dbService, err := services.NewSqliteDBService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbService.Close() })

	db := dbService.GetDB()
	user := &models.User{Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	template := &models.Template{UserID: user.ID, Name: "Deck", Status: models.TemplateStatusUploaded}
	require.NoError(t, db.Create(template).Error)

	templates := services.NewTemplateService(db)
	importer := NewImportService(templates, nil, converter, t.TempDir(), testLogger())
	return importer, templates, template
}

func TestImportPersistsSlidesAndStatus(t *testing.T) {
	converter := &fakeConverter{slides: []SlideImage{
		{SlideIndex: 0, ImagePath: "/img/slide_0.png", Width: 960, Height: 540},
		{SlideIndex: 1, ImagePath: "/img/slide_1.png", Width: 960, Height: 540},
	}}
	importer, templates, template := setupImportTest(t, converter)

	require.NoError(t, importer.Import(context.Background(), template))

	got, err := templates.GetTemplateByID(template.UserID, template.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusConverted, got.Status)
	assert.Equal(t, 2, got.SlideCount)
	require.Len(t, got.Slides, 2)
	assert.Equal(t, "/img/slide_0.png", got.Slides[0].ImagePath)
	assert.Equal(t, 960, got.Slides[0].Width)
}

func TestImportMarksFailure(t *testing.T) {
	converter := &fakeConverter{err: errors.New("corrupt file")}
	importer, templates, template := setupImportTest(t, converter)

	err := importer.Import(context.Background(), template)
	require.Error(t, err)

	got, err := templates.GetTemplateByID(template.UserID, template.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusConversionFailed, got.Status)
	assert.Empty(t, got.Slides)
}

func TestImportReRunReplacesSlides(t *testing.T) {
	converter := &fakeConverter{slides: []SlideImage{
		{SlideIndex: 0, ImagePath: "/img/v1_slide_0.png"},
	}}
	importer, templates, template := setupImportTest(t, converter)
	require.NoError(t, importer.Import(context.Background(), template))

	converter.slides = []SlideImage{
		{SlideIndex: 0, ImagePath: "/img/v2_slide_0.png"},
		{SlideIndex: 1, ImagePath: "/img/v2_slide_1.png"},
	}
	require.NoError(t, importer.Import(context.Background(), template))

	got, err := templates.GetTemplateByID(template.UserID, template.ID)
	require.NoError(t, err)
	require.Len(t, got.Slides, 2)
	assert.Equal(t, "/img/v2_slide_0.png", got.Slides[0].ImagePath)
	assert.Equal(t, 2, got.SlideCount)
}
