package services

import (
	"testing"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbService, err := NewSqliteDBService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbService.Close() })
	return dbService.GetDB()
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Name: "Test User"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTemplate(t *testing.T, db *gorm.DB, userID uint, name string) *models.Template {
	t.Helper()
	template := &models.Template{UserID: userID, Name: name, Status: models.TemplateStatusUploaded}
	require.NoError(t, db.Create(template).Error)
	return template
}

func TestMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, model := range []interface{}{
		&models.User{}, &models.Template{}, &models.Slide{},
		&models.Field{}, &models.Category{}, &models.Export{},
	} {
		require.True(t, db.Migrator().HasTable(model))
	}
}
