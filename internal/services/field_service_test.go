package services

import (
	"testing"

	"github.com/deckfill/deckfill/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateFieldValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFieldService(db)
	user := createTestUser(t, db, "alice@example.com")
	template := createTestTemplate(t, db, user.ID, "Deck")

	negative := -10.0
	tests := []struct {
		name    string
		field   models.Field
		wantErr error
	}{
		{"bad name", models.Field{Name: "has spaces"}, ErrInvalidFieldName},
		{"empty name", models.Field{Name: ""}, ErrInvalidFieldName},
		{"bad type", models.Field{Name: "ok", Type: "dropdown"}, ErrInvalidFieldType},
		{"negative x", models.Field{Name: "ok", PositionX: -1}, ErrNegativePosition},
		{"negative y", models.Field{Name: "ok", PositionY: -0.5}, ErrNegativePosition},
		{"negative width", models.Field{Name: "ok", Width: &negative}, ErrNegativeSize},
		{"negative height", models.Field{Name: "ok", Height: &negative}, ErrNegativeSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.field.TemplateID = template.ID
			err := svc.CreateField(user.ID, &tt.field)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateFieldDefaultsTypeToText(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFieldService(db)
	user := createTestUser(t, db, "alice@example.com")
	template := createTestTemplate(t, db, user.ID, "Deck")

	field := &models.Field{TemplateID: template.ID, Name: "title"}
	require.NoError(t, svc.CreateField(user.ID, field))
	assert.Equal(t, models.FieldTypeText, field.Type)
}

func TestFieldOwnershipGuard(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFieldService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	template := createTestTemplate(t, db, alice.ID, "Deck")

	field := &models.Field{TemplateID: template.ID, Name: "title"}
	err := svc.CreateField(bob.ID, field)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, svc.CreateField(alice.ID, field))
	_, err = svc.ListFields(bob.ID, template.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFieldCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFieldService(db)
	user := createTestUser(t, db, "alice@example.com")
	template := createTestTemplate(t, db, user.ID, "Deck")

	width := 300.0
	field := &models.Field{
		TemplateID: template.ID,
		SlideIndex: 1,
		Name:       "subtitle",
		Type:       models.FieldTypeText,
		PositionX:  120.5,
		PositionY:  80.25,
		Width:      &width,
	}
	require.NoError(t, svc.CreateField(user.ID, field))

	got, err := svc.GetFieldByID(user.ID, template.ID, field.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.5, got.PositionX)
	require.NotNil(t, got.Width)
	assert.Equal(t, 300.0, *got.Width)
	assert.Nil(t, got.Height)

	got.Label = "Subtitle"
	require.NoError(t, svc.UpdateField(user.ID, got))

	fields, err := svc.ListFields(user.ID, template.ID)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Subtitle", fields[0].Label)

	require.NoError(t, svc.DeleteField(user.ID, template.ID, field.ID))
	err = svc.DeleteField(user.ID, template.ID, field.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
