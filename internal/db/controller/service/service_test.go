package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Service{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedService(t *testing.T, db *gorm.DB, title, slug string, active bool) *models.Service {
	t.Helper()

	svc, err := Create(db, &models.Service{
		Title:       title,
		Slug:        slug,
		Description: title + " description",
		IsActive:    active,
	})
	require.NoError(t, err)

	return svc
}

func TestCreateMirrorsTitleIntoName(t *testing.T) {
	db := setupTestDB(t)

	svc := seedService(t, db, "Koi Pond Design", "koi-pond-design", true)
	assert.Equal(t, "Koi Pond Design", svc.Name)
	assert.NotZero(t, svc.ID)
}

func TestCreateDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)

	seedService(t, db, "Koi Pond Design", "koi-pond-design", true)

	_, err := Create(db, &models.Service{
		Title:       "Another",
		Slug:        "koi-pond-design",
		Description: "d",
	})
	assert.ErrorIs(t, err, ErrSlugAlreadyExists)
}

func TestGetBySlugActiveOnly(t *testing.T) {
	db := setupTestDB(t)

	seedService(t, db, "Visible", "visible", true)
	seedService(t, db, "Hidden", "hidden", false)

	svc, err := GetBySlug(db, "visible")
	require.NoError(t, err)
	assert.Equal(t, "Visible", svc.Title)

	_, err = GetBySlug(db, "hidden")
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = GetBySlug(db, "missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetAllSearch(t *testing.T) {
	db := setupTestDB(t)

	seedService(t, db, "Koi Pond Design", "koi-pond-design", true)
	seedService(t, db, "Lawn Care", "lawn-care", true)
	seedService(t, db, "Pond Maintenance", "pond-maintenance", false)

	// Case-insensitive match over title and description.
	page, err := GetAll(db, 1, 10, false, "POND")
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)

	// Search and active filter combine with AND.
	page, err = GetAll(db, 1, 10, true, "pond")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, "Koi Pond Design", page.Data[0].Title)
}

func TestUpdateOverwritesAllColumns(t *testing.T) {
	db := setupTestDB(t)

	svc := seedService(t, db, "Old Title", "old-slug", true)

	updated, err := Update(db, svc.ID, &models.Service{
		Title:       "New Title",
		Slug:        "new-slug",
		Description: "new description",
		Details:     models.StringList{"a", "b"},
		IsActive:    false,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "New Title", updated.Name)
	assert.Equal(t, "new-slug", updated.Slug)
	assert.False(t, updated.IsActive)

	// Omitted optional fields are cleared, not merged.
	assert.Empty(t, updated.Icon)
}

func TestUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := Update(db, 99999, &models.Service{Title: "x", Slug: "x"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestToggleActive(t *testing.T) {
	db := setupTestDB(t)

	svc := seedService(t, db, "Koi Pond Design", "koi-pond-design", true)

	toggled, err := ToggleActive(db, svc.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = ToggleActive(db, svc.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	_, err = ToggleActive(db, 99999)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeleteReturnsRow(t *testing.T) {
	db := setupTestDB(t)

	svc := seedService(t, db, "Koi Pond Design", "koi-pond-design", true)

	deleted, err := Delete(db, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, svc.ID, deleted.ID)

	_, err = Get(db, svc.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCheckSlugExists(t *testing.T) {
	db := setupTestDB(t)

	svc := seedService(t, db, "Koi Pond Design", "koi-pond-design", true)

	exists, err := CheckSlugExists(db, "koi-pond-design", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// A row does not collide with its own slug.
	exists, err = CheckSlugExists(db, "koi-pond-design", svc.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = CheckSlugExists(db, "missing", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNilDB(t *testing.T) {
	_, err := Get(nil, 1)
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = GetAll(nil, 1, 10, false, "")
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = Create(nil, &models.Service{})
	assert.ErrorIs(t, err, ErrDBNil)
}
