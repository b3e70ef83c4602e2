package setting

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

	// Migrate the schema
	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGetByKey(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seed          *models.Setting
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			key:           "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:          "successful get",
			dbParam:       db,
			key:           KeySiteName,
			seed:          &models.Setting{Key: KeySiteName, Value: "My Site", Type: models.SettingTypeString},
			expectedValue: "My Site",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seed != nil {
				require.NoError(t, tc.dbParam.Create(tc.seed).Error)
			}

			s, err := GetByKey(tc.dbParam, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, s)
			} else {
				require.NoError(t, err)
				require.NotNil(t, s)
				assert.Equal(t, tc.key, s.Key)
				assert.Equal(t, tc.expectedValue, s.Value)
			}
		})
	}
}

func TestCreateDuplicateKeyConflicts(t *testing.T) {
	db := setupTestDB(t)

	first, err := Create(db, "site_name", "First", models.SettingTypeString, "")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// Second create with the same key must conflict, not overwrite.
	_, err = Create(db, "site_name", "Second", models.SettingTypeString, "")
	require.ErrorIs(t, err, ErrSettingAlreadyExists)

	stored, err := GetByKey(db, "site_name")
	require.NoError(t, err)
	assert.Equal(t, "First", stored.Value)

	var count int64
	db.Model(&models.Setting{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateInvalidType(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "k", "v", models.SettingType("float"), "")
	require.ErrorIs(t, err, ErrInvalidSettingType)
}

func TestUpsertByKey(t *testing.T) {
	db := setupTestDB(t)

	// First upsert inserts.
	s, err := UpsertByKey(db, "maintenance_mode", true, models.SettingTypeBoolean)
	require.NoError(t, err)
	require.NotZero(t, s.ID)
	assert.Equal(t, "true", s.Value)

	// Second upsert with the same key overwrites value and type in place.
	s2, err := UpsertByKey(db, "maintenance_mode", "off", models.SettingTypeString)
	require.NoError(t, err)
	assert.Equal(t, s.ID, s2.ID)
	assert.Equal(t, "off", s2.Value)
	assert.Equal(t, models.SettingTypeString, s2.Type)

	var count int64
	db.Model(&models.Setting{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertByKeyIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := UpsertByKey(db, "posts_per_page", 10, models.SettingTypeNumber)
	require.NoError(t, err)

	second, err := UpsertByKey(db, "posts_per_page", 10, models.SettingTypeNumber)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.Type, second.Type)

	var count int64
	db.Model(&models.Setting{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertByKeyDefaultsToString(t *testing.T) {
	db := setupTestDB(t)

	s, err := UpsertByKey(db, "greeting", "hi", "")
	require.NoError(t, err)
	assert.Equal(t, models.SettingTypeString, s.Type)
}

func TestUpdateByKey(t *testing.T) {
	db := setupTestDB(t)

	_, err := UpdateByKey(db, "missing", "x", "")
	require.ErrorIs(t, err, ErrSettingNotFound)

	_, err = Create(db, "posts_per_page", 10, models.SettingTypeNumber, "")
	require.NoError(t, err)

	// Omitted type inherits the stored one.
	s, err := UpdateByKey(db, "posts_per_page", 25, "")
	require.NoError(t, err)
	assert.Equal(t, models.SettingTypeNumber, s.Type)
	assert.Equal(t, "25", s.Value)

	// Explicit type overrides.
	s, err = UpdateByKey(db, "posts_per_page", "lots", models.SettingTypeString)
	require.NoError(t, err)
	assert.Equal(t, models.SettingTypeString, s.Type)
	assert.Equal(t, "lots", s.Value)
}

func TestGetMultipleByKeys(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "contact_email", "info@example.com", models.SettingTypeString, "")
	require.NoError(t, err)
	_, err = Create(db, "posts_per_page", 10, models.SettingTypeNumber, "")
	require.NoError(t, err)

	values, err := GetMultipleByKeys(db, []string{"contact_email", "posts_per_page", "missing"})
	require.NoError(t, err)

	// Missing keys are absent, present keys come back decoded.
	assert.Len(t, values, 2)
	assert.Equal(t, "info@example.com", values["contact_email"])
	assert.Equal(t, 10.0, values["posts_per_page"])
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	_, err := Delete(db, 12345)
	require.ErrorIs(t, err, ErrSettingNotFound)

	created, err := Create(db, "tmp", "v", models.SettingTypeString, "")
	require.NoError(t, err)

	deleted, err := Delete(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "tmp", deleted.Key)

	_, err = GetByKey(db, "tmp")
	require.ErrorIs(t, err, ErrSettingNotFound)
}

func TestCheckKeyExists(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "site_name", "x", models.SettingTypeString, "")
	require.NoError(t, err)

	exists, err := CheckKeyExists(db, "site_name", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// Excluding the row's own id makes the check pass for updates.
	exists, err = CheckKeyExists(db, "site_name", created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = CheckKeyExists(db, "other", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSiteNameHelpers(t *testing.T) {
	db := setupTestDB(t)

	// Without a stored value the default is returned.
	name, err := GetSiteName(db)
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteName, name)

	_, err = SetSiteName(db, "Koi Garden")
	require.NoError(t, err)

	name, err = GetSiteName(db)
	require.NoError(t, err)
	assert.Equal(t, "Koi Garden", name)
}

func TestSocialLinksRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	links := map[string]any{"facebook": "https://fb.example", "zalo": "0900123456"}

	_, err := SetSocialLinks(db, links)
	require.NoError(t, err)

	stored, err := GetSocialLinks(db)
	require.NoError(t, err)
	assert.Equal(t, links, stored)
}
