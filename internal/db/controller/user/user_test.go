package user

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

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	u, err := Create(db, &models.User{
		Email:    email,
		Name:     "Test User",
		Role:     models.RoleEditor,
		IsActive: true,
	}, password)
	require.NoError(t, err)

	return u
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	u := seedUser(t, db, "a@example.com", "secret123")
	assert.NotZero(t, u.ID)

	// The returned record never carries the hash.
	assert.Empty(t, u.Password)

	// The stored column holds a hash that verifies, not the plaintext.
	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, models.VerifyPassword("secret123", stored.Password))
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "a@example.com", "secret123")

	_, err := Create(db, &models.User{
		Email:    "a@example.com",
		Name:     "Other",
		Role:     models.RoleEditor,
		IsActive: true,
	}, "other456")
	require.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "a@example.com", "secret123")

	inactive := seedUser(t, db, "b@example.com", "secret123")
	_, err := ToggleActive(db, inactive.ID)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{name: "valid", email: "a@example.com", password: "secret123"},
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			password:      "secret123",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "wrong password",
			email:         "a@example.com",
			password:      "wrong",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "inactive user",
			email:         "b@example.com",
			password:      "secret123",
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := Authenticate(db, tc.email, tc.password)

			if tc.expectedError != nil {
				// Unknown email, wrong password and inactive account are
				// indistinguishable to the caller.
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, u)
			} else {
				require.NoError(t, err)
				require.NotNil(t, u)
				assert.Equal(t, tc.email, u.Email)
				assert.Empty(t, u.Password)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "a@example.com", "oldpass123")

	_, err := ChangePassword(db, 99999, "oldpass123", "newpass123")
	require.ErrorIs(t, err, ErrUserNotFound)

	// Wrong current password: distinct error, stored hash untouched.
	_, err = ChangePassword(db, u.ID, "wrongcurrent", "newpass123")
	require.ErrorIs(t, err, ErrCurrentPasswordIncorrect)

	loggedIn, err := Authenticate(db, "a@example.com", "oldpass123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, loggedIn.ID)

	// Correct current password: new one takes effect.
	_, err = ChangePassword(db, u.ID, "oldpass123", "newpass123")
	require.NoError(t, err)

	_, err = Authenticate(db, "a@example.com", "oldpass123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "a@example.com", "newpass123")
	require.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "a@example.com", "oldpass123")

	// Admin reset does not require the current password.
	_, err := UpdatePassword(db, u.ID, "resetpass123")
	require.NoError(t, err)

	_, err = Authenticate(db, "a@example.com", "resetpass123")
	require.NoError(t, err)

	_, err = UpdatePassword(db, 99999, "whatever123")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateDoesNotTouchPassword(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "a@example.com", "secret123")

	updated, err := Update(db, u.ID, &models.User{
		Email:    "renamed@example.com",
		Name:     "Renamed",
		Role:     models.RoleAdmin,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", updated.Email)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Empty(t, updated.Password)

	_, err = Authenticate(db, "renamed@example.com", "secret123")
	require.NoError(t, err)
}

func TestGetAllStripsPasswords(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "a@example.com", "secret123")
	seedUser(t, db, "b@example.com", "secret123")

	page, err := GetAll(db, 1, 10, false)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)

	for _, u := range page.Data {
		assert.Empty(t, u.Password)
	}
}

func TestCheckEmailExists(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "a@example.com", "secret123")

	exists, err := CheckEmailExists(db, "a@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = CheckEmailExists(db, "a@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = CheckEmailExists(db, "other@example.com", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}
