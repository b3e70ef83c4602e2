package user

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/user"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
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

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	app := fiber.New()

	var s Service
	s.Init(app, &config.Config{}, db)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	u, err := controller.Create(db, &models.User{
		Name:     "Admin",
		Email:    email,
		Role:     models.RoleAdmin,
		IsActive: true,
	}, password)
	require.NoError(t, err)

	return u
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, handler.Envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	var env handler.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp, env
}

func TestLogin(t *testing.T) {
	app, db := setupApp(t)
	seedUser(t, db, "admin@example.com", "secret123")

	resp, env := doJSON(t, app, http.MethodPost, Path+"/login",
		`{"email":"admin@example.com","password":"secret123"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", data["email"])
	assert.NotContains(t, data, "password")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, db := setupApp(t)
	seedUser(t, db, "admin@example.com", "secret123")

	inactive := seedUser(t, db, "gone@example.com", "secret123")
	_, err := controller.ToggleActive(db, inactive.ID)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"admin@example.com","password":"wrong9999"}`},
		{"unknown email", `{"email":"nobody@example.com","password":"secret123"}`},
		{"inactive user", `{"email":"gone@example.com","password":"secret123"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := doJSON(t, app, http.MethodPost, Path+"/login", tc.body)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Equal(t, MsgInvalidCredentials, env.Message)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	app, _ := setupApp(t)

	resp, env := doJSON(t, app, http.MethodPost, Path+"/login",
		`{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Errors)
}

func TestCreateDuplicateEmail(t *testing.T) {
	app, db := setupApp(t)
	seedUser(t, db, "admin@example.com", "secret123")

	resp, env := doJSON(t, app, http.MethodPost, Path,
		`{"name":"Other","email":"admin@example.com","password":"secret123"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already exists", env.Message)
}

func TestChangePasswordEndpoint(t *testing.T) {
	app, db := setupApp(t)
	u := seedUser(t, db, "admin@example.com", "secret123")

	resp, env := doJSON(t, app, http.MethodPatch, Path+"/1/change-password",
		`{"current_password":"wrong9999","new_password":"brandnew1"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Current password is incorrect", env.Message)

	resp, env = doJSON(t, app, http.MethodPatch, Path+"/1/change-password",
		`{"current_password":"secret123","new_password":"brandnew1"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	_, err := controller.Authenticate(db, u.Email, "brandnew1")
	assert.NoError(t, err)
}
