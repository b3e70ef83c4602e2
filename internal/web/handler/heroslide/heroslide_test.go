package heroslide

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
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.HeroSlide{})
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

func seedSlide(t *testing.T, db *gorm.DB, title string, order int) *models.HeroSlide {
	t.Helper()

	slide := &models.HeroSlide{
		Title:      title,
		ImageURL:   "https://example.com/" + title + ".jpg",
		OrderIndex: order,
		IsActive:   true,
	}
	require.NoError(t, db.Create(slide).Error)

	return slide
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

func TestReorderEndpoint(t *testing.T) {
	app, db := setupApp(t)

	first := seedSlide(t, db, "first", 1)
	second := seedSlide(t, db, "second", 2)

	resp, env := doJSON(t, app, http.MethodPatch, Path+"/reorder",
		`{"slides":[{"id":1,"order":2},{"id":2,"order":1}]}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	// Rows come back in request order, each with its new position.
	rows, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	row0, ok := rows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(first.ID), row0["id"])
	assert.Equal(t, 2.0, row0["order"])

	row1, ok := rows[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(second.ID), row1["id"])
	assert.Equal(t, 1.0, row1["order"])
}

func TestReorderUnknownIDLeavesOrderUntouched(t *testing.T) {
	app, db := setupApp(t)

	seedSlide(t, db, "first", 1)
	seedSlide(t, db, "second", 2)

	resp, env := doJSON(t, app, http.MethodPatch, Path+"/reorder",
		`{"slides":[{"id":1,"order":2},{"id":99999,"order":1}]}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Hero slide not found", env.Message)

	// The whole batch rolled back, including the valid pair.
	var first models.HeroSlide
	require.NoError(t, db.First(&first, 1).Error)
	assert.Equal(t, 1, first.OrderIndex)
}

func TestReorderEmptyBatch(t *testing.T) {
	app, _ := setupApp(t)

	resp, env := doJSON(t, app, http.MethodPatch, Path+"/reorder", `{"slides":[]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Errors)
}

func TestListReturnsDisplayOrder(t *testing.T) {
	app, db := setupApp(t)

	seedSlide(t, db, "second", 2)
	seedSlide(t, db, "first", 1)

	resp, env := doJSON(t, app, http.MethodGet, Path, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(2), env.Pagination.Total)

	rows, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	row0, ok := rows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "first", row0["title"])
}

func TestUpdateOrderEndpoint(t *testing.T) {
	app, db := setupApp(t)

	slide := seedSlide(t, db, "only", 1)

	resp, env := doJSON(t, app, http.MethodPatch, Path+"/1/order", `{"order":7}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	require.NoError(t, db.First(slide, slide.ID).Error)
	assert.Equal(t, 7, slide.OrderIndex)
}

func TestGetUnknownID(t *testing.T) {
	app, _ := setupApp(t)

	resp, env := doJSON(t, app, http.MethodGet, Path+"/42", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)

	resp, env = doJSON(t, app, http.MethodGet, Path+"/not-a-number", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, handler.MsgInvalidID, env.Message)
}
