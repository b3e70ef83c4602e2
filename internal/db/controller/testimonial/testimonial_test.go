package testimonial

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

	err = db.AutoMigrate(&models.Testimonial{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedTestimonial(t *testing.T, db *gorm.DB, author string, rating int, active bool) *models.Testimonial {
	t.Helper()

	tm, err := Create(db, &models.Testimonial{
		Quote:    "Hồ cá tuyệt đẹp",
		Author:   author,
		Location: "Hà Nội",
		Rating:   rating,
		IsActive: active,
	})
	require.NoError(t, err)

	return tm
}

func TestCreateAndGet(t *testing.T) {
	db := setupTestDB(t)

	tm := seedTestimonial(t, db, "Anh Minh", 5, true)
	assert.NotZero(t, tm.ID)

	got, err := Get(db, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anh Minh", got.Author)
	assert.Equal(t, 5, got.Rating)

	_, err = Get(db, 99999)
	assert.ErrorIs(t, err, ErrTestimonialNotFound)
}

func TestGetAllActiveFilter(t *testing.T) {
	db := setupTestDB(t)

	seedTestimonial(t, db, "Anh Minh", 5, true)
	seedTestimonial(t, db, "Chị Lan", 4, true)
	seedTestimonial(t, db, "Bác Hùng", 3, false)

	page, err := GetAll(db, 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.Total)

	page, err = GetAll(db, 1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestGetRandom(t *testing.T) {
	db := setupTestDB(t)

	seedTestimonial(t, db, "Anh Minh", 5, true)
	seedTestimonial(t, db, "Chị Lan", 4, true)
	seedTestimonial(t, db, "Bác Hùng", 3, false)

	// Inactive rows never appear.
	got, err := GetRandom(db, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, tm := range got {
		assert.True(t, tm.IsActive)
	}

	got, err = GetRandom(db, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Non-positive counts fall back to the default of three.
	got, err = GetRandom(db, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRatingStats(t *testing.T) {
	db := setupTestDB(t)

	seedTestimonial(t, db, "Anh Minh", 5, true)
	seedTestimonial(t, db, "Chị Lan", 5, true)
	seedTestimonial(t, db, "Cô Hoa", 4, true)
	seedTestimonial(t, db, "Bác Hùng", 1, false)

	stats, err := RatingStats(db)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Highest rating first, inactive rows excluded.
	assert.Equal(t, RatingCount{Rating: 5, Count: 2}, stats[0])
	assert.Equal(t, RatingCount{Rating: 4, Count: 1}, stats[1])
}

func TestUpdateOverwritesAllColumns(t *testing.T) {
	db := setupTestDB(t)

	tm := seedTestimonial(t, db, "Anh Minh", 5, true)
	tm.ImageURL = "https://example.com/a.jpg"
	require.NoError(t, db.Save(tm).Error)

	updated, err := Update(db, tm.ID, &models.Testimonial{
		Quote:    "Dịch vụ chu đáo",
		Author:   "Chị Lan",
		Location: "Đà Nẵng",
		Rating:   4,
		IsActive: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chị Lan", updated.Author)
	assert.Equal(t, 4, updated.Rating)
	assert.False(t, updated.IsActive)

	// Omitted optional fields are cleared, not merged.
	assert.Empty(t, updated.ImageURL)

	_, err = Update(db, 99999, &models.Testimonial{Quote: "x", Author: "x"})
	assert.ErrorIs(t, err, ErrTestimonialNotFound)
}

func TestToggleActive(t *testing.T) {
	db := setupTestDB(t)

	tm := seedTestimonial(t, db, "Anh Minh", 5, true)

	toggled, err := ToggleActive(db, tm.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = ToggleActive(db, tm.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	_, err = ToggleActive(db, 99999)
	assert.ErrorIs(t, err, ErrTestimonialNotFound)
}

func TestDeleteReturnsRow(t *testing.T) {
	db := setupTestDB(t)

	tm := seedTestimonial(t, db, "Anh Minh", 5, true)

	deleted, err := Delete(db, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, tm.ID, deleted.ID)

	_, err = Get(db, tm.ID)
	assert.ErrorIs(t, err, ErrTestimonialNotFound)
}

func TestNilDB(t *testing.T) {
	_, err := Get(nil, 1)
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = GetRandom(nil, 3)
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = RatingStats(nil)
	assert.ErrorIs(t, err, ErrDBNil)
}
