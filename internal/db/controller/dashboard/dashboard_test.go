package dashboard

import (
	"testing"
	"time"

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

	err = db.AutoMigrate(
		&models.Service{},
		&models.Project{},
		&models.Post{},
		&models.Testimonial{},
		&models.Contact{},
		&models.User{},
		&models.HeroSlide{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Service{
		Name: "n", Slug: "s", Title: "t", Description: "d", IsActive: true,
	}).Error)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Contact{
			Name: "c", Email: "c@example.com", Message: "m", Status: models.ContactStatusNew,
		}).Error)
	}

	stats, err := GetStats(db)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Services)
	assert.Equal(t, int64(2), stats.Contacts)
	assert.Equal(t, int64(0), stats.Projects)
	assert.Equal(t, int64(0), stats.Users)
}

func TestGetStatsNilDB(t *testing.T) {
	_, err := GetStats(nil)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGetMonthlyStats(t *testing.T) {
	db := setupTestDB(t)

	// One project this month, one far outside the window.
	require.NoError(t, db.Create(&models.Project{
		Title: "now", Category: "koi", Location: "HN", IsActive: true,
	}).Error)

	old := &models.Project{Title: "old", Category: "koi", Location: "HN", IsActive: true}
	old.CreatedAt = time.Now().AddDate(-1, 0, 0)
	require.NoError(t, db.Create(old).Error)

	stats, err := GetMonthlyStats(db)
	require.NoError(t, err)
	require.Len(t, stats, MonthlyWindow)

	var total int64
	for _, m := range stats {
		assert.NotEmpty(t, m.Month)
		total += m.Projects
	}

	// Only the recent project falls into the window.
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), stats[MonthlyWindow-1].Projects)
}

func TestGetPerformanceStats(t *testing.T) {
	db := setupTestDB(t)

	// Two projects and two 5-star testimonials this month, plus rows far
	// outside the window that must not count.
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Project{
			Title: "now", Category: "koi", Location: "HN", IsActive: true,
		}).Error)
		require.NoError(t, db.Create(&models.Testimonial{
			Author: "a", Quote: "q", Location: "HN", Rating: 5, IsActive: true,
		}).Error)
	}

	old := &models.Project{Title: "old", Category: "koi", Location: "HN", IsActive: true}
	old.CreatedAt = time.Now().AddDate(-1, 0, 0)
	require.NoError(t, db.Create(old).Error)

	stats, err := GetPerformanceStats(db)
	require.NoError(t, err)
	require.Len(t, stats, MonthlyWindow)

	current := stats[MonthlyWindow-1]
	assert.Equal(t, int64(2*revenuePerProject), current.Revenue)
	assert.Equal(t, 5.0, current.Satisfaction)

	// Months without data report the fallback figures, not zero.
	empty := stats[0]
	assert.Equal(t, int64(defaultMonthlyRevenue), empty.Revenue)
	assert.Equal(t, defaultSatisfaction, empty.Satisfaction)
}

func TestGetPerformanceStatsRoundsSatisfaction(t *testing.T) {
	db := setupTestDB(t)

	for _, rating := range []int{5, 4, 4} {
		require.NoError(t, db.Create(&models.Testimonial{
			Author: "a", Quote: "q", Location: "HN", Rating: rating, IsActive: true,
		}).Error)
	}

	stats, err := GetPerformanceStats(db)
	require.NoError(t, err)

	// (5+4+4)/3 = 4.333..., rounded to one decimal.
	assert.Equal(t, 4.3, stats[MonthlyWindow-1].Satisfaction)
}

func TestGetCategoryStats(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Project{
			Title: "p", Category: "koi-pond", Location: "HN", IsActive: true,
		}).Error)
	}

	require.NoError(t, db.Create(&models.Project{
		Title: "p", Category: "garden", Location: "HN", IsActive: true,
	}).Error)

	stats, err := GetCategoryStats(db)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Ordered by count descending.
	assert.Equal(t, "koi-pond", stats[0].Name)
	assert.Equal(t, int64(3), stats[0].Value)
	assert.Equal(t, "garden", stats[1].Name)
	assert.Equal(t, int64(1), stats[1].Value)
}

func TestGetRecentActivities(t *testing.T) {
	db := setupTestDB(t)

	contact := &models.Contact{
		Name: "Nguyễn Văn A", Email: "a@example.com", Message: "m",
		Status: models.ContactStatusNew,
	}
	contact.CreatedAt = time.Now().Add(-time.Minute)
	require.NoError(t, db.Create(contact).Error)

	project := &models.Project{Title: "Hồ koi", Category: "koi", Location: "HN", IsActive: true}
	require.NoError(t, db.Create(project).Error)

	// Unpublished posts never show up in the feed.
	require.NoError(t, db.Create(&models.Post{
		Slug: "draft", Title: "Draft", Content: "c", Author: "a", Category: "koi",
	}).Error)

	activities, err := GetRecentActivities(db, 10)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	// Newest first, with sequential ids.
	assert.Equal(t, "project", activities[0].Type)
	assert.Contains(t, activities[0].Message, "Hồ koi")
	assert.Equal(t, 1, activities[0].ID)

	assert.Equal(t, "contact", activities[1].Type)
	assert.Contains(t, activities[1].Message, "Nguyễn Văn A")
	assert.Equal(t, 2, activities[1].ID)
}

func TestGetRecentActivitiesTruncates(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Contact{
			Name: "c", Email: "c@example.com", Message: "m", Status: models.ContactStatusNew,
		}).Error)
	}

	// Per-entity feeds pull at most three records each; the limit then
	// truncates the merged feed.
	activities, err := GetRecentActivities(db, 2)
	require.NoError(t, err)
	assert.Len(t, activities, 2)
}
