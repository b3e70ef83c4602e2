package post

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

	err = db.AutoMigrate(&models.Post{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func newPost(slug string) *models.Post {
	return &models.Post{
		Slug:     slug,
		Title:    "Chăm sóc cá koi mùa hè",
		Content:  "body",
		Author:   "admin",
		Category: "koi",
	}
}

func TestCreateStampsPublishedAt(t *testing.T) {
	db := setupTestDB(t)

	draft, err := Create(db, newPost("draft"))
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	published := newPost("published")
	published.IsPublished = true

	p, err := Create(db, published)
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
}

func TestCreateDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, newPost("same"))
	require.NoError(t, err)

	_, err = Create(db, newPost("same"))
	require.ErrorIs(t, err, ErrSlugAlreadyExists)
}

// The first unpublish/republish cycle must keep the original publish
// timestamp instead of refreshing it.
func TestTogglePublishedPreservesTimestamp(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, newPost("cycle"))
	require.NoError(t, err)
	require.Nil(t, p.PublishedAt)

	// false -> true stamps now.
	p, err = TogglePublished(db, p.ID)
	require.NoError(t, err)
	require.True(t, p.IsPublished)
	require.NotNil(t, p.PublishedAt)

	firstPublish := *p.PublishedAt

	// true -> false keeps the stamp.
	p, err = TogglePublished(db, p.ID)
	require.NoError(t, err)
	require.False(t, p.IsPublished)
	require.NotNil(t, p.PublishedAt)

	// false -> true again: the original stamp is preserved.
	p, err = TogglePublished(db, p.ID)
	require.NoError(t, err)
	require.True(t, p.IsPublished)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, firstPublish.Unix(), p.PublishedAt.Unix())
}

func TestTogglePublishedNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := TogglePublished(db, 99999)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetBySlugPublishedOnly(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, newPost("draft"))
	require.NoError(t, err)

	p, err := GetBySlug(db, "draft", false)
	require.NoError(t, err)
	assert.Equal(t, "draft", p.Slug)

	_, err = GetBySlug(db, "draft", true)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestSearch(t *testing.T) {
	db := setupTestDB(t)

	koi := newPost("koi-care")
	koi.Title = "Hướng dẫn nuôi cá koi"
	_, err := Create(db, koi)
	require.NoError(t, err)

	garden := newPost("garden-design")
	garden.Title = "Thiết kế sân vườn"
	_, err = Create(db, garden)
	require.NoError(t, err)

	// Case-insensitive substring match over title, excerpt and content.
	page, err := Search(db, 1, 10, "KOI", false)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "koi-care", page.Data[0].Slug)

	page, err = Search(db, 1, 10, "missing-term", false)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Pagination.Total)
}

func TestTagsDedupedAndSorted(t *testing.T) {
	db := setupTestDB(t)

	a := newPost("a")
	a.Tags = models.StringList{"koi", "pond"}
	_, err := Create(db, a)
	require.NoError(t, err)

	b := newPost("b")
	b.Tags = models.StringList{"garden", "koi"}
	_, err = Create(db, b)
	require.NoError(t, err)

	tags, err := Tags(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"garden", "koi", "pond"}, tags)
}

func TestCategories(t *testing.T) {
	db := setupTestDB(t)

	a := newPost("a")
	a.Category = "koi"
	_, err := Create(db, a)
	require.NoError(t, err)

	b := newPost("b")
	b.Category = "garden"
	_, err = Create(db, b)
	require.NoError(t, err)

	c := newPost("c")
	c.Category = "koi"
	_, err = Create(db, c)
	require.NoError(t, err)

	categories, err := Categories(db)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"koi", "garden"}, categories)
}

func TestUpdatePreservesPublishTimestamp(t *testing.T) {
	db := setupTestDB(t)

	p, err := Create(db, newPost("keep"))
	require.NoError(t, err)

	p, err = TogglePublished(db, p.ID)
	require.NoError(t, err)
	firstPublish := *p.PublishedAt

	// Full-row update while still published must not refresh the stamp.
	upd := newPost("keep")
	upd.Title = "Renamed"
	upd.IsPublished = true

	p, err = Update(db, p.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Title)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, firstPublish.Unix(), p.PublishedAt.Unix())
}
