// Package post provides CRUD operations for blog posts, including the
// publish toggle that stamps published_at exactly once.
package post

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

const slugQueryPattern = "slug = ?"

var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrSlugAlreadyExists is returned when the slug is already taken.
	ErrSlugAlreadyExists = errors.New("slug already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new post. Creating in the published state stamps
// published_at with the current time.
func Create(db *gorm.DB, p *models.Post) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if p.IsPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	result := db.Create(p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugAlreadyExists
		}

		return nil, result.Error
	}

	return p, nil
}

// GetAll returns one page of posts, optionally filtered to published ones
// and/or a category.
func GetAll(db *gorm.DB, page, limit int, category string, publishedOnly bool) (*listing.Page[models.Post], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Post{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if category != "" {
		query = query.Where("category = ?", category)
	}

	return listing.Find[models.Post](query, page, limit, "published_at DESC, created_at DESC")
}

// Search returns one page of posts whose title, excerpt or content contains
// the given text (case insensitive).
func Search(db *gorm.DB, page, limit int, text string, publishedOnly bool) (*listing.Page[models.Post], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Post{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if text = strings.TrimSpace(text); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	return listing.Find[models.Post](query, page, limit, "published_at DESC, created_at DESC")
}

// Get retrieves a post by ID.
func Get(db *gorm.DB, id uint64) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Post
	result := db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, result.Error
	}

	return &p, nil
}

// GetBySlug retrieves a post by its slug, optionally restricted to
// published posts.
func GetBySlug(db *gorm.DB, slug string, publishedOnly bool) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Where(slugQueryPattern, slug)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var p models.Post
	result := query.First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, result.Error
	}

	return &p, nil
}

// Update overwrites all mutable columns of a post. The published_at stamp is
// set only on the unpublished-to-published transition and preserved
// otherwise, so publish cycles keep the original timestamp.
func Update(db *gorm.DB, id uint64, data *models.Post) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if !p.IsPublished && data.IsPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	p.Slug = data.Slug
	p.Title = data.Title
	p.Excerpt = data.Excerpt
	p.Content = data.Content
	p.Author = data.Author
	p.ImageURL = data.ImageURL
	p.ImageHint = data.ImageHint
	p.Category = data.Category
	p.Tags = data.Tags
	p.IsPublished = data.IsPublished

	result := db.Save(p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugAlreadyExists
		}

		return nil, result.Error
	}

	return p, nil
}

// Delete removes a post and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.Post{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return p, nil
}

// TogglePublished flips the is_published flag. The first false-to-true
// transition stamps published_at; later cycles keep the original value.
func TogglePublished(db *gorm.DB, id uint64) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	p.IsPublished = !p.IsPublished
	if p.IsPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	result := db.Save(p)
	if result.Error != nil {
		return nil, result.Error
	}

	return p, nil
}

// Categories returns the distinct non-empty post categories.
func Categories(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var categories []string
	result := db.Model(&models.Post{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// Tags returns the union of tags across all posts, deduplicated and sorted.
func Tags(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var lists []models.StringList
	result := db.Model(&models.Post{}).Pluck("tags", &lists)
	if result.Error != nil {
		return nil, result.Error
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)

	for _, list := range lists {
		for _, tag := range list {
			if _, ok := seen[tag]; ok {
				continue
			}

			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	sort.Strings(tags)

	return tags, nil
}

// CheckSlugExists reports whether a slug is already taken, optionally
// ignoring one row. Best-effort pre-check; the unique constraint remains
// the authoritative guard.
func CheckSlugExists(db *gorm.DB, slug string, excludeID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	query := db.Model(&models.Post{}).Where(slugQueryPattern, slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
