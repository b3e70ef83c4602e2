// Package testimonial provides CRUD operations for customer testimonials.
package testimonial

import (
	"errors"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

var (
	// ErrTestimonialNotFound is returned when a testimonial is not found.
	ErrTestimonialNotFound = errors.New("testimonial not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// RatingCount is one bucket of the rating histogram.
type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// Create inserts a new testimonial.
func Create(db *gorm.DB, t *models.Testimonial) (*models.Testimonial, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Create(t)
	if result.Error != nil {
		return nil, result.Error
	}

	return t, nil
}

// GetAll returns one page of testimonials, optionally restricted to active
// ones.
func GetAll(db *gorm.DB, page, limit int, activeOnly bool) (*listing.Page[models.Testimonial], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Testimonial{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	return listing.Find[models.Testimonial](query, page, limit, "created_at DESC")
}

// GetRandom returns up to count random active testimonials.
func GetRandom(db *gorm.DB, count int) ([]models.Testimonial, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if count < 1 {
		count = 3
	}

	testimonials := make([]models.Testimonial, 0, count)

	result := db.Where("is_active = ?", true).
		Order("RANDOM()").
		Limit(count).
		Find(&testimonials)
	if result.Error != nil {
		return nil, result.Error
	}

	return testimonials, nil
}

// RatingStats returns the count of active testimonials per rating value.
func RatingStats(db *gorm.DB) ([]RatingCount, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var stats []RatingCount
	result := db.Model(&models.Testimonial{}).
		Select("rating, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("rating").
		Order("rating DESC").
		Scan(&stats)
	if result.Error != nil {
		return nil, result.Error
	}

	return stats, nil
}

// Get retrieves a testimonial by ID.
func Get(db *gorm.DB, id uint64) (*models.Testimonial, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var t models.Testimonial
	result := db.First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTestimonialNotFound
		}

		return nil, result.Error
	}

	return &t, nil
}

// Update overwrites all mutable columns of a testimonial. Callers supply
// the complete field set; partial input is not merged.
func Update(db *gorm.DB, id uint64, data *models.Testimonial) (*models.Testimonial, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	t, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	t.Quote = data.Quote
	t.Author = data.Author
	t.Location = data.Location
	t.Rating = data.Rating
	t.ImageURL = data.ImageURL
	t.ImageHint = data.ImageHint
	t.IsActive = data.IsActive

	result := db.Save(t)
	if result.Error != nil {
		return nil, result.Error
	}

	return t, nil
}

// Delete removes a testimonial and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.Testimonial, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	t, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.Testimonial{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return t, nil
}

// ToggleActive flips the is_active flag in one statement.
func ToggleActive(db *gorm.DB, id uint64) (*models.Testimonial, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.Testimonial{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTestimonialNotFound
	}

	return Get(db, id)
}
