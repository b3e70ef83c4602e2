// Package heroslide provides CRUD and batch reordering for hero carousel
// slides.
package heroslide

import (
	"errors"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

// ListOrder is the fixed ordering of slide list reads: order_index
// ascending with created_at descending as the tie-break.
const ListOrder = "order_index ASC, created_at DESC"

var (
	// ErrSlideNotFound is returned when a slide is not found.
	ErrSlideNotFound = errors.New("hero slide not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// OrderPair is one (id, order) assignment of a reorder batch.
type OrderPair struct {
	ID    uint64 `json:"id"    validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

// Create inserts a new slide.
func Create(db *gorm.DB, slide *models.HeroSlide) (*models.HeroSlide, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Create(slide)
	if result.Error != nil {
		return nil, result.Error
	}

	return slide, nil
}

// GetAll returns one page of slides, optionally restricted to active ones.
func GetAll(db *gorm.DB, page, limit int, activeOnly bool) (*listing.Page[models.HeroSlide], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.HeroSlide{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	return listing.Find[models.HeroSlide](query, page, limit, ListOrder)
}

// Get retrieves a slide by ID.
func Get(db *gorm.DB, id uint64) (*models.HeroSlide, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var slide models.HeroSlide
	result := db.First(&slide, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSlideNotFound
		}

		return nil, result.Error
	}

	return &slide, nil
}

// Update overwrites all mutable columns of a slide. Callers supply the
// complete field set; partial input is not merged.
func Update(db *gorm.DB, id uint64, data *models.HeroSlide) (*models.HeroSlide, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	slide, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	slide.Title = data.Title
	slide.Description = data.Description
	slide.ButtonText = data.ButtonText
	slide.ButtonLink = data.ButtonLink
	slide.ImageURL = data.ImageURL
	slide.ImageHint = data.ImageHint
	slide.OrderIndex = data.OrderIndex
	slide.IsActive = data.IsActive

	result := db.Save(slide)
	if result.Error != nil {
		return nil, result.Error
	}

	return slide, nil
}

// Delete removes a slide and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.HeroSlide, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	slide, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.HeroSlide{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return slide, nil
}

// ToggleActive flips the is_active flag in one statement.
func ToggleActive(db *gorm.DB, id uint64) (*models.HeroSlide, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.HeroSlide{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrSlideNotFound
	}

	return Get(db, id)
}

// UpdateOrder assigns a single slide's order value.
func UpdateOrder(db *gorm.DB, id uint64, order int) (*models.HeroSlide, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.HeroSlide{}).
		Where("id = ?", id).
		Update("order_index", order)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrSlideNotFound
	}

	return Get(db, id)
}

// Reorder applies a batch of (id, order) pairs inside one transaction on a
// dedicated connection: one UPDATE per pair in input order, all applied or
// none. Any failure, including an unknown id, rolls the whole batch back and
// the error is returned unmodified. The transaction runs at the engine's
// default isolation level; two concurrent reorders over overlapping ids can
// interleave.
func Reorder(db *gorm.DB, pairs []OrderPair) ([]models.HeroSlide, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	slides := make([]models.HeroSlide, 0, len(pairs))

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, pair := range pairs {
			result := tx.Model(&models.HeroSlide{}).
				Where("id = ?", pair.ID).
				Update("order_index", pair.Order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrSlideNotFound
			}

			var slide models.HeroSlide
			if err := tx.First(&slide, pair.ID).Error; err != nil {
				return err
			}

			slides = append(slides, slide)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return slides, nil
}
