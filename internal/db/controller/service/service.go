// Package service provides CRUD operations for landscaping services.
package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

const slugQueryPattern = "slug = ?"

var (
	// ErrServiceNotFound is returned when a service is not found.
	ErrServiceNotFound = errors.New("service not found")
	// ErrSlugAlreadyExists is returned when the slug is already taken.
	ErrSlugAlreadyExists = errors.New("slug already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new service. The name column mirrors the title.
func Create(db *gorm.DB, svc *models.Service) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	svc.Name = svc.Title

	result := db.Create(svc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugAlreadyExists
		}

		return nil, result.Error
	}

	return svc, nil
}

// GetAll returns one page of services. Filters: active-only and an ILIKE
// substring search over title and description, combined with AND.
func GetAll(db *gorm.DB, page, limit int, activeOnly bool, search string) (*listing.Page[models.Service], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Service{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return listing.Find[models.Service](query, page, limit, "created_at DESC")
}

// Get retrieves a service by ID.
func Get(db *gorm.DB, id uint64) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var svc models.Service
	result := db.First(&svc, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}

		return nil, result.Error
	}

	return &svc, nil
}

// GetBySlug retrieves an active service by its slug.
func GetBySlug(db *gorm.DB, slug string) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var svc models.Service
	result := db.Where(slugQueryPattern, slug).Where("is_active = ?", true).First(&svc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}

		return nil, result.Error
	}

	return &svc, nil
}

// Update overwrites all mutable columns of a service. Callers supply the
// complete field set; partial input is not merged.
func Update(db *gorm.DB, id uint64, data *models.Service) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	svc, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	svc.Name = data.Title
	svc.Slug = data.Slug
	svc.Title = data.Title
	svc.Description = data.Description
	svc.Icon = data.Icon
	svc.ImageURL = data.ImageURL
	svc.ImageHint = data.ImageHint
	svc.Details = data.Details
	svc.Benefits = data.Benefits
	svc.Process = data.Process
	svc.Pricing = data.Pricing
	svc.IsActive = data.IsActive

	result := db.Save(svc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugAlreadyExists
		}

		return nil, result.Error
	}

	return svc, nil
}

// Delete removes a service and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	svc, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.Service{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return svc, nil
}

// ToggleActive flips the is_active flag in one statement.
func ToggleActive(db *gorm.DB, id uint64) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.Service{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrServiceNotFound
	}

	return Get(db, id)
}

// CheckSlugExists reports whether a slug is already taken, optionally
// ignoring one row. This is a best-effort pre-check; the unique constraint
// remains the authoritative guard.
func CheckSlugExists(db *gorm.DB, slug string, excludeID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	query := db.Model(&models.Service{}).Where(slugQueryPattern, slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
