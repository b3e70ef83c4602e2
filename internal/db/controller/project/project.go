// Package project provides CRUD operations for portfolio projects.
package project

import (
	"errors"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new project.
func Create(db *gorm.DB, p *models.Project) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Create(p)
	if result.Error != nil {
		return nil, result.Error
	}

	return p, nil
}

// GetAll returns one page of projects, optionally filtered to active ones
// and/or a category.
func GetAll(db *gorm.DB, page, limit int, category string, activeOnly bool) (*listing.Page[models.Project], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Project{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if category != "" {
		query = query.Where("category = ?", category)
	}

	return listing.Find[models.Project](query, page, limit, "created_at DESC")
}

// Get retrieves a project by ID.
func Get(db *gorm.DB, id uint64) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Project
	result := db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, result.Error
	}

	return &p, nil
}

// Update overwrites all mutable columns of a project. Callers supply the
// complete field set; partial input is not merged.
func Update(db *gorm.DB, id uint64, data *models.Project) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	p.Title = data.Title
	p.Category = data.Category
	p.Style = data.Style
	p.Location = data.Location
	p.Cost = data.Cost
	p.Date = data.Date
	p.ImageURL = data.ImageURL
	p.ImageHint = data.ImageHint
	p.IsActive = data.IsActive

	result := db.Save(p)
	if result.Error != nil {
		return nil, result.Error
	}

	return p, nil
}

// Delete removes a project and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return p, nil
}

// ToggleActive flips the is_active flag in one statement.
func ToggleActive(db *gorm.DB, id uint64) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.Project{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProjectNotFound
	}

	return Get(db, id)
}

// Categories returns the distinct non-empty project categories.
func Categories(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var categories []string
	result := db.Model(&models.Project{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// Styles returns the distinct non-empty project styles.
func Styles(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var styles []string
	result := db.Model(&models.Project{}).
		Where("style <> ''").
		Distinct().
		Order("style ASC").
		Pluck("style", &styles)
	if result.Error != nil {
		return nil, result.Error
	}

	return styles, nil
}
