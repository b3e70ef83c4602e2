// Package companyinfo provides CRUD operations for the company profile.
package companyinfo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

var (
	// ErrCompanyInfoNotFound is returned when no company info record exists.
	ErrCompanyInfoNotFound = errors.New("company info not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new company info record.
func Create(db *gorm.DB, info *models.CompanyInfo) (*models.CompanyInfo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Create(info)
	if result.Error != nil {
		return nil, result.Error
	}

	return info, nil
}

// GetAll returns every company info record, newest first.
func GetAll(db *gorm.DB) ([]models.CompanyInfo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var infos []models.CompanyInfo
	result := db.Order("created_at DESC").Find(&infos)
	if result.Error != nil {
		return nil, result.Error
	}

	return infos, nil
}

// Get retrieves a company info record by ID.
func Get(db *gorm.DB, id uint64) (*models.CompanyInfo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var info models.CompanyInfo
	result := db.First(&info, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyInfoNotFound
		}

		return nil, result.Error
	}

	return &info, nil
}

// GetCurrent returns the most recently created company info record.
func GetCurrent(db *gorm.DB) (*models.CompanyInfo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var info models.CompanyInfo
	result := db.Order("created_at DESC").First(&info)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyInfoNotFound
		}

		return nil, result.Error
	}

	return &info, nil
}

// Update overwrites all mutable columns of a company info record. Callers
// supply the complete field set; partial input is not merged.
func Update(db *gorm.DB, id uint64, data *models.CompanyInfo) (*models.CompanyInfo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	info, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	info.Name = data.Name
	info.Description = data.Description
	info.Address = data.Address
	info.Phone = data.Phone
	info.Email = data.Email
	info.Website = data.Website
	info.SocialMedia = data.SocialMedia
	info.BusinessHours = data.BusinessHours

	result := db.Save(info)
	if result.Error != nil {
		return nil, result.Error
	}

	return info, nil
}

// Delete removes a company info record and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.CompanyInfo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	info, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.CompanyInfo{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return info, nil
}
