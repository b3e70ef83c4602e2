// Package contact provides CRUD operations for contact form submissions.
package contact

import (
	"errors"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

var (
	// ErrContactNotFound is returned when a contact is not found.
	ErrContactNotFound = errors.New("contact not found")
	// ErrInvalidStatus is returned for a status outside new/read/replied.
	ErrInvalidStatus = errors.New("invalid contact status")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// StatusCount is one bucket of the per-status histogram.
type StatusCount struct {
	Status models.ContactStatus `json:"status"`
	Count  int64                `json:"count"`
}

// Create inserts a new contact request; an empty status defaults to new.
func Create(db *gorm.DB, c *models.Contact) (*models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if c.Status == "" {
		c.Status = models.ContactStatusNew
	}

	if !models.ValidContactStatus(c.Status) {
		return nil, ErrInvalidStatus
	}

	result := db.Create(c)
	if result.Error != nil {
		return nil, result.Error
	}

	return c, nil
}

// GetAll returns one page of contacts, optionally filtered by status.
func GetAll(db *gorm.DB, page, limit int, status models.ContactStatus) (*listing.Page[models.Contact], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Contact{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	return listing.Find[models.Contact](query, page, limit, "created_at DESC")
}

// Get retrieves a contact by ID.
func Get(db *gorm.DB, id uint64) (*models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Contact
	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}

		return nil, result.Error
	}

	return &c, nil
}

// Update overwrites all mutable columns of a contact. Callers supply the
// complete field set; partial input is not merged.
func Update(db *gorm.DB, id uint64, data *models.Contact) (*models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if data.Status != "" && !models.ValidContactStatus(data.Status) {
		return nil, ErrInvalidStatus
	}

	c, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	c.Name = data.Name
	c.Email = data.Email
	c.Phone = data.Phone
	c.Subject = data.Subject
	c.Message = data.Message
	if data.Status != "" {
		c.Status = data.Status
	}

	result := db.Save(c)
	if result.Error != nil {
		return nil, result.Error
	}

	return c, nil
}

// UpdateStatus sets the handling status of a contact in one statement.
func UpdateStatus(db *gorm.DB, id uint64, status models.ContactStatus) (*models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if !models.ValidContactStatus(status) {
		return nil, ErrInvalidStatus
	}

	result := db.Model(&models.Contact{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrContactNotFound
	}

	return Get(db, id)
}

// Delete removes a contact and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	c, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.Contact{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return c, nil
}

// StatusCounts returns the number of contacts per status.
func StatusCounts(db *gorm.DB) ([]StatusCount, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var counts []StatusCount
	result := db.Model(&models.Contact{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}
