// Package listing provides the shared pagination plumbing for list queries.
// Every entity list computes a total via a count query mirroring the same
// filter predicate, then fetches one page with LIMIT/OFFSET.
package listing

import (
	"errors"
	"math"

	"gorm.io/gorm"
)

const (
	// DefaultPage is used when no page parameter is supplied.
	DefaultPage = 1
	// DefaultLimit is used when no limit parameter is supplied.
	DefaultLimit = 10
	// MaxLimit caps the page size a caller can request.
	MaxLimit = 100
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Pagination describes one page of a list result.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Page is one page of records plus its pagination envelope.
type Page[T any] struct {
	Data       []T
	Pagination Pagination
}

// Normalize clamps page and limit to sane bounds.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return page, limit
}

// Find runs the count and page queries for the given filtered query.
// The query must already carry its Model and Where clauses; order is the
// ORDER BY expression applied to the page query only.
func Find[T any](query *gorm.DB, page, limit int, order string) (*Page[T], error) {
	if query == nil {
		return nil, ErrDBNil
	}

	page, limit = Normalize(page, limit)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	data := make([]T, 0, limit)

	result := query.Session(&gorm.Session{}).
		Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&data)
	if result.Error != nil {
		return nil, result.Error
	}

	return &Page[T]{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}
