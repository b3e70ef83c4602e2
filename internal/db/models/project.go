package models

import "time"

// Project represents a completed landscaping or koi pond project shown in
// the portfolio.
type Project struct {
	ID        uint64    `gorm:"primaryKey"            json:"id"`
	Title     string    `gorm:"size:255;not null"     json:"title"`
	Category  string    `gorm:"size:100;not null"     json:"category"`
	Style     string    `gorm:"size:100"              json:"style,omitempty"`
	Location  string    `gorm:"size:255;not null"     json:"location"`
	Cost      string    `gorm:"size:100"              json:"cost,omitempty"`
	Date      string    `gorm:"size:20"               json:"date,omitempty"`
	ImageURL  string    `gorm:"type:text"             json:"image_url,omitempty"`
	ImageHint string    `gorm:"type:text"             json:"image_hint,omitempty"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
