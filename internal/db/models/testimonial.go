package models

import "time"

// Testimonial represents a customer review with a 1-5 star rating.
type Testimonial struct {
	ID        uint64    `gorm:"primaryKey"            json:"id"`
	Quote     string    `gorm:"type:text;not null"    json:"quote"`
	Author    string    `gorm:"size:255;not null"     json:"author"`
	Location  string    `gorm:"size:255;not null"     json:"location"`
	Rating    int       `gorm:"not null;default:5"    json:"rating"`
	ImageURL  string    `gorm:"type:text"             json:"image_url,omitempty"`
	ImageHint string    `gorm:"type:text"             json:"image_hint,omitempty"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
