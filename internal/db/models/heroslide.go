package models

import "time"

// HeroSlide represents one slide of the homepage hero carousel.
// OrderIndex determines display sequence ascending; ties are broken by
// CreatedAt descending. Duplicate order values are permitted.
type HeroSlide struct {
	ID         uint64    `gorm:"primaryKey"            json:"id"`
	Title      string    `gorm:"size:255;not null"     json:"title"`
	Description string   `gorm:"type:text;not null"    json:"description"`
	ButtonText string    `gorm:"size:100;not null"     json:"button_text"`
	ButtonLink string    `gorm:"size:255;not null"     json:"button_link"`
	ImageURL   string    `gorm:"type:text;not null"    json:"image_url"`
	ImageHint  string    `gorm:"type:text"             json:"image_hint,omitempty"`
	OrderIndex int       `gorm:"not null"    json:"order"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
