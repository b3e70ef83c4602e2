package models

import "time"

// Service represents a landscaping service offered by the company.
type Service struct {
	ID          uint64     `gorm:"primaryKey"               json:"id"`
	Name        string     `gorm:"size:255;not null"        json:"name"`
	Slug        string     `gorm:"unique;size:255;not null" json:"slug"`
	Title       string     `gorm:"size:255;not null"        json:"title"`
	Description string     `gorm:"type:text;not null"       json:"description"`
	Icon        string     `gorm:"size:100"                 json:"icon,omitempty"`
	ImageURL    string     `gorm:"type:text"                json:"image_url,omitempty"`
	ImageHint   string     `gorm:"type:text"                json:"image_hint,omitempty"`
	Details     StringList `gorm:"type:text"                json:"details,omitempty"`
	Benefits    StringList `gorm:"type:text"                json:"benefits,omitempty"`
	Process     StringList `gorm:"type:text"                json:"process,omitempty"`
	Pricing     StringList `gorm:"type:text"                json:"pricing,omitempty"`
	IsActive    bool       `gorm:"not null"    json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
