package models

import "time"

// CompanyInfo holds the single company profile record shown on the site.
type CompanyInfo struct {
	ID            uint64    `gorm:"primaryKey"        json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   string    `gorm:"type:text"         json:"description,omitempty"`
	Address       string    `gorm:"type:text"         json:"address,omitempty"`
	Phone         string    `gorm:"size:50"           json:"phone,omitempty"`
	Email         string    `gorm:"size:255"          json:"email,omitempty"`
	Website       string    `gorm:"size:255"          json:"website,omitempty"`
	SocialMedia   JSONMap   `gorm:"type:text"         json:"social_media,omitempty"`
	BusinessHours JSONMap   `gorm:"type:text"         json:"business_hours,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
