package models

import "time"

// Post represents a blog post.
// PublishedAt is stamped once on the first unpublished-to-published
// transition and preserved across later publish cycles.
type Post struct {
	ID          uint64     `gorm:"primaryKey"               json:"id"`
	Slug        string     `gorm:"unique;size:255;not null" json:"slug"`
	Title       string     `gorm:"size:255;not null"        json:"title"`
	Excerpt     string     `gorm:"type:text"                json:"excerpt,omitempty"`
	Content     string     `gorm:"type:text;not null"       json:"content"`
	Author      string     `gorm:"size:255;not null"        json:"author"`
	ImageURL    string     `gorm:"type:text"                json:"image_url,omitempty"`
	ImageHint   string     `gorm:"type:text"                json:"image_hint,omitempty"`
	Category    string     `gorm:"size:100;not null"        json:"category"`
	Tags        StringList `gorm:"type:text"                json:"tags,omitempty"`
	IsPublished bool       `gorm:"not null"   json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
