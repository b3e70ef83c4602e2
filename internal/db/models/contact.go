package models

import "time"

// ContactStatus tracks the handling state of a contact request.
type ContactStatus string

const (
	// ContactStatusNew marks a contact request that has not been read yet.
	ContactStatusNew ContactStatus = "new"
	// ContactStatusRead marks a contact request that has been read.
	ContactStatusRead ContactStatus = "read"
	// ContactStatusReplied marks a contact request that has been answered.
	ContactStatusReplied ContactStatus = "replied"
)

// Contact represents a contact form submission from the public site.
type Contact struct {
	ID        uint64        `gorm:"primaryKey"                            json:"id"`
	Name      string        `gorm:"size:255;not null"                     json:"name"`
	Email     string        `gorm:"size:255;not null"                     json:"email"`
	Phone     string        `gorm:"size:50"                               json:"phone,omitempty"`
	Subject   string        `gorm:"size:255"                              json:"subject,omitempty"`
	Message   string        `gorm:"type:text;not null"                    json:"message"`
	Status    ContactStatus `gorm:"type:varchar(20);not null;default:new" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ValidContactStatus reports whether s is a known contact status.
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied:
		return true
	}

	return false
}
