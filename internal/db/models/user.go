// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Role represents the access level of an admin user.
type Role string

const (
	// RoleAdmin grants full access to the admin panel.
	RoleAdmin Role = "admin"
	// RoleEditor grants content editing access only.
	RoleEditor Role = "editor"
)

// User represents an admin panel account.
// The password column holds an Argon2id hash and is excluded from JSON
// output; only the dedicated auth lookup reads it.
type User struct {
	ID        uint64    `gorm:"primaryKey"                               json:"id"`
	Email     string    `gorm:"unique;size:255;not null"                 json:"email"`
	Password  string    `gorm:"size:255;not null"                        json:"-"`
	Name      string    `gorm:"size:255;not null"                        json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null;default:editor" json:"role"`
	IsActive  bool      `gorm:"not null"                    json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole reports whether r is a known user role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleEditor
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against a stored Argon2id hash.
// It uses constant-time comparison to prevent timing attacks.
func VerifyPassword(password, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

// VerifyPassword verifies a plaintext password against the user's stored hash.
func (u *User) VerifyPassword(password string) bool {
	return VerifyPassword(password, u.Password)
}
