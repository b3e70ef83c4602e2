// Package user provides CRUD and authentication operations for admin
// accounts. Password hashes never leave this package except through
// GetByEmailForAuth, the dedicated login lookup.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

const emailQueryPattern = "email = ?"

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists is returned when the email is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrCurrentPasswordIncorrect is returned by ChangePassword when the
	// supplied current password does not match the stored hash.
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	// ErrInvalidCredentials is returned by Authenticate for an unknown email
	// and for a wrong password alike, so callers cannot tell which emails
	// are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new user, hashing the plaintext password before storage.
// The returned row never includes the hash.
func Create(db *gorm.DB, u *models.User, password string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if u.Role == "" {
		u.Role = models.RoleAdmin
	}

	u.Password = models.HashPassword(password)

	result := db.Create(u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}

		return nil, result.Error
	}

	u.Password = ""

	return u, nil
}

// GetAll returns one page of users without password hashes.
func GetAll(db *gorm.DB, page, limit int, activeOnly bool) (*listing.Page[models.User], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.User{}).Omit("password")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	users, err := listing.Find[models.User](query, page, limit, "created_at DESC")
	if err != nil {
		return nil, err
	}

	for i := range users.Data {
		users.Data[i].Password = ""
	}

	return users, nil
}

// Get retrieves a user by ID, without the password hash.
func Get(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	u.Password = ""

	return &u, nil
}

// GetByEmailForAuth is the only read path that returns the password hash.
// It is restricted to active users.
func GetByEmailForAuth(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Where(emailQueryPattern, email).Where("is_active = ?", true).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// Authenticate verifies the email/password pair against active users.
// Unknown email and wrong password both return ErrInvalidCredentials; the
// returned profile never includes the hash.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	u, err := GetByEmailForAuth(db, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !u.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	u.Password = ""

	return u, nil
}

// Update overwrites the mutable profile columns of a user. The password is
// not touched here; see UpdatePassword and ChangePassword.
func Update(db *gorm.DB, id uint64, data *models.User) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	u.Email = data.Email
	u.Name = data.Name
	u.Role = data.Role
	u.IsActive = data.IsActive

	result = db.Save(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}

		return nil, result.Error
	}

	u.Password = ""

	return &u, nil
}

// UpdatePassword sets a new password without checking the old one (admin
// reset path).
func UpdatePassword(db *gorm.DB, id uint64, newPassword string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.User{}).
		Where("id = ?", id).
		Update("password", models.HashPassword(newPassword))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return Get(db, id)
}

// ChangePassword verifies the current password before storing a new hash.
// A wrong current password leaves the stored hash unchanged.
func ChangePassword(db *gorm.DB, id uint64, currentPassword, newPassword string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	if !u.VerifyPassword(currentPassword) {
		return nil, ErrCurrentPasswordIncorrect
	}

	return UpdatePassword(db, id, newPassword)
}

// Delete removes a user and returns the deleted row without the hash.
func Delete(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	u, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return u, nil
}

// ToggleActive flips the is_active flag in one statement.
func ToggleActive(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return Get(db, id)
}

// CheckEmailExists reports whether an email is already taken, optionally
// ignoring one row. Best-effort pre-check; the unique constraint remains
// the authoritative guard.
func CheckEmailExists(db *gorm.DB, email string, excludeID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	query := db.Model(&models.User{}).Where(emailQueryPattern, email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
