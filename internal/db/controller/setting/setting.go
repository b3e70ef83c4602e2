// Package setting provides CRUD operations for the typed key-value settings
// store. Values are stored as text; the type tag on each row drives coercion
// to and from native values.
package setting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/koi-garden/koi-garden-api/internal/db/models"
)

const (
	keyQueryPattern = "key = ?"

	// KeySiteName stores the public site name.
	KeySiteName = "site_name"
	// KeySocialLinks stores the social media link map as JSON.
	KeySocialLinks = "social_links"

	// DefaultSiteName is returned when no site_name setting exists.
	DefaultSiteName = "Cảnh Quan Kiến Trúc Xanh"
)

// ContactKeys are the settings that make up the public contact info block.
var ContactKeys = []string{"contact_phone", "contact_email", "contact_address"}

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to create/update a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting whose key is taken.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrInvalidSettingType is returned for a type tag outside string/number/boolean/json.
	ErrInvalidSettingType = errors.New("invalid setting type")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its ID.
func Get(db *gorm.DB, id uint64) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Setting
	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &s, nil
}

// GetByKey retrieves a setting by its unique key.
func GetByKey(db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var s models.Setting
	result := db.Where(keyQueryPattern, key).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &s, nil
}

// GetAll retrieves all settings ordered by key.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	result := db.Order("key ASC").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// GetMultipleByKeys fetches the given keys in one query and returns a
// key to decoded-value map. Missing keys are simply absent from the map.
func GetMultipleByKeys(db *gorm.DB, keys []string) (map[string]any, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	values := make(map[string]any, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	var settings []models.Setting
	result := db.Where("key IN ?", keys).Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range settings {
		values[settings[i].Key] = settings[i].ParsedValue()
	}

	return values, nil
}

// Create inserts a new setting. The key must not already exist; the unique
// constraint is the authoritative guard and surfaces as ErrSettingAlreadyExists.
func Create(db *gorm.DB, key string, value any, typ models.SettingType, description string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	typ, err := normalizeType(typ)
	if err != nil {
		return nil, err
	}

	s := &models.Setting{
		Key:         key,
		Value:       models.StringifyValue(value, typ),
		Type:        typ,
		Description: description,
	}

	result := db.Create(s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSettingAlreadyExists
		}

		return nil, result.Error
	}

	return s, nil
}

// UpsertByKey inserts the setting or overwrites the existing row's value and
// type in one atomic insert-or-update-on-conflict statement keyed on the
// unique key column.
func UpsertByKey(db *gorm.DB, key string, value any, typ models.SettingType) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	typ, err := normalizeType(typ)
	if err != nil {
		return nil, err
	}

	s := &models.Setting{
		Key:   key,
		Value: models.StringifyValue(value, typ),
		Type:  typ,
	}

	result := db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
		},
		clause.Returning{},
	).Create(s)
	if result.Error != nil {
		return nil, result.Error
	}

	return s, nil
}

// UpdateByKey overwrites the value (and optionally the type) of an existing
// key. When typ is empty the stored type is inherited via a read before the
// write; the two steps are not atomic, a concurrent type change between them
// is an accepted race for low-contention admin data.
func UpdateByKey(db *gorm.DB, key string, value any, typ models.SettingType) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var s models.Setting
	result := db.Where(keyQueryPattern, key).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	if typ == "" {
		typ = s.Type
	}

	typ, err := normalizeType(typ)
	if err != nil {
		return nil, err
	}

	s.Value = models.StringifyValue(value, typ)
	s.Type = typ

	result = db.Save(&s)
	if result.Error != nil {
		return nil, result.Error
	}

	return &s, nil
}

// Update overwrites an existing setting by ID, including its key.
func Update(db *gorm.DB, id uint64, key string, value any, typ models.SettingType, description string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	typ, err := normalizeType(typ)
	if err != nil {
		return nil, err
	}

	var s models.Setting
	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	s.Key = key
	s.Value = models.StringifyValue(value, typ)
	s.Type = typ
	s.Description = description

	result = db.Save(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSettingAlreadyExists
		}

		return nil, result.Error
	}

	return &s, nil
}

// Delete removes a setting by ID and returns the deleted row.
func Delete(db *gorm.DB, id uint64) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Setting
	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	result = db.Delete(&models.Setting{}, id)
	if result.Error != nil {
		return nil, result.Error
	}

	return &s, nil
}

// CheckKeyExists reports whether a key is already taken, optionally ignoring
// one row (for updates of that same row).
func CheckKeyExists(db *gorm.DB, key string, excludeID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}
	if key == "" {
		return false, ErrSettingKeyEmpty
	}

	query := db.Model(&models.Setting{}).Where(keyQueryPattern, key)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetSiteName returns the configured site name or the default.
func GetSiteName(db *gorm.DB) (string, error) {
	s, err := GetByKey(db, KeySiteName)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return DefaultSiteName, nil
		}

		return "", err
	}

	if name, ok := s.ParsedValue().(string); ok && name != "" {
		return name, nil
	}

	return DefaultSiteName, nil
}

// SetSiteName stores the site name.
func SetSiteName(db *gorm.DB, name string) (*models.Setting, error) {
	return UpsertByKey(db, KeySiteName, name, models.SettingTypeString)
}

// GetContactInfo returns the contact phone/email/address settings.
func GetContactInfo(db *gorm.DB) (map[string]any, error) {
	return GetMultipleByKeys(db, ContactKeys)
}

// GetSocialLinks returns the social link map, empty when unset.
func GetSocialLinks(db *gorm.DB) (map[string]any, error) {
	s, err := GetByKey(db, KeySocialLinks)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return map[string]any{}, nil
		}

		return nil, err
	}

	if links, ok := s.ParsedValue().(map[string]any); ok {
		return links, nil
	}

	return map[string]any{}, nil
}

// SetSocialLinks stores the social link map as a json setting.
func SetSocialLinks(db *gorm.DB, links map[string]any) (*models.Setting, error) {
	return UpsertByKey(db, KeySocialLinks, links, models.SettingTypeJSON)
}

func normalizeType(typ models.SettingType) (models.SettingType, error) {
	if typ == "" {
		return models.SettingTypeString, nil
	}

	if !models.ValidSettingType(typ) {
		return "", ErrInvalidSettingType
	}

	return typ, nil
}
