package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	"github.com/koi-garden/koi-garden-api/internal/db/controller/setting"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/uniuri"
)

// seedAdminEmail is the login of the generated first admin account.
const seedAdminEmail = "admin@example.com"

func seed(_ *config.Config, db *gorm.DB) {
	seedAdmin(db)
	seedSettings(db)
}

// seedAdmin creates the first admin account with a random password when
// the user table is empty. The password is printed once to the log.
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)

	if count != 0 {
		return
	}

	password := uniuri.NewLen(16)

	result := db.Create(
		&models.User{
			Email:    seedAdminEmail,
			Password: models.HashPassword(password),
			Name:     "Administrator",
			Role:     models.RoleAdmin,
			IsActive: true,
		},
	)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to seed admin user")
		return
	}

	log.Info().
		Str("email", seedAdminEmail).
		Str("password", password).
		Msg("seeded initial admin user, change the password after first login")
}

// seedSettings writes the default settings for keys that do not exist yet.
func seedSettings(db *gorm.DB) {
	defaults := []struct {
		key   string
		value any
		typ   models.SettingType
	}{
		{setting.KeySiteName, setting.DefaultSiteName, models.SettingTypeString},
		{"contact_email", "info@example.com", models.SettingTypeString},
		{"contact_phone", "", models.SettingTypeString},
		{"contact_address", "", models.SettingTypeString},
		{setting.KeySocialLinks, map[string]any{}, models.SettingTypeJSON},
		{"posts_per_page", 10, models.SettingTypeNumber},
		{"maintenance_mode", false, models.SettingTypeBoolean},
	}

	for _, d := range defaults {
		exists, err := setting.CheckKeyExists(db, d.key, 0)
		if err != nil {
			log.Error().Err(err).Str("key", d.key).Msg("failed to check setting")
			continue
		}

		if exists {
			continue
		}

		if _, err := setting.Create(db, d.key, d.value, d.typ, ""); err != nil {
			log.Error().Err(err).Str("key", d.key).Msg("failed to seed setting")
		}
	}
}
