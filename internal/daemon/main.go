// Package daemon assembles the application: database connection and
// pool bounds, schema creation, seed data and the web service.
package daemon

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	"github.com/koi-garden/koi-garden-api/internal/db/dsn"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// WaitShutdown blocks until a termination signal arrives and then drains
// the web service.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormpostgres.Open(dsn.Create(cfg))

	db, err := gorm.Open(dbDriver, &gorm.Config{
		// map driver unique-violation codes onto gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to access connection pool")
		return nil
	}

	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DB.ConnMaxIdleTime) * time.Second)

	// idempotent schema creation, no migration versioning
	if err = db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.Service{},
		&models.Project{},
		&models.Post{},
		&models.Testimonial{},
		&models.Contact{},
		&models.HeroSlide{},
		&models.CompanyInfo{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
