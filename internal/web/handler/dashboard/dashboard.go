// Package dashboard provides the JSON API handlers for the admin
// dashboard aggregations.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/dashboard"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for dashboard endpoints.
const Path = handler.APIRoot + "/dashboard"

// Service provides read-only aggregation handlers.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path+"/stats", s.Stats)
	app.Get(Path+"/monthly-stats", s.MonthlyStats)
	app.Get(Path+"/category-stats", s.CategoryStats)
	app.Get(Path+"/performance-stats", s.PerformanceStats)
	app.Get(Path+"/recent-activities", s.RecentActivities)
}

// Stats returns the per-entity record counts.
func (s *Service) Stats(c *fiber.Ctx) error {
	stats, err := controller.GetStats(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Dashboard stats retrieved successfully", stats)
}

// MonthlyStats returns per-month record counts over the trailing window.
func (s *Service) MonthlyStats(c *fiber.Ctx) error {
	stats, err := controller.GetMonthlyStats(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Monthly stats retrieved successfully", stats)
}

// CategoryStats returns the project category histogram.
func (s *Service) CategoryStats(c *fiber.Ctx) error {
	stats, err := controller.GetCategoryStats(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Category stats retrieved successfully", stats)
}

// PerformanceStats returns per-month revenue estimates and satisfaction
// averages.
func (s *Service) PerformanceStats(c *fiber.Ctx) error {
	stats, err := controller.GetPerformanceStats(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Performance stats retrieved successfully", stats)
}

// RecentActivities returns the interleaved recent-activity feed.
func (s *Service) RecentActivities(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", controller.DefaultActivityLimit)

	activities, err := controller.GetRecentActivities(s.db, limit)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Recent activities retrieved successfully", activities)
}
