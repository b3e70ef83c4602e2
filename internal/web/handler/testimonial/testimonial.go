// Package testimonial provides the JSON API handlers for customer reviews.
package testimonial

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/testimonial"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

const (
	// Path is the base path for testimonial endpoints.
	Path = handler.APIRoot + "/testimonials"

	// DefaultRandomCount bounds the random sample size.
	DefaultRandomCount = 3
)

// Service provides CRUD handlers for testimonials.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
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
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Get(Path+"/random", s.Random)
	app.Get(Path+"/stats", s.Stats)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Patch(Path+"/:id/toggle-active", s.ToggleActive)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns a paginated testimonial listing.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	activeOnly := c.QueryBool("active", false)

	result, err := controller.GetAll(s.db, page, limit, activeOnly)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OKPage(c, "Testimonials retrieved successfully", result.Data, result.Pagination)
}

// Random returns a random sample of active testimonials.
func (s *Service) Random(c *fiber.Ctx) error {
	count := c.QueryInt("count", DefaultRandomCount)

	items, err := controller.GetRandom(s.db, count)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Testimonials retrieved successfully", items)
}

// Stats returns the rating histogram.
func (s *Service) Stats(c *fiber.Ctx) error {
	stats, err := controller.RatingStats(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Rating stats retrieved successfully", stats)
}

// Get returns a single testimonial by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	t, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrTestimonialNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Testimonial not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Testimonial retrieved successfully", t)
}

// Create adds a new testimonial.
func (s *Service) Create(c *fiber.Ctx) error {
	var in upsertRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	t, err := controller.Create(s.db, in.model())
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Testimonial created successfully", t)
}

// Update overwrites the mutable columns of a testimonial.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var in upsertRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	t, err := controller.Update(s.db, id, in.model())
	if err != nil {
		if errors.Is(err, controller.ErrTestimonialNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Testimonial not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Testimonial updated successfully", t)
}

// ToggleActive flips the is_active flag.
func (s *Service) ToggleActive(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	t, err := controller.ToggleActive(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrTestimonialNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Testimonial not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Testimonial status updated successfully", t)
}

// Delete removes a testimonial and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	t, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrTestimonialNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Testimonial not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Testimonial deleted successfully", t)
}

// upsertRequest is the request body for create and update.
type upsertRequest struct {
	Quote     string `json:"quote"      validate:"required"`
	Author    string `json:"author"     validate:"required,max=255"`
	Location  string `json:"location"   validate:"required,max=255"`
	Rating    int    `json:"rating"     validate:"omitempty,min=1,max=5"`
	ImageURL  string `json:"image_url"  validate:"omitempty,url"`
	ImageHint string `json:"image_hint"`
	IsActive  *bool  `json:"is_active"`
}

func (in *upsertRequest) model() *models.Testimonial {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	rating := in.Rating
	if rating == 0 {
		rating = 5
	}

	return &models.Testimonial{
		Quote:     in.Quote,
		Author:    in.Author,
		Location:  in.Location,
		Rating:    rating,
		ImageURL:  in.ImageURL,
		ImageHint: in.ImageHint,
		IsActive:  active,
	}
}
