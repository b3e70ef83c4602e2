// Package heroslide provides the JSON API handlers for the homepage hero
// carousel, including the transactional batch reorder.
package heroslide

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/heroslide"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for hero slide endpoints.
const Path = handler.APIRoot + "/hero-slides"

// Service provides CRUD and reorder handlers for hero slides.
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
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Patch(Path+"/reorder", s.Reorder)
	app.Patch(Path+"/:id/toggle-active", s.ToggleActive)
	app.Patch(Path+"/:id/order", s.UpdateOrder)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns a paginated slide listing in display order.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	activeOnly := c.QueryBool("active", false)

	result, err := controller.GetAll(s.db, page, limit, activeOnly)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OKPage(c, "Hero slides retrieved successfully", result.Data, result.Pagination)
}

// Get returns a single slide by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	slide, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrSlideNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Hero slide not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Hero slide retrieved successfully", slide)
}

// Create adds a new slide.
func (s *Service) Create(c *fiber.Ctx) error {
	var in upsertRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	slide, err := controller.Create(s.db, in.model())
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Hero slide created successfully", slide)
}

// Update overwrites the mutable columns of a slide.
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

	slide, err := controller.Update(s.db, id, in.model())
	if err != nil {
		if errors.Is(err, controller.ErrSlideNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Hero slide not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Hero slide updated successfully", slide)
}

// Reorder applies a batch of (id, order) pairs in one transaction. Either
// every pair is applied or none is.
func (s *Service) Reorder(c *fiber.Ctx) error {
	var in reorderRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	slides, err := controller.Reorder(s.db, in.Slides)
	if err != nil {
		if errors.Is(err, controller.ErrSlideNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Hero slide not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Hero slides reordered successfully", slides)
}

// ToggleActive flips the is_active flag.
func (s *Service) ToggleActive(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	slide, err := controller.ToggleActive(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrSlideNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Hero slide not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Hero slide status updated successfully", slide)
}

// UpdateOrder sets the order of a single slide.
func (s *Service) UpdateOrder(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var in orderRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	slide, err := controller.UpdateOrder(s.db, id, in.Order)
	if err != nil {
		if errors.Is(err, controller.ErrSlideNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Hero slide not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Hero slide order updated successfully", slide)
}

// Delete removes a slide and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	slide, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrSlideNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Hero slide not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Hero slide deleted successfully", slide)
}

// upsertRequest is the request body for create and update.
type upsertRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	ButtonText  string `json:"button_text" validate:"required,max=100"`
	ButtonLink  string `json:"button_link" validate:"required,max=255"`
	ImageURL    string `json:"image_url"   validate:"required,url"`
	ImageHint   string `json:"image_hint"`
	Order       int    `json:"order"       validate:"min=0"`
	IsActive    *bool  `json:"is_active"`
}

func (in *upsertRequest) model() *models.HeroSlide {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &models.HeroSlide{
		Title:       in.Title,
		Description: in.Description,
		ButtonText:  in.ButtonText,
		ButtonLink:  in.ButtonLink,
		ImageURL:    in.ImageURL,
		ImageHint:   in.ImageHint,
		OrderIndex:  in.Order,
		IsActive:    active,
	}
}

type reorderRequest struct {
	Slides []controller.OrderPair `json:"slides" validate:"required,min=1,dive"`
}

type orderRequest struct {
	Order int `json:"order" validate:"min=0"`
}
