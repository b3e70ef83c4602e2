// Package service provides the JSON API handlers for landscaping services.
package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/service"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for service endpoints.
const Path = handler.APIRoot + "/services"

// Service provides CRUD handlers for landscaping services.
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
	app.Get(Path+"/slug/:slug", s.GetBySlug)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Patch(Path+"/:id/toggle-active", s.ToggleActive)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns a paginated service listing.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	activeOnly := c.QueryBool("active", false)
	search := c.Query("search", "")

	result, err := controller.GetAll(s.db, page, limit, activeOnly, search)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OKPage(c, "Services retrieved successfully", result.Data, result.Pagination)
}

// Get returns a single service by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	svc, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrServiceNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Service not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Service retrieved successfully", svc)
}

// GetBySlug returns a single active service by slug.
func (s *Service) GetBySlug(c *fiber.Ctx) error {
	svc, err := controller.GetBySlug(s.db, c.Params("slug"))
	if err != nil {
		if errors.Is(err, controller.ErrServiceNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Service not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Service retrieved successfully", svc)
}

// Create adds a new service.
func (s *Service) Create(c *fiber.Ctx) error {
	var in upsertRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	exists, err := controller.CheckSlugExists(s.db, in.Slug, 0)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	if exists {
		return handler.Fail(c, fiber.StatusBadRequest, "Slug already exists")
	}

	svc, err := controller.Create(s.db, in.model())
	if err != nil {
		if errors.Is(err, controller.ErrSlugAlreadyExists) {
			return handler.Fail(c, fiber.StatusBadRequest, "Slug already exists")
		}

		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Service created successfully", svc)
}

// Update overwrites the mutable columns of a service.
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

	exists, err := controller.CheckSlugExists(s.db, in.Slug, id)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	if exists {
		return handler.Fail(c, fiber.StatusBadRequest, "Slug already exists")
	}

	svc, err := controller.Update(s.db, id, in.model())
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrServiceNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "Service not found")
		case errors.Is(err, controller.ErrSlugAlreadyExists):
			return handler.Fail(c, fiber.StatusBadRequest, "Slug already exists")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Service updated successfully", svc)
}

// ToggleActive flips the is_active flag.
func (s *Service) ToggleActive(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	svc, err := controller.ToggleActive(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrServiceNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Service not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Service status updated successfully", svc)
}

// Delete removes a service and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	svc, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrServiceNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Service not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Service deleted successfully", svc)
}

// upsertRequest is the request body for create and update.
type upsertRequest struct {
	Slug        string   `json:"slug"        validate:"required,max=255"`
	Title       string   `json:"title"       validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Icon        string   `json:"icon"        validate:"max=100"`
	ImageURL    string   `json:"image_url"   validate:"omitempty,url"`
	ImageHint   string   `json:"image_hint"`
	Details     []string `json:"details"`
	Benefits    []string `json:"benefits"`
	Process     []string `json:"process"`
	Pricing     []string `json:"pricing"`
	IsActive    *bool    `json:"is_active"`
}

func (in *upsertRequest) model() *models.Service {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &models.Service{
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		ImageURL:    in.ImageURL,
		ImageHint:   in.ImageHint,
		Details:     models.StringList(in.Details),
		Benefits:    models.StringList(in.Benefits),
		Process:     models.StringList(in.Process),
		Pricing:     models.StringList(in.Pricing),
		IsActive:    active,
	}
}
