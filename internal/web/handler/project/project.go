// Package project provides the JSON API handlers for portfolio projects.
package project

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/project"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for project endpoints.
const Path = handler.APIRoot + "/projects"

// Service provides CRUD handlers for projects.
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
	app.Get(Path+"/categories", s.Categories)
	app.Get(Path+"/styles", s.Styles)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Patch(Path+"/:id/toggle-active", s.ToggleActive)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns a paginated project listing.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	category := c.Query("category", "")
	activeOnly := c.QueryBool("active", false)

	result, err := controller.GetAll(s.db, page, limit, category, activeOnly)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OKPage(c, "Projects retrieved successfully", result.Data, result.Pagination)
}

// Categories returns the distinct project categories.
func (s *Service) Categories(c *fiber.Ctx) error {
	categories, err := controller.Categories(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Categories retrieved successfully", categories)
}

// Styles returns the distinct project styles.
func (s *Service) Styles(c *fiber.Ctx) error {
	styles, err := controller.Styles(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Styles retrieved successfully", styles)
}

// Get returns a single project by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	p, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrProjectNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Project not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Project retrieved successfully", p)
}

// Create adds a new project.
func (s *Service) Create(c *fiber.Ctx) error {
	var in upsertRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	p, err := controller.Create(s.db, in.model())
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Project created successfully", p)
}

// Update overwrites the mutable columns of a project.
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

	p, err := controller.Update(s.db, id, in.model())
	if err != nil {
		if errors.Is(err, controller.ErrProjectNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Project not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Project updated successfully", p)
}

// ToggleActive flips the is_active flag.
func (s *Service) ToggleActive(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	p, err := controller.ToggleActive(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrProjectNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Project not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Project status updated successfully", p)
}

// Delete removes a project and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	p, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrProjectNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Project not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Project deleted successfully", p)
}

// upsertRequest is the request body for create and update.
type upsertRequest struct {
	Title     string `json:"title"      validate:"required,max=255"`
	Category  string `json:"category"   validate:"required,max=100"`
	Style     string `json:"style"      validate:"max=100"`
	Location  string `json:"location"   validate:"required,max=255"`
	Cost      string `json:"cost"       validate:"max=100"`
	Date      string `json:"date"       validate:"max=20"`
	ImageURL  string `json:"image_url"  validate:"omitempty,url"`
	ImageHint string `json:"image_hint"`
	IsActive  *bool  `json:"is_active"`
}

func (in *upsertRequest) model() *models.Project {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &models.Project{
		Title:     in.Title,
		Category:  in.Category,
		Style:     in.Style,
		Location:  in.Location,
		Cost:      in.Cost,
		Date:      in.Date,
		ImageURL:  in.ImageURL,
		ImageHint: in.ImageHint,
		IsActive:  active,
	}
}
