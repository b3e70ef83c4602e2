// Package contact provides the JSON API handlers for contact form
// submissions.
package contact

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/contact"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for contact endpoints.
const Path = handler.APIRoot + "/contacts"

// Service provides CRUD handlers for contact requests.
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
	app.Get(Path+"/stats", s.Stats)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Patch(Path+"/:id/status", s.UpdateStatus)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns a paginated contact listing, optionally filtered by status.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := models.ContactStatus(c.Query("status", ""))

	if status != "" && !models.ValidContactStatus(status) {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid status")
	}

	result, err := controller.GetAll(s.db, page, limit, status)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OKPage(c, "Contacts retrieved successfully", result.Data, result.Pagination)
}

// Stats returns the per-status contact counts.
func (s *Service) Stats(c *fiber.Ctx) error {
	stats, err := controller.StatusCounts(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Contact stats retrieved successfully", stats)
}

// Get returns a single contact by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	ct, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrContactNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Contact not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Contact retrieved successfully", ct)
}

// Create records a new contact request. Status always starts as new.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	ct, err := controller.Create(s.db, &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Contact created successfully", ct)
}

// Update overwrites the mutable columns of a contact.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var in updateRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	ct, err := controller.Update(s.db, id, &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
		Status:  models.ContactStatus(in.Status),
	})
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrContactNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "Contact not found")
		case errors.Is(err, controller.ErrInvalidStatus):
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid status")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Contact updated successfully", ct)
}

// UpdateStatus sets the handling status of a contact.
func (s *Service) UpdateStatus(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var in statusRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	ct, err := controller.UpdateStatus(s.db, id, models.ContactStatus(in.Status))
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrContactNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "Contact not found")
		case errors.Is(err, controller.ErrInvalidStatus):
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid status")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Contact status updated successfully", ct)
}

// Delete removes a contact and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	ct, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrContactNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Contact not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Contact deleted successfully", ct)
}

type createRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   validate:"max=50"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required"`
}

type updateRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   validate:"max=50"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required"`
	Status  string `json:"status"  validate:"required,oneof=new read replied"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}
