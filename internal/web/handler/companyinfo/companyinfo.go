// Package companyinfo provides the JSON API handlers for the company
// profile record.
package companyinfo

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/companyinfo"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for company info endpoints.
const Path = handler.APIRoot + "/company-info"

// Service provides CRUD handlers for company info.
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
	app.Get(Path+"/current", s.GetCurrent)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns all company info records.
func (s *Service) List(c *fiber.Ctx) error {
	infos, err := controller.GetAll(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Company info retrieved successfully", infos)
}

// GetCurrent returns the most recent company info record.
func (s *Service) GetCurrent(c *fiber.Ctx) error {
	info, err := controller.GetCurrent(s.db)
	if err != nil {
		if errors.Is(err, controller.ErrCompanyInfoNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Company info not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Company info retrieved successfully", info)
}

// Get returns a single company info record by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	info, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrCompanyInfoNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Company info not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Company info retrieved successfully", info)
}

// Create adds a new company info record.
func (s *Service) Create(c *fiber.Ctx) error {
	var in upsertRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	info, err := controller.Create(s.db, in.model())
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Company info created successfully", info)
}

// Update overwrites the mutable columns of a company info record.
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

	info, err := controller.Update(s.db, id, in.model())
	if err != nil {
		if errors.Is(err, controller.ErrCompanyInfoNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Company info not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Company info updated successfully", info)
}

// Delete removes a company info record and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	info, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrCompanyInfoNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Company info not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Company info deleted successfully", info)
}

// upsertRequest is the request body for create and update.
type upsertRequest struct {
	Name          string            `json:"name"           validate:"required,max=255"`
	Description   string            `json:"description"`
	Address       string            `json:"address"`
	Phone         string            `json:"phone"          validate:"max=50"`
	Email         string            `json:"email"          validate:"omitempty,email,max=255"`
	Website       string            `json:"website"        validate:"omitempty,url,max=255"`
	SocialMedia   map[string]string `json:"social_media"`
	BusinessHours map[string]string `json:"business_hours"`
}

func (in *upsertRequest) model() *models.CompanyInfo {
	return &models.CompanyInfo{
		Name:          in.Name,
		Description:   in.Description,
		Address:       in.Address,
		Phone:         in.Phone,
		Email:         in.Email,
		Website:       in.Website,
		SocialMedia:   models.JSONMap(in.SocialMedia),
		BusinessHours: models.JSONMap(in.BusinessHours),
	}
}
