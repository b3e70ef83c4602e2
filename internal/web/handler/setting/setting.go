// Package setting provides the JSON API handlers for the typed key-value
// settings store.
package setting

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/setting"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for settings endpoints.
const Path = handler.APIRoot + "/settings"

// Service provides handlers for the settings store.
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
	app.Post(Path, s.Create)
	app.Post(Path+"/multiple", s.GetMultiple)
	app.Post(Path+"/upsert/:key", s.UpsertByKey)
	app.Get(Path+"/key/:key", s.GetByKey)
	app.Put(Path+"/key/:key", s.UpdateByKey)
	app.Get(Path+"/site-name", s.GetSiteName)
	app.Put(Path+"/site-name", s.SetSiteName)
	app.Get(Path+"/contact-info", s.GetContactInfo)
	app.Get(Path+"/social-links", s.GetSocialLinks)
	app.Put(Path+"/social-links", s.SetSocialLinks)
	app.Get(Path+"/:id", s.Get)
	app.Put(Path+"/:id", s.Update)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns all settings with decoded values.
func (s *Service) List(c *fiber.Ctx) error {
	settings, err := controller.GetAll(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Settings retrieved successfully", settings)
}

// Get returns a single setting by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	st, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrSettingNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Setting not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Setting retrieved successfully", st)
}

// GetByKey returns a single setting by key.
func (s *Service) GetByKey(c *fiber.Ctx) error {
	st, err := controller.GetByKey(s.db, c.Params("key"))
	if err != nil {
		if errors.Is(err, controller.ErrSettingNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Setting not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Setting retrieved successfully", st)
}

// GetMultiple returns the decoded values of the requested keys as a map.
// Missing keys are simply absent from the result.
func (s *Service) GetMultiple(c *fiber.Ctx) error {
	var in multipleRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	values, err := controller.GetMultipleByKeys(s.db, in.Keys)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Settings retrieved successfully", values)
}

// Create adds a new setting. A duplicate key is a conflict, not an
// overwrite.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	if in.Value == nil {
		return handler.FailValidation(c, []string{"value: failed 'required' validation"})
	}

	st, err := controller.Create(s.db, in.Key, in.Value, models.SettingType(in.Type), in.Description)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrSettingAlreadyExists):
			return handler.Fail(c, fiber.StatusBadRequest, "Setting key already exists")
		case errors.Is(err, controller.ErrInvalidSettingType):
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid setting type")
		}

		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Setting created successfully", st)
}

// UpsertByKey inserts or overwrites the setting for the key in one atomic
// statement.
func (s *Service) UpsertByKey(c *fiber.Ctx) error {
	var in valueRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	if in.Value == nil {
		return handler.FailValidation(c, []string{"value: failed 'required' validation"})
	}

	st, err := controller.UpsertByKey(s.db, c.Params("key"), in.Value, models.SettingType(in.Type))
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrSettingKeyEmpty):
			return handler.Fail(c, fiber.StatusBadRequest, "Setting key cannot be empty")
		case errors.Is(err, controller.ErrInvalidSettingType):
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid setting type")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Setting saved successfully", st)
}

// UpdateByKey updates an existing setting, inheriting the stored type when
// the request omits it.
func (s *Service) UpdateByKey(c *fiber.Ctx) error {
	var in valueRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	if in.Value == nil {
		return handler.FailValidation(c, []string{"value: failed 'required' validation"})
	}

	st, err := controller.UpdateByKey(s.db, c.Params("key"), in.Value, models.SettingType(in.Type))
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrSettingNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "Setting not found")
		case errors.Is(err, controller.ErrInvalidSettingType):
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid setting type")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Setting updated successfully", st)
}

// GetSiteName returns the configured site name, falling back to the default
// when the setting is missing.
func (s *Service) GetSiteName(c *fiber.Ctx) error {
	name, err := controller.GetSiteName(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Site name retrieved successfully", fiber.Map{"site_name": name})
}

// SetSiteName stores the site name.
func (s *Service) SetSiteName(c *fiber.Ctx) error {
	var in nameRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	st, err := controller.SetSiteName(s.db, in.Name)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Site name updated successfully", st)
}

// GetContactInfo returns the contact phone/email/address block.
func (s *Service) GetContactInfo(c *fiber.Ctx) error {
	info, err := controller.GetContactInfo(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Contact information retrieved successfully", info)
}

// GetSocialLinks returns the social link map, empty when unset.
func (s *Service) GetSocialLinks(c *fiber.Ctx) error {
	links, err := controller.GetSocialLinks(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Social links retrieved successfully", links)
}

// SetSocialLinks stores the social link map as one json setting.
func (s *Service) SetSocialLinks(c *fiber.Ctx) error {
	var in linksRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	st, err := controller.SetSocialLinks(s.db, in.Links)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Social links updated successfully", st)
}

// Update overwrites a setting by id.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var in createRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	if in.Value == nil {
		return handler.FailValidation(c, []string{"value: failed 'required' validation"})
	}

	exists, err := controller.CheckKeyExists(s.db, in.Key, id)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	if exists {
		return handler.Fail(c, fiber.StatusBadRequest, "Setting key already exists")
	}

	st, err := controller.Update(s.db, id, in.Key, in.Value, models.SettingType(in.Type), in.Description)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrSettingNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "Setting not found")
		case errors.Is(err, controller.ErrSettingAlreadyExists):
			return handler.Fail(c, fiber.StatusBadRequest, "Setting key already exists")
		case errors.Is(err, controller.ErrInvalidSettingType):
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid setting type")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Setting updated successfully", st)
}

// Delete removes a setting and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	st, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrSettingNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Setting not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Setting deleted successfully", st)
}

// Value is deliberately not validated with "required": the validator unwraps
// interface values, so false and 0 would be rejected as zero values. Handlers
// check for a missing value themselves.
type createRequest struct {
	Key         string `json:"key"         validate:"required,max=255"`
	Value       any    `json:"value"`
	Type        string `json:"type"        validate:"omitempty,oneof=string number boolean json"`
	Description string `json:"description"`
}

type valueRequest struct {
	Value any    `json:"value"`
	Type  string `json:"type"  validate:"omitempty,oneof=string number boolean json"`
}

type multipleRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,dive,required"`
}

type nameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type linksRequest struct {
	Links map[string]any `json:"links" validate:"required"`
}
