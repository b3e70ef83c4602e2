// Package user provides the JSON API handlers for admin users and
// authentication.
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/user"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for user endpoints.
const Path = handler.APIRoot + "/users"

// MsgInvalidCredentials is deliberately identical for unknown email and
// wrong password so callers cannot probe which emails are registered.
const MsgInvalidCredentials = "Invalid email or password"

// Service provides CRUD and auth handlers for users.
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

	app.Post(Path+"/login", s.Login)
	app.Get(Path, s.List)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Patch(Path+"/:id/password", s.UpdatePassword)
	app.Patch(Path+"/:id/change-password", s.ChangePassword)
	app.Patch(Path+"/:id/toggle-active", s.ToggleActive)
	app.Delete(Path+"/:id", s.Delete)
}

// Login authenticates by email and password among active users.
func (s *Service) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	u, err := controller.Authenticate(s.db, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, controller.ErrInvalidCredentials) {
			return handler.Fail(c, fiber.StatusUnauthorized, MsgInvalidCredentials)
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Login successful", u)
}

// List returns a paginated user listing without password hashes.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	activeOnly := c.QueryBool("active", false)

	result, err := controller.GetAll(s.db, page, limit, activeOnly)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OKPage(c, "Users retrieved successfully", result.Data, result.Pagination)
}

// Get returns a single user by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	u, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "User retrieved successfully", u)
}

// Create adds a new user. The plaintext password is hashed before storage.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	exists, err := controller.CheckEmailExists(s.db, in.Email, 0)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	if exists {
		return handler.Fail(c, fiber.StatusBadRequest, "Email already exists")
	}

	u, err := controller.Create(s.db, in.model(), in.Password)
	if err != nil {
		if errors.Is(err, controller.ErrEmailAlreadyExists) {
			return handler.Fail(c, fiber.StatusBadRequest, "Email already exists")
		}

		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "User created successfully", u)
}

// Update overwrites the profile columns of a user; the password is never
// touched here.
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

	exists, err := controller.CheckEmailExists(s.db, in.Email, id)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	if exists {
		return handler.Fail(c, fiber.StatusBadRequest, "Email already exists")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	u, err := controller.Update(s.db, id, &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Role:     models.Role(in.Role),
		IsActive: active,
	})
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrUserNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, controller.ErrEmailAlreadyExists):
			return handler.Fail(c, fiber.StatusBadRequest, "Email already exists")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "User updated successfully", u)
}

// UpdatePassword resets a user's password without checking the current one
// (admin reset).
func (s *Service) UpdatePassword(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var in passwordRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	u, err := controller.UpdatePassword(s.db, id, in.Password)
	if err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Password updated successfully", u)
}

// ChangePassword verifies the current password before storing the new one.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var in changePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(&in); err != nil {
		return handler.FailValidation(c, handler.ValidationMessages(err))
	}

	u, err := controller.ChangePassword(s.db, id, in.CurrentPassword, in.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrUserNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, controller.ErrCurrentPasswordIncorrect):
			return handler.Fail(c, fiber.StatusBadRequest, "Current password is incorrect")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Password changed successfully", u)
}

// ToggleActive flips the is_active flag.
func (s *Service) ToggleActive(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	u, err := controller.ToggleActive(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "User status updated successfully", u)
}

// Delete removes a user and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	u, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "User deleted successfully", u)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createRequest struct {
	Name     string `json:"name"      validate:"required,max=255"`
	Email    string `json:"email"     validate:"required,email,max=255"`
	Password string `json:"password"  validate:"required,min=6"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin editor"`
	IsActive *bool  `json:"is_active"`
}

func (in *createRequest) model() *models.User {
	role := models.RoleEditor
	if in.Role != "" {
		role = models.Role(in.Role)
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Role:     role,
		IsActive: active,
	}
}

type updateRequest struct {
	Name     string `json:"name"      validate:"required,max=255"`
	Email    string `json:"email"     validate:"required,email,max=255"`
	Role     string `json:"role"      validate:"required,oneof=admin editor"`
	IsActive *bool  `json:"is_active"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}
