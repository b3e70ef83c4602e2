package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
)

// Envelope is the uniform JSON response wrapper of the API.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Pagination *listing.Pagination `json:"pagination,omitempty"`
	Errors     []string            `json:"errors,omitempty"`
}

// OK sends a 200 envelope with the given payload.
func OK(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

// OKPage sends a 200 envelope with a paginated payload.
func OKPage(c *fiber.Ctx, message string, data any, pagination listing.Pagination) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data, Pagination: &pagination})
}

// Created sends a 201 envelope with the given payload.
func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Fail sends an error envelope with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// FailValidation sends a 400 envelope with an itemized error list.
func FailValidation(c *fiber.Ctx, errs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// FailInternal sends a 500 envelope with the underlying message attached
// for diagnostics.
func FailInternal(c *fiber.Ctx, err error) error {
	env := Envelope{Success: false, Message: MsgInternal}
	if err != nil {
		env.Errors = []string{err.Error()}
	}

	return c.Status(fiber.StatusInternalServerError).JSON(env)
}

// ValidationMessages flattens validator errors into user-facing strings.
func ValidationMessages(err error) []string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(vErrs))
	for _, e := range vErrs {
		out = append(out, fmt.Sprintf("%s: failed '%s' validation", e.Field(), e.Tag()))
	}

	return out
}

// ParamID parses the numeric :id route parameter.
func ParamID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
