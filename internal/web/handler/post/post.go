// Package post provides the JSON API handlers for blog posts.
package post

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	"github.com/koi-garden/koi-garden-api/internal/db/controller/listing"
	controller "github.com/koi-garden/koi-garden-api/internal/db/controller/post"
	"github.com/koi-garden/koi-garden-api/internal/db/models"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
)

// Path is the base path for post endpoints.
const Path = handler.APIRoot + "/posts"

// Service provides CRUD handlers for blog posts.
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
	app.Get(Path+"/tags", s.Tags)
	app.Get(Path+"/slug/:slug", s.GetBySlug)
	app.Get(Path+"/:id", s.Get)
	app.Post(Path, s.Create)
	app.Put(Path+"/:id", s.Update)
	app.Patch(Path+"/:id/toggle-published", s.TogglePublished)
	app.Delete(Path+"/:id", s.Delete)
}

// List returns a paginated post listing, optionally filtered by category,
// full-text search and publish state.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	category := c.Query("category", "")
	search := c.Query("search", "")
	publishedOnly := c.QueryBool("published", false)

	var (
		result *listing.Page[models.Post]
		err    error
	)

	if search != "" {
		result, err = controller.Search(s.db, page, limit, search, publishedOnly)
	} else {
		result, err = controller.GetAll(s.db, page, limit, category, publishedOnly)
	}

	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OKPage(c, "Posts retrieved successfully", result.Data, result.Pagination)
}

// Categories returns the distinct post categories.
func (s *Service) Categories(c *fiber.Ctx) error {
	categories, err := controller.Categories(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Categories retrieved successfully", categories)
}

// Tags returns the distinct tags across all posts.
func (s *Service) Tags(c *fiber.Ctx) error {
	tags, err := controller.Tags(s.db)
	if err != nil {
		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Tags retrieved successfully", tags)
}

// Get returns a single post by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	p, err := controller.Get(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrPostNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Post not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Post retrieved successfully", p)
}

// GetBySlug returns a single post by slug. The published query flag
// restricts the lookup to published posts.
func (s *Service) GetBySlug(c *fiber.Ctx) error {
	publishedOnly := c.QueryBool("published", false)

	p, err := controller.GetBySlug(s.db, c.Params("slug"), publishedOnly)
	if err != nil {
		if errors.Is(err, controller.ErrPostNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Post not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Post retrieved successfully", p)
}

// Create adds a new post.
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

	p, err := controller.Create(s.db, in.model())
	if err != nil {
		if errors.Is(err, controller.ErrSlugAlreadyExists) {
			return handler.Fail(c, fiber.StatusBadRequest, "Slug already exists")
		}

		return handler.FailInternal(c, err)
	}

	return handler.Created(c, "Post created successfully", p)
}

// Update overwrites the mutable columns of a post.
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

	p, err := controller.Update(s.db, id, in.model())
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrPostNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "Post not found")
		case errors.Is(err, controller.ErrSlugAlreadyExists):
			return handler.Fail(c, fiber.StatusBadRequest, "Slug already exists")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Post updated successfully", p)
}

// TogglePublished flips the is_published flag, stamping published_at on
// the first publish.
func (s *Service) TogglePublished(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	p, err := controller.TogglePublished(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrPostNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Post not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Post status updated successfully", p)
}

// Delete removes a post and returns the deleted row.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	p, err := controller.Delete(s.db, id)
	if err != nil {
		if errors.Is(err, controller.ErrPostNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Post not found")
		}

		return handler.FailInternal(c, err)
	}

	return handler.OK(c, "Post deleted successfully", p)
}

// upsertRequest is the request body for create and update.
type upsertRequest struct {
	Slug        string   `json:"slug"         validate:"required,max=255"`
	Title       string   `json:"title"        validate:"required,max=255"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"      validate:"required"`
	Author      string   `json:"author"       validate:"required,max=255"`
	ImageURL    string   `json:"image_url"    validate:"omitempty,url"`
	ImageHint   string   `json:"image_hint"`
	Category    string   `json:"category"     validate:"required,max=100"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
}

func (in *upsertRequest) model() *models.Post {
	return &models.Post{
		Slug:        in.Slug,
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Author:      in.Author,
		ImageURL:    in.ImageURL,
		ImageHint:   in.ImageHint,
		Category:    in.Category,
		Tags:        models.StringList(in.Tags),
		IsPublished: in.IsPublished,
	}
}
