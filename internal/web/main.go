// Package web wires the fiber application: middleware, JSON error
// handling, the liveness and metrics endpoints and all API handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/koi-garden/koi-garden-api/internal/config"
	fiberlogger "github.com/koi-garden/koi-garden-api/internal/logger/adapter/fiber"
	"github.com/koi-garden/koi-garden-api/internal/web/handler"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/companyinfo"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/contact"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/dashboard"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/heroslide"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/post"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/project"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/service"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/setting"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/testimonial"
	"github.com/koi-garden/koi-garden-api/internal/web/handler/user"
)

// HealthPath is the liveness endpoint.
const HealthPath = "/health"

// MetricsPath exposes the prometheus registry.
const MetricsPath = "/metrics"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so the
	// liveness endpoint returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// errorHandler maps unhandled fiber errors to the uniform JSON envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(handler.Envelope{
		Success: false,
		Message: err.Error(),
	})
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   errorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Webserver.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// access log
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:         cfg.Log,
		HealthCheckURI: HealthPath,
	}))

	// init web service
	srv := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	srv.alive.Store(true)

	app.Get(HealthPath, srv.health)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes)
	user.Handler.Init(app, cfg, db)
	service.Handler.Init(app, cfg, db)
	project.Handler.Init(app, cfg, db)
	post.Handler.Init(app, cfg, db)
	testimonial.Handler.Init(app, cfg, db)
	contact.Handler.Init(app, cfg, db)
	heroslide.Handler.Init(app, cfg, db)
	companyinfo.Handler.Init(app, cfg, db)
	setting.Handler.Init(app, cfg, db)
	dashboard.Handler.Init(app, cfg, db)

	return srv
}

// health reports liveness with timestamp and environment. During a
// graceful shutdown it returns 503 so load balancers drain the pod.
func (s *Service) health(c *fiber.Ctx) error {
	ok := s.alive.Load()

	status := fiber.StatusOK
	state := "ok"

	if !ok {
		status = fiber.StatusServiceUnavailable
		state = "shutting down"
	}

	return c.Status(status).JSON(handler.Envelope{
		Success: ok,
		Message: "Health check",
		Data: fiber.Map{
			"status":      state,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": s.cfg.Env,
		},
	})
}
