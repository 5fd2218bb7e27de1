package server

import (
	"learnpath-be/internal/bootstrap"
	"learnpath-be/internal/config"
	"learnpath-be/internal/pkg/serverutils"
	"learnpath-be/pkg/metrics"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(ctx *fiber.Ctx) bool {
		return ctx.Path() == "/metrics" || ctx.Path() == "/healthz"
	})))

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "listening", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{"status": "up"}))
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(c.Registry)))

	api := app.Group("/api")
	auth := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)

	c.AuthController.RegisterRoutes(api)
	c.PathController.RegisterRoutes(api, auth)
	c.AiController.RegisterRoutes(api, auth)
	c.ChatController.RegisterRoutes(api, auth)
}
