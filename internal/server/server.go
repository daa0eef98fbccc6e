package server

import (
	"context"
	"log"

	"ai-writing-be/internal/bootstrap"
	"ai-writing-be/internal/config"
	"ai-writing-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    25 * 1024 * 1024, // draft and chat attachments
		ErrorHandler: serverutils.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))

	app.Use(otelfiber.Middleware())

	registerRoutes(app, container)

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
	log.Printf("[INFO] Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	// the websocket route authenticates itself (query token)
	c.SessionWsHandler.RegisterRoutes(api)

	protected := api.Group("", serverutils.JwtMiddleware(c.JwtSecret))
	c.WorkspaceController.RegisterRoutes(protected)
	c.SessionController.RegisterRoutes(protected)
	c.SuggestionController.RegisterRoutes(protected)
	c.ChatController.RegisterRoutes(protected)
	c.SnapshotController.RegisterRoutes(protected)
	c.ExpertController.RegisterRoutes(protected)
}
