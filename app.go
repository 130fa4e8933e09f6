package main

import (
	"path/filepath"
	"time"

	"exercisetracker/internal/config"
	"exercisetracker/internal/database"
	"exercisetracker/internal/handlers"
	"exercisetracker/internal/middleware"
	"exercisetracker/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewApp wires services and handlers over store into a Fiber app. publisher
// may be nil to disable events.
func NewApp(cfg *config.Config, store *database.Store, publisher services.EventPublisher, log *zap.Logger) *fiber.App {
	// --- Services ---
	userService := services.NewUserService(store.Users, publisher, log)
	exerciseService := services.NewExerciseService(store.Users, store.Exercises, publisher, log)

	// --- Handlers ---
	opts := handlers.Options{LegacyResponses: cfg.LegacyResponses}
	userHandler := handlers.NewUserHandler(userService, opts, log)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService, opts, log)

	app := fiber.New(fiber.Config{
		AppName:               "exercisetracker",
		ErrorHandler:          middleware.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New())

	// --- Landing page and static assets ---
	landingPage := filepath.Join(cfg.ViewsDir, "index.html")
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(landingPage)
	})
	app.Static("/", cfg.PublicDir)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  store.Driver,
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	userHandler.RegisterRoutes(api)
	exerciseHandler.RegisterRoutes(api)

	return app
}
