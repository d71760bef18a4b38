package main

import (
	"log"

	"online_project/backend/config"
	"online_project/backend/middleware"
	"online_project/backend/routes"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	if cfg.SeedData {
		if err := utils.Seed(db); err != nil {
			log.Fatalf("Error seeding database: %v", err)
		}
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app with a catch-all error envelope so framework errors
	// never leak internals
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				fiberErr = e
				code = e.Code
			}
			message := "Произошла ошибка"
			if fiberErr != nil && code < fiber.StatusInternalServerError {
				message = fiberErr.Message
			}
			return utils.Error(c, code, message)
		},
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Session store for the multi-step survey state
	sessions := session.New()

	// Setup routes
	routes.SetupRoutes(app, db, cfg, sessions)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
