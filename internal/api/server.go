package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewServer builds the fiber app with middleware and the full route table.
func NewServer(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "TaskMaster API",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api")
	api.Get("/", handler.root)

	api.Post("/tasks", handler.createTask)
	api.Get("/tasks", handler.listTasks)
	api.Get("/tasks/:id", handler.getTask)
	api.Put("/tasks/:id", handler.updateTask)
	api.Delete("/tasks/:id", handler.deleteTask)

	api.Post("/status", handler.createStatusCheck)
	api.Get("/status", handler.listStatusChecks)

	return app
}
