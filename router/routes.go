package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/zero-todo/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api")

	api.Get("/health", handlers.HandleHealthCheck)

	todos := api.Group("/todos")
	todos.Get("/", handlers.GetTodos(h))
	todos.Post("/", handlers.CreateTodo(h))
	todos.Get("/:id", handlers.GetTodo(h))
	todos.Put("/:id", handlers.UpdateTodo(h))
	todos.Delete("/:id", handlers.DeleteTodo(h))
}
