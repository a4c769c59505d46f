package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	// registers the generated spec with swag
	_ "github.com/jalexanderII/zero-todo/docs"
)

// AddSwaggerRoutes will add auto generated swagger routes
func AddSwaggerRoutes(app *fiber.App) {
	app.Get("/swagger/*", swagger.HandlerDefault)
}
