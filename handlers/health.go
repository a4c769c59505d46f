package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/zero-todo/models"
)

// @Summary Show the status of server.
// @Description get the status of server. The datastore is not consulted.
// @Tags health
// @Accept */*
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /api/health [get]
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Message:   "Todo API is running",
	})
}
