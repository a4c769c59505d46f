package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/zero-todo/models"
	"github.com/jalexanderII/zero-todo/store"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Store store.TodoStore
	L     *logrus.Logger
}

func NewHandler(s store.TodoStore, l *logrus.Logger) *Handler {
	return &Handler{
		Store: s,
		L:     l,
	}
}

// FiberJsonError writes the {"error": message} envelope every failed request gets.
func FiberJsonError(c *fiber.Ctx, httpStatus int, message string) error {
	return c.Status(httpStatus).JSON(models.ErrorResponse{Error: message})
}

// internalError logs err and answers with a generic 500.
func (h *Handler) internalError(c *fiber.Ctx, err error, message string) error {
	h.L.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).WithError(err).Error(message)
	return FiberJsonError(c, fiber.StatusInternalServerError, message)
}

// parseJSON decodes the request body as JSON whatever Content-Type the
// client sent.
func parseJSON(c *fiber.Ctx, out interface{}) error {
	return c.App().Config().JSONDecoder(c.Body(), out)
}

func todoID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NotFound answers any request no route matched.
func NotFound(c *fiber.Ctx) error {
	return FiberJsonError(c, fiber.StatusNotFound, "Not found")
}

// ErrorHandler is the fiber.Config ErrorHandler. A *fiber.Error keeps its
// code and message, anything else is logged and reported as a 500.
func ErrorHandler(l *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return FiberJsonError(c, fe.Code, fe.Message)
		}
		l.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("unhandled error")
		return FiberJsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
