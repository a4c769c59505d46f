package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/zero-todo/models"
	"github.com/jalexanderII/zero-todo/store"
)

// @Summary Get all todos.
// @Description fetch every todo ordered by id.
// @Tags todos
// @Produce json
// @Success 200 {array} models.Todo
// @Failure 500 {object} models.ErrorResponse
// @Router /api/todos [get]
func GetTodos(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		todos, err := h.Store.List(c.UserContext())
		if err != nil {
			return h.internalError(c, err, "Failed to fetch todos")
		}
		return c.JSON(todos)
	}
}

// @Summary Get a single todo.
// @Description fetch a single todo by id.
// @Tags todos
// @Param id path int true "Todo ID"
// @Produce json
// @Success 200 {object} models.Todo
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/todos/{id} [get]
func GetTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		id, ok := todoID(c)
		if !ok {
			return FiberJsonError(c, fiber.StatusBadRequest, "Invalid todo id")
		}
		todo, err := h.Store.Get(c.UserContext(), id)
		if errors.Is(err, store.ErrNotFound) {
			return FiberJsonError(c, fiber.StatusNotFound, "Todo not found")
		}
		if err != nil {
			return h.internalError(c, err, "Failed to fetch todo")
		}
		return c.JSON(todo)
	}
}

// @Summary Create a todo.
// @Description create a todo from non-empty text. The text is trimmed.
// @Tags todos
// @Accept json
// @Param todo body models.CreateTodoRequest true "Todo to create"
// @Produce json
// @Success 201 {object} models.Todo
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/todos [post]
func CreateTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		req := new(models.CreateTodoRequest)
		if err := parseJSON(c, req); err != nil {
			return FiberJsonError(c, fiber.StatusBadRequest, "request body malformed")
		}

		text := strings.TrimSpace(req.Text)
		if text == "" {
			return FiberJsonError(c, fiber.StatusBadRequest, "Text is required")
		}

		todo, err := h.Store.Create(c.UserContext(), text)
		if err != nil {
			return h.internalError(c, err, "Failed to create todo")
		}
		h.L.WithField("id", todo.ID).Info("todo created")
		return c.Status(fiber.StatusCreated).JSON(todo)
	}
}

// @Summary Update a todo.
// @Description update the text and/or completion flag of a todo. Omitted fields are left as they are.
// @Tags todos
// @Accept json
// @Param id path int true "Todo ID"
// @Param todo body models.UpdateTodoRequest true "Fields to change"
// @Produce json
// @Success 200 {object} models.Todo
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/todos/{id} [put]
func UpdateTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		id, ok := todoID(c)
		if !ok {
			return FiberJsonError(c, fiber.StatusBadRequest, "Invalid todo id")
		}

		req := new(models.UpdateTodoRequest)
		if err := parseJSON(c, req); err != nil {
			return FiberJsonError(c, fiber.StatusBadRequest, "request body malformed")
		}
		if req.Text != nil {
			text := strings.TrimSpace(*req.Text)
			if text == "" {
				return FiberJsonError(c, fiber.StatusBadRequest, "Text is required")
			}
			req.Text = &text
		}

		todo, err := h.Store.Update(c.UserContext(), id, *req)
		if errors.Is(err, store.ErrNotFound) {
			return FiberJsonError(c, fiber.StatusNotFound, "Todo not found")
		}
		if err != nil {
			return h.internalError(c, err, "Failed to update todo")
		}
		return c.JSON(todo)
	}
}

// @Summary Delete a todo.
// @Description delete a single todo by id. This cannot be undone.
// @Tags todos
// @Param id path int true "Todo ID"
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/todos/{id} [delete]
func DeleteTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		id, ok := todoID(c)
		if !ok {
			return FiberJsonError(c, fiber.StatusBadRequest, "Invalid todo id")
		}

		err := h.Store.Delete(c.UserContext(), id)
		if errors.Is(err, store.ErrNotFound) {
			return FiberJsonError(c, fiber.StatusNotFound, "Todo not found")
		}
		if err != nil {
			return h.internalError(c, err, "Failed to delete todo")
		}
		h.L.WithField("id", id).Info("todo deleted")
		return c.JSON(models.MessageResponse{Message: "Todo deleted successfully"})
	}
}
