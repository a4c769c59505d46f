package tui

import (
	"context"
	"errors"
	"time"

	"github.com/jalexanderII/zero-todo/models"
)

// fakeAPI keeps todos in memory the way the worker would.
type fakeAPI struct {
	todos  []models.Todo
	nextID int64
	fail   error
	calls  []string

	failUpdate error
}

func (f *fakeAPI) ListTodos(context.Context) ([]models.Todo, error) {
	f.calls = append(f.calls, "list")
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]models.Todo(nil), f.todos...), nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, text string) (*models.Todo, error) {
	f.calls = append(f.calls, "create")
	if f.fail != nil {
		return nil, f.fail
	}
	f.nextID++
	now := time.Now()
	t := models.Todo{ID: f.nextID, Text: text, CreatedAt: now, UpdatedAt: now}
	f.todos = append(f.todos, t)
	return &t, nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id int64, req models.UpdateTodoRequest) (*models.Todo, error) {
	f.calls = append(f.calls, "update")
	if f.fail != nil {
		return nil, f.fail
	}
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	for i := range f.todos {
		if f.todos[i].ID != id {
			continue
		}
		if req.Text != nil {
			f.todos[i].Text = *req.Text
		}
		if req.Completed != nil {
			f.todos[i].Completed = *req.Completed
		}
		f.todos[i].UpdatedAt = time.Now()
		t := f.todos[i]
		return &t, nil
	}
	return nil, errors.New("API Error: 404 - not found")
}

func (f *fakeAPI) DeleteTodo(_ context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	if f.fail != nil {
		return f.fail
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return errors.New("API Error: 404 - not found")
}
