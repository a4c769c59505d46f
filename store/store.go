// Package store persists todos. SQLStore backs postgres and sqlite,
// MongoStore backs a mongo collection.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jalexanderII/zero-todo/models"
)

// ErrNotFound is returned when no todo has the requested id.
var ErrNotFound = errors.New("store: todo not found")

type TodoStore interface {
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, id int64) (*models.Todo, error)
	// Create inserts an uncompleted todo with text and returns it with its assigned id.
	Create(ctx context.Context, text string) (*models.Todo, error)
	// Update applies the non-nil fields of req and refreshes UpdatedAt.
	Update(ctx context.Context, id int64, req models.UpdateTodoRequest) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}

// Clock returns the current time. Stores truncate it to what their backend can hold.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// touch returns the UpdatedAt value for an update at now, never before prev.
func touch(now, prev time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}
