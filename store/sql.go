package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jalexanderII/zero-todo/models"
	"github.com/sirupsen/logrus"
)

const (
	sqlListTodos = `
		SELECT id, text, completed, created_at, updated_at
		FROM   todos
		ORDER  BY id`

	sqlGetTodo = `
		SELECT id, text, completed, created_at, updated_at
		FROM   todos
		WHERE  id = $1`

	sqlInsertTodo = `
		INSERT INTO todos (text, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id`

	sqlDeleteTodo = `
		DELETE FROM todos WHERE id = $1`
)

// SQLStore keeps todos in the todos table of a postgres or sqlite database.
// All statements use $n placeholders, which both drivers accept.
type SQLStore struct {
	db    *sql.DB
	l     *logrus.Logger
	clock Clock
}

func NewSQLStore(db *sql.DB, l *logrus.Logger) *SQLStore {
	return &SQLStore{db: db, l: l, clock: systemClock}
}

// WithClock replaces the time source, mostly for tests.
func (s *SQLStore) WithClock(c Clock) *SQLStore {
	s.clock = c
	return s
}

func (s *SQLStore) now() time.Time {
	// postgres keeps microseconds
	return s.clock().UTC().Truncate(time.Microsecond)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	t := &models.Todo{}
	err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store/sql: scan todo: %w", err)
	}
	return t, nil
}

func (s *SQLStore) List(ctx context.Context) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, sqlListTodos)
	if err != nil {
		return nil, fmt.Errorf("store/sql: list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

func (s *SQLStore) Get(ctx context.Context, id int64) (*models.Todo, error) {
	return scanTodo(s.db.QueryRowContext(ctx, sqlGetTodo, id))
}

func (s *SQLStore) Create(ctx context.Context, text string) (*models.Todo, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, sqlInsertTodo, text, false, s.now()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("store/sql: insert todo: %w", err)
	}
	s.l.WithField("id", id).Debug("todo inserted")
	return s.Get(ctx, id)
}

// Update reads the current row and writes the new values in one transaction,
// so updated_at never moves behind the stored value.
func (s *SQLStore) Update(ctx context.Context, id int64, req models.UpdateTodoRequest) (todo *models.Todo, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store/sql: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	current, err := scanTodo(tx.QueryRowContext(ctx, sqlGetTodo, id))
	if err != nil {
		return nil, err
	}

	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)
	argIdx := 1

	if req.Text != nil {
		setClauses = append(setClauses, fmt.Sprintf("text = $%d", argIdx))
		args = append(args, *req.Text)
		argIdx++
	}
	if req.Completed != nil {
		setClauses = append(setClauses, fmt.Sprintf("completed = $%d", argIdx))
		args = append(args, *req.Completed)
		argIdx++
	}
	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, touch(s.now(), current.UpdatedAt))
	argIdx++

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE todos
		SET    %s
		WHERE  id = $%d`,
		strings.Join(setClauses, ", "), argIdx)

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("store/sql: update todo %d: %w", id, err)
	}

	todo, err = scanTodo(tx.QueryRowContext(ctx, sqlGetTodo, id))
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("store/sql: commit: %w", err)
	}
	return todo, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteTodo, id)
	if err != nil {
		return fmt.Errorf("store/sql: delete todo %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store/sql: delete todo %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ TodoStore = (*SQLStore)(nil)
