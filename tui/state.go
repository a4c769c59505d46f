package tui

import "github.com/jalexanderII/zero-todo/models"

// TodoList is the in-memory copy of the server's todos. The server's record
// always wins: every change is applied from what the API returned.
type TodoList struct {
	Items []models.Todo
}

// Replace drops the local items in favour of a freshly fetched list.
func (l *TodoList) Replace(todos []models.Todo) {
	l.Items = append(l.Items[:0:0], todos...)
}

func (l *TodoList) Index(id int64) int {
	for i, t := range l.Items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Upsert swaps in the record with the same id, or appends it when new.
func (l *TodoList) Upsert(todo models.Todo) {
	if i := l.Index(todo.ID); i >= 0 {
		l.Items[i] = todo
		return
	}
	l.Items = append(l.Items, todo)
}

// Remove deletes the item with id and reports whether it was there.
func (l *TodoList) Remove(id int64) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return true
}

func (l *TodoList) Stats() (done, pending int) {
	for _, t := range l.Items {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}
