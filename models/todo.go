package models

import "time"

// Todo is a row of the todos table (or a document of the todos collection).
type Todo struct {
	ID        int64     `json:"id" bson:"_id"`
	Text      string    `json:"text" bson:"text"`
	Completed bool      `json:"completed" bson:"completed"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest holds the fields of a partial update. A nil field is left untouched.
type UpdateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
