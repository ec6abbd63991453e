// Package models defines the core data structures for users and todos.
package models

import (
	"fmt"
	"time"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user, assigned on creation.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user. Globally unique.
	Username string `json:"username"`
	// Email is the user's email address. Globally unique; also the token subject.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in responses.
	PasswordHash string `json:"-"`
	// CreatedAt is when the row was inserted.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the row was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Todo is a task record owned by a single user.
type Todo struct {
	// ID is the unique identifier for the todo.
	ID int64 `json:"id"`
	// Title is a short summary of the task.
	Title string `json:"title"`
	// Description holds the task details.
	Description string `json:"description"`
	// State is the current workflow state of the task.
	State TodoState `json:"state"`
	// UserID is the owner of the task. Every read and write is scoped by it.
	UserID int64 `json:"user_id"`
	// CreatedAt is when the row was inserted.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the row was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoState defines the set of valid task states.
type TodoState string

const (
	// StateDraft represents a task that is not yet ready to be worked on.
	StateDraft TodoState = "draft"
	// StateTodo represents a task waiting to be started.
	StateTodo TodoState = "todo"
	// StateDoing represents a task currently in progress.
	StateDoing TodoState = "doing"
	// StateDone represents a completed task.
	StateDone TodoState = "done"
)

// ParseTodoState validates s against the closed state set.
// Unknown values are rejected, never coerced.
func ParseTodoState(s string) (TodoState, error) {
	switch TodoState(s) {
	case StateDraft, StateTodo, StateDoing, StateDone:
		return TodoState(s), nil
	}
	return "", fmt.Errorf("invalid todo state: %q", s)
}

// Valid reports whether st is a member of the closed state set.
func (st TodoState) Valid() bool {
	_, err := ParseTodoState(string(st))
	return err == nil
}
