// Package model holds the client-side entities. Server payloads are decoded
// into the *Attrs types, which list exactly the fields the client accepts;
// anything else the backend sends is dropped during decoding.
package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/todolists/internal/view"
)

// ID is a server-assigned identifier.
type ID int64

// ParseID converts an identifier read off a node attribute or the command line.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(n), nil
}

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// ListAttrs is the whitelist of todo list fields.
type ListAttrs struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ListDetail is the list detail payload: the list plus its tasks.
type ListDetail struct {
	ListAttrs
	Tasks []TaskAttrs `json:"tasks"`
}

// TodoList is a list as the client holds it. Active is a cached highlight flag;
// the selection controller owns which list is really active.
type TodoList struct {
	ID     ID
	Name   string
	Active bool

	// Element is the list's render handle.
	Element view.Handle
}

func NewTodoList(a ListAttrs) *TodoList {
	l := &TodoList{}
	l.Merge(a)
	return l
}

// Merge overwrites every whitelisted field with the server's values.
func (l *TodoList) Merge(a ListAttrs) {
	l.ID = a.ID
	l.Name = a.Name
	l.Active = a.Active
}

func (l *TodoList) Attrs() ListAttrs {
	return ListAttrs{ID: l.ID, Name: l.Name, Active: l.Active}
}

func (l *TodoList) EntityID() ID { return l.ID }

func (l *TodoList) Handle() *view.Handle { return &l.Element }

// TaskAttrs is the whitelist of task fields.
type TaskAttrs struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	TodoListID ID     `json:"todo_list_id"`
	Completed  bool   `json:"completed"`
	Notes      string `json:"notes"`
}

// TaskPatch carries the fields of a partial task update. Nil fields are not sent.
type TaskPatch struct {
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Task is one entry of a todo list.
type Task struct {
	ID         ID
	Name       string
	TodoListID ID
	Completed  bool
	Notes      string

	// Element is the task's render handle.
	Element view.Handle
}

func NewTask(a TaskAttrs) *Task {
	t := &Task{}
	t.Merge(a)
	return t
}

// Merge overwrites every whitelisted field with the server's values.
func (t *Task) Merge(a TaskAttrs) {
	t.ID = a.ID
	t.Name = a.Name
	t.TodoListID = a.TodoListID
	t.Completed = a.Completed
	t.Notes = a.Notes
}

func (t *Task) Attrs() TaskAttrs {
	return TaskAttrs{ID: t.ID, Name: t.Name, TodoListID: t.TodoListID, Completed: t.Completed, Notes: t.Notes}
}

func (t *Task) EntityID() ID { return t.ID }

func (t *Task) Handle() *view.Handle { return &t.Element }
