// Package store owns the client's in-memory lists and tasks. Every mutation
// waits for the backend to confirm it; on failure nothing changes and one
// error notification is emitted.
//
// Network calls happen without the workspace lock held. Results are applied
// under the lock, so mutations from concurrent operations never interleave.
// Nothing deduplicates operations: when two updates of one entity race, the
// response that arrives last wins.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/notify"
	"github.com/idilsaglam/todolists/internal/render"
	"github.com/idilsaglam/todolists/internal/view"
)

// Backend is the part of the REST API the stores call.
type Backend interface {
	TodoLists(ctx context.Context) ([]model.ListAttrs, error)
	TodoList(ctx context.Context, id model.ID) (model.ListDetail, error)
	CreateTodoList(ctx context.Context, name string) (model.ListAttrs, error)
	UpdateTodoList(ctx context.Context, id model.ID, name string) (model.ListAttrs, error)
	DeleteTodoList(ctx context.Context, id model.ID) (model.ID, error)
	CreateTask(ctx context.Context, listID model.ID, name string) (model.TaskAttrs, error)
	UpdateTask(ctx context.Context, id model.ID, patch model.TaskPatch) (model.TaskAttrs, error)
	DeleteTask(ctx context.Context, id model.ID) (model.ID, error)
}

var (
	ErrNotFound     = errors.New("not found")
	ErrNoActiveList = errors.New("no active todo list")
)

// NoSelectionText is shown in the task container while no list is selected.
const NoSelectionText = "Select a todo list to see its tasks"

// EmptyListText is shown in the task container when the selected list has no
// tasks.
const EmptyListText = "No tasks yet"

// Workspace ties the list store, the task store and the selection together and
// serializes their mutations. It is created once per session and passed to
// whatever needs it.
type Workspace struct {
	mu sync.Mutex

	Lists     *Lists
	Tasks     *Tasks
	Selection *Selection
}

// New wires the stores to backend. Outcomes are reported to sink.
func New(backend Backend, sink notify.Sink) *Workspace {
	if sink == nil {
		sink = notify.Discard
	}
	w := &Workspace{}
	w.Lists = &Lists{
		ws:   w,
		api:  backend,
		sink: sink,
		col:  newCollection(render.ListContainer(), render.TodoList),
	}
	w.Tasks = &Tasks{
		ws:   w,
		api:  backend,
		sink: sink,
		col:  newCollection(render.TaskContainer(), render.Task),
	}
	w.Selection = &Selection{ws: w, api: backend, sink: sink}
	render.Placeholder(w.Tasks.col.container, NoSelectionText)
	return w
}

// Lock and Unlock expose the workspace lock to the UI layer, which reads
// entities and mutates edit forms inside rendered nodes.
func (w *Workspace) Lock()   { w.mu.Lock() }
func (w *Workspace) Unlock() { w.mu.Unlock() }

// View runs fn with the lock held. Use it to read entities or draw containers.
func (w *Workspace) View(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

// ListContainer and TaskContainer are the nodes the stores render into. Read
// them inside View.
func (w *Workspace) ListContainer() *view.Node { return w.Lists.col.container }
func (w *Workspace) TaskContainer() *view.Node { return w.Tasks.col.container }
