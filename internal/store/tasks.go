package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/todolists/internal/errs"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/notify"
	"github.com/idilsaglam/todolists/internal/render"
)

// Tasks holds the resident task set: the tasks of the selected list. Tasks of
// other lists are not loaded, and looking one up fails with ErrNotFound.
type Tasks struct {
	ws   *Workspace
	api  Backend
	sink notify.Sink
	col  *collection[*model.Task]
}

// replaceLocked swaps the resident set for tasks scoped to listID.
func (s *Tasks) replaceLocked(listID model.ID, attrs []model.TaskAttrs) {
	tasks := make([]*model.Task, 0, len(attrs))
	for _, a := range attrs {
		if a.TodoListID != listID {
			continue
		}
		tasks = append(tasks, model.NewTask(a))
	}
	s.col.replace(tasks)
}

// FindByID returns the resident task with id or an ErrNotFound precondition
// error.
func (s *Tasks) FindByID(id model.ID) (*model.Task, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()
	t, ok := s.col.find(id)
	if !ok {
		return nil, errs.Precondition(ErrNotFound, "task %s not found", id)
	}
	return t, nil
}

// Lookup resolves an identifier read off a node, reporting failures.
func (s *Tasks) Lookup(raw string) (*model.Task, error) {
	id, err := model.ParseID(raw)
	if err != nil {
		err = errs.Precondition(ErrNotFound, "task %q not found", raw)
		notify.Fail(s.sink, err)
		return nil, err
	}
	t, err := s.FindByID(id)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}
	return t, nil
}

// All returns the resident tasks in display order.
func (s *Tasks) All() []*model.Task {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()
	return s.col.all()
}

func (s *Tasks) Len() int {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()
	return s.col.len()
}

// Create adds a task to the active list. Without an active list it fails
// before any request is sent.
func (s *Tasks) Create(ctx context.Context, name string) (*model.Task, error) {
	active := s.ws.Selection.Active()
	if active == nil {
		err := errs.Precondition(ErrNoActiveList, "Select a todo list before adding tasks")
		notify.Fail(s.sink, err)
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		err := errs.Precondition(nil, "task name cannot be empty")
		notify.Fail(s.sink, err)
		return nil, err
	}
	a, err := s.api.CreateTask(ctx, active.ID, name)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}

	s.ws.mu.Lock()
	t := model.NewTask(a)
	// The selection may have moved while the request was in flight; the task
	// only joins the resident set if it belongs to the list now shown.
	if s.ws.Selection.isActive(t.TodoListID) {
		if s.col.len() == 0 {
			s.col.container.Clear()
		}
		s.col.add(t)
	}
	s.ws.mu.Unlock()

	notify.OK(s.sink, fmt.Sprintf("Added task %q", t.Name))
	return t, nil
}

// Update sends patch and merges every whitelisted field of the response onto
// the task. A patch that sets a blank name fails before any request.
func (s *Tasks) Update(ctx context.Context, id model.ID, patch model.TaskPatch) (*model.Task, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		err := errs.Precondition(nil, "task name cannot be empty")
		notify.Fail(s.sink, err)
		return nil, err
	}
	t, err := s.FindByID(id)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}
	a, err := s.api.UpdateTask(ctx, id, patch)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}

	s.ws.mu.Lock()
	t.Merge(a)
	if s.col.contains(t) {
		s.col.redraw(t)
	}
	s.ws.mu.Unlock()

	notify.OK(s.sink, fmt.Sprintf("Updated task %q", t.Name))
	return t, nil
}

// ToggleComplete flips the task's completed flag on the server.
func (s *Tasks) ToggleComplete(ctx context.Context, id model.ID) (*model.Task, error) {
	t, err := s.FindByID(id)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}
	s.ws.mu.Lock()
	done := !t.Completed
	s.ws.mu.Unlock()
	return s.Update(ctx, id, model.TaskPatch{Completed: &done})
}

// Delete removes a resident task.
func (s *Tasks) Delete(ctx context.Context, id model.ID) (model.ID, error) {
	if _, err := s.FindByID(id); err != nil {
		notify.Fail(s.sink, err)
		return 0, err
	}
	deleted, err := s.api.DeleteTask(ctx, id)
	if err != nil {
		notify.Fail(s.sink, err)
		return 0, err
	}

	s.ws.mu.Lock()
	var name string
	if i := s.col.index(id); i >= 0 {
		name = s.col.removeAt(i).Name
	}
	if s.col.len() == 0 && s.ws.Selection.active != nil {
		render.Placeholder(s.col.container, EmptyListText)
	}
	s.ws.mu.Unlock()

	notify.OK(s.sink, fmt.Sprintf("Deleted task %q", name))
	return deleted, nil
}
