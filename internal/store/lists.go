package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/todolists/internal/errs"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/notify"
)

// Lists holds every todo list known to the client.
type Lists struct {
	ws   *Workspace
	api  Backend
	sink notify.Sink
	col  *collection[*model.TodoList]
}

// LoadAll fetches every list and replaces the collection with the result.
func (s *Lists) LoadAll(ctx context.Context) ([]*model.TodoList, error) {
	attrs, err := s.api.TodoLists(ctx)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}

	s.ws.mu.Lock()
	lists := make([]*model.TodoList, 0, len(attrs))
	for _, a := range attrs {
		lists = append(lists, s.newList(a))
	}
	s.ws.Selection.rebind(lists)
	s.col.replace(lists)
	out := s.col.all()
	s.ws.mu.Unlock()
	return out, nil
}

// newList builds a list from server attributes. The highlight flag is derived
// from the selection, not taken from the payload.
func (s *Lists) newList(a model.ListAttrs) *model.TodoList {
	l := model.NewTodoList(a)
	l.Active = s.ws.Selection.isActive(l.ID)
	return l
}

// FindByID returns the list with id or an ErrNotFound precondition error.
func (s *Lists) FindByID(id model.ID) (*model.TodoList, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()
	return s.findLocked(id)
}

func (s *Lists) findLocked(id model.ID) (*model.TodoList, error) {
	l, ok := s.col.find(id)
	if !ok {
		return nil, errs.Precondition(ErrNotFound, "todo list %s not found", id)
	}
	return l, nil
}

// Lookup resolves an identifier read off a node. Failures are reported to the
// sink because a stale node can legitimately point at a deleted list.
func (s *Lists) Lookup(raw string) (*model.TodoList, error) {
	id, err := model.ParseID(raw)
	if err != nil {
		err = errs.Precondition(ErrNotFound, "todo list %q not found", raw)
		notify.Fail(s.sink, err)
		return nil, err
	}
	l, err := s.FindByID(id)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}
	return l, nil
}

// All returns the lists in display order.
func (s *Lists) All() []*model.TodoList {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()
	return s.col.all()
}

func (s *Lists) Len() int {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()
	return s.col.len()
}

// Create asks the backend for a new list and appends the list it returns.
func (s *Lists) Create(ctx context.Context, name string) (*model.TodoList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		err := errs.Precondition(nil, "todo list name cannot be empty")
		notify.Fail(s.sink, err)
		return nil, err
	}
	a, err := s.api.CreateTodoList(ctx, name)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}

	s.ws.mu.Lock()
	l := s.newList(a)
	s.col.add(l)
	s.ws.mu.Unlock()

	notify.OK(s.sink, fmt.Sprintf("Created todo list %q", l.Name))
	return l, nil
}

// Update renames a list and merges the server's copy onto it.
func (s *Lists) Update(ctx context.Context, id model.ID, name string) (*model.TodoList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		err := errs.Precondition(nil, "todo list name cannot be empty")
		notify.Fail(s.sink, err)
		return nil, err
	}
	l, err := s.FindByID(id)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}
	a, err := s.api.UpdateTodoList(ctx, id, name)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}

	s.ws.mu.Lock()
	l.Merge(a)
	l.Active = s.ws.Selection.isActive(l.ID)
	if s.col.contains(l) {
		s.col.redraw(l)
	}
	s.ws.mu.Unlock()

	notify.OK(s.sink, fmt.Sprintf("Updated todo list %q", l.Name))
	return l, nil
}

// Delete removes a list. Deleting the selected list clears the selection and
// resets the task container to its placeholder.
func (s *Lists) Delete(ctx context.Context, id model.ID) (model.ID, error) {
	if _, err := s.FindByID(id); err != nil {
		notify.Fail(s.sink, err)
		return 0, err
	}
	deleted, err := s.api.DeleteTodoList(ctx, id)
	if err != nil {
		notify.Fail(s.sink, err)
		return 0, err
	}

	s.ws.mu.Lock()
	var name string
	if i := s.col.index(id); i >= 0 {
		name = s.col.removeAt(i).Name
	}
	if s.ws.Selection.isActive(id) {
		s.ws.Selection.clearLocked()
	}
	s.ws.mu.Unlock()

	notify.OK(s.sink, fmt.Sprintf("Deleted todo list %q", name))
	return deleted, nil
}
