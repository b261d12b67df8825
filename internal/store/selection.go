package store

import (
	"context"

	"github.com/idilsaglam/todolists/internal/errs"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/notify"
	"github.com/idilsaglam/todolists/internal/render"
)

// Selection tracks the active list: the one whose tasks are resident. The
// lists' Active flags mirror it so rendering needs no lookup.
type Selection struct {
	ws   *Workspace
	api  Backend
	sink notify.Sink

	active *model.TodoList
}

// Active returns the selected list or nil.
func (s *Selection) Active() *model.TodoList {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()
	return s.active
}

// Select makes l the active list. The previous list loses its highlight
// immediately; l's detail is then fetched and, on success, its tasks become
// the resident set and l is highlighted. On failure the previous selection is
// restored as it was.
//
// In-flight selects are not cancelled: when two overlap, the one whose
// response arrives last wins.
func (s *Selection) Select(ctx context.Context, l *model.TodoList) error {
	s.ws.mu.Lock()
	if !s.ws.Lists.col.contains(l) {
		s.ws.mu.Unlock()
		err := errs.Precondition(ErrNotFound, "todo list %s not found", l.ID)
		notify.Fail(s.sink, err)
		return err
	}
	prev := s.active
	if prev != nil && prev != l {
		s.highlightLocked(prev, false)
	}
	s.ws.mu.Unlock()

	detail, err := s.api.TodoList(ctx, l.ID)

	s.ws.mu.Lock()
	if err != nil {
		if prev != nil && prev != l && s.active == prev && s.ws.Lists.col.contains(prev) {
			s.highlightLocked(prev, true)
		}
		s.ws.mu.Unlock()
		notify.Fail(s.sink, err)
		return err
	}
	if !s.ws.Lists.col.contains(l) {
		// Deleted while the detail was loading.
		s.ws.mu.Unlock()
		err := errs.Precondition(ErrNotFound, "todo list %s not found", l.ID)
		notify.Fail(s.sink, err)
		return err
	}
	l.Merge(detail.ListAttrs)
	s.active = l
	for _, other := range s.ws.Lists.col.items {
		if other != l && other.Active {
			s.highlightLocked(other, false)
		}
	}
	s.highlightLocked(l, true)
	s.ws.Tasks.replaceLocked(l.ID, detail.Tasks)
	if s.ws.Tasks.col.len() == 0 {
		render.Placeholder(s.ws.Tasks.col.container, EmptyListText)
	}
	s.ws.mu.Unlock()
	return nil
}

// SelectID selects the list with id.
func (s *Selection) SelectID(ctx context.Context, id model.ID) (*model.TodoList, error) {
	l, err := s.ws.Lists.FindByID(id)
	if err != nil {
		notify.Fail(s.sink, err)
		return nil, err
	}
	if err := s.Select(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Selection) highlightLocked(l *model.TodoList, on bool) {
	l.Active = on
	s.ws.Lists.col.redraw(l)
}

func (s *Selection) isActive(id model.ID) bool {
	return s.active != nil && s.active.ID == id
}

// clearLocked drops the selection and empties the task container.
func (s *Selection) clearLocked() {
	s.active = nil
	s.ws.Tasks.col.clear()
	render.Placeholder(s.ws.Tasks.col.container, NoSelectionText)
}

// rebind points the selection at the freshly loaded copy of the active list,
// or clears it when the list is gone.
func (s *Selection) rebind(lists []*model.TodoList) {
	if s.active == nil {
		return
	}
	for _, l := range lists {
		if l.ID == s.active.ID {
			s.active = l
			l.Active = true
			return
		}
	}
	s.clearLocked()
}
