package edit

import (
	"context"
	"strings"
	"sync"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/render"
	"github.com/idilsaglam/todolists/internal/view"
)

// ListUpdater is the list store's update operation.
type ListUpdater interface {
	Update(ctx context.Context, id model.ID, name string) (*model.TodoList, error)
}

// TaskUpdater is the task store's update operation.
type TaskUpdater interface {
	Update(ctx context.Context, id model.ID, patch model.TaskPatch) (*model.Task, error)
}

type variant int

const (
	kindInline variant = iota // takes over the entity's own node
	kindModal                 // shows the form in a Modal
)

// Session is one open edit.
type Session struct {
	key     string
	form    *Form
	kind    variant
	reg     *Sessions
	refresh func()
	commit  func(ctx context.Context) error
	close   func()
}

// Form returns the session's form.
func (s *Session) Form() *Form { return s.form }

// Key identifies the entity under edit, e.g. "task:12".
func (s *Session) Key() string { return s.key }

// Inline reports whether the session edits in place rather than in a modal.
func (s *Session) Inline() bool { return s.kind == kindInline }

// Set writes a form field under the registry's lock.
func (s *Session) Set(name, value string) {
	s.reg.lock.Lock()
	defer s.reg.lock.Unlock()
	s.form.Set(name, value)
}

func (s *Session) Value(name string) string {
	s.reg.lock.Lock()
	defer s.reg.lock.Unlock()
	return s.form.Value(name)
}

// Commit saves the form through the owning store. On failure the session stays
// open with its values intact so the user can retry.
func (s *Session) Commit(ctx context.Context) error {
	if err := s.commit(ctx); err != nil {
		return err
	}
	s.reg.discard(s)
	return nil
}

// Cancel discards the session without touching the entity.
func (s *Session) Cancel() { s.reg.discard(s) }

// Sessions tracks open edits, one per entity.
type Sessions struct {
	lock  sync.Locker
	modal Modal

	mu   sync.Mutex
	open map[string]*Session
}

// NewSessions returns a registry. lock guards entities and their nodes (the
// store workspace); modal hosts modal sessions.
func NewSessions(lock sync.Locker, modal Modal) *Sessions {
	return &Sessions{lock: lock, modal: modal, open: map[string]*Session{}}
}

// Get returns the open session for key.
func (r *Sessions) Get(key string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.open[key]
	return s, ok
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

// reuse returns the open session for key after refreshing it, or nil.
func (r *Sessions) reuse(key string) *Session {
	r.mu.Lock()
	s, ok := r.open[key]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	s.refresh()
	return s
}

func (r *Sessions) register(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open[s.key] = s
}

func (r *Sessions) discard(s *Session) {
	r.mu.Lock()
	cur, ok := r.open[s.key]
	if ok && cur == s {
		delete(r.open, s.key)
	}
	r.mu.Unlock()
	if ok && cur == s {
		s.close()
	}
}

// ListKey and TaskKey build session keys.
func ListKey(id model.ID) string { return "todo_list:" + id.String() }
func TaskKey(id model.ID) string { return "task:" + id.String() }

// EditList opens an inline rename of l. The list's node is rewritten into a
// form; its previous children come back when the session ends. Calling it again
// while the session is open refreshes the form from l.
func (r *Sessions) EditList(l *model.TodoList, lists ListUpdater) *Session {
	key := ListKey(l.ID)
	if s := r.reuse(key); s != nil {
		return s
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	h := l.Handle()
	el := render.TodoList(l)
	prior := el.Children()
	form := newForm("editTodoListForm", render.ListIDKey, l.ID.String(), "name")
	form.Set("name", l.Name)
	h.Suspend()
	el.Clear()
	el.Append(form.Node())

	s := &Session{key: key, form: form, kind: kindInline, reg: r}
	s.refresh = func() {
		r.lock.Lock()
		defer r.lock.Unlock()
		form.Set("name", l.Name)
	}
	s.commit = func(ctx context.Context) error {
		name := s.Value("name")
		_, err := lists.Update(ctx, l.ID, strings.TrimSpace(name))
		return err
	}
	s.close = func() {
		r.lock.Lock()
		defer r.lock.Unlock()
		if restore(h, el, prior) {
			render.TodoList(l)
		}
	}
	r.register(s)
	return s
}

// restore hands el back to the renderer with its previous children. It
// returns false when the entity was deleted while the edit was open.
func restore(h *view.Handle, el *view.Node, prior []*view.Node) bool {
	h.Resume()
	if h.Node() != el {
		return false
	}
	el.Clear()
	el.Append(prior...)
	return true
}

// EditTask opens t's name and notes in the modal. Calling it again while the
// session is open refreshes the form from t and shows the modal if hidden.
func (r *Sessions) EditTask(t *model.Task, tasks TaskUpdater) *Session {
	key := TaskKey(t.ID)
	if s := r.reuse(key); s != nil {
		r.lock.Lock()
		if !r.modal.Active() {
			r.modal.Populate("Edit Task", s.form.Node())
			r.modal.Toggle()
		}
		r.lock.Unlock()
		return s
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	form := newForm("editTaskForm", render.TaskIDKey, t.ID.String(), "name", "notes")
	fill := func() {
		form.Set("name", t.Name)
		form.Set("notes", t.Notes)
	}
	fill()
	r.modal.Populate("Edit Task", form.Node())
	if !r.modal.Active() {
		r.modal.Toggle()
	}

	s := &Session{key: key, form: form, kind: kindModal, reg: r}
	s.refresh = func() {
		r.lock.Lock()
		defer r.lock.Unlock()
		fill()
	}
	s.commit = func(ctx context.Context) error {
		r.lock.Lock()
		name := strings.TrimSpace(form.Value("name"))
		notes := form.Value("notes")
		r.lock.Unlock()
		_, err := tasks.Update(ctx, t.ID, model.TaskPatch{Name: &name, Notes: &notes})
		return err
	}
	s.close = func() {
		r.lock.Lock()
		defer r.lock.Unlock()
		if r.modal.Active() {
			r.modal.Toggle()
		}
		r.modal.Populate("", nil)
	}
	r.register(s)
	return s
}
