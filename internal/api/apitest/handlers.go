package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/idilsaglam/todolists/internal/model"
)

type bodyKey struct{}

func withBody(ctx context.Context, body string) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

// decode reads the recorded body, unwrapping it from key when the client sent
// the wrapped form.
func decode(r *http.Request, key string, v any) error {
	raw, _ := r.Context().Value(bodyKey{}).(string)
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil {
		if inner, ok := wrapped[key]; ok {
			return json.Unmarshal(inner, v)
		}
	}
	return json.Unmarshal([]byte(raw), v)
}

type listJSON struct {
	model.ListAttrs
	CreatedAt string `json:"created_at"`
}

type taskJSON struct {
	model.TaskAttrs
	CreatedAt string `json:"created_at"`
}

const stamp = "2024-01-01T00:00:00Z"

func (s *Server) getLists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]listJSON, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, listJSON{ListAttrs: l, CreatedAt: stamp})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listIndex(id model.ID) int {
	return slices.IndexFunc(s.lists, func(l model.ListAttrs) bool { return l.ID == id })
}

func (s *Server) taskIndex(id model.ID) int {
	return slices.IndexFunc(s.tasks, func(t model.TaskAttrs) bool { return t.ID == id })
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.listIndex(id)
	if i < 0 {
		notFound(w, "todo list", id)
		return
	}
	detail := model.ListDetail{ListAttrs: s.lists[i], Tasks: []model.TaskAttrs{}}
	for _, t := range s.tasks {
		if t.TodoListID == id {
			detail.Tasks = append(detail.Tasks, t)
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) createList(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decode(r, "todo_list", &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		blank(w)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l := model.ListAttrs{ID: s.allocID(), Name: in.Name}
	s.lists = append(s.lists, l)
	writeJSON(w, http.StatusCreated, listJSON{ListAttrs: l, CreatedAt: stamp})
}

func (s *Server) updateList(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	var in struct {
		Name string `json:"name"`
	}
	if err := decode(r, "todo_list", &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		blank(w)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.listIndex(id)
	if i < 0 {
		notFound(w, "todo list", id)
		return
	}
	s.lists[i].Name = in.Name
	writeJSON(w, http.StatusOK, listJSON{ListAttrs: s.lists[i], CreatedAt: stamp})
}

func (s *Server) deleteList(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.listIndex(id)
	if i < 0 {
		notFound(w, "todo list", id)
		return
	}
	s.lists = slices.Delete(s.lists, i, i+1)
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.TaskAttrs) bool { return t.TodoListID == id })
	writeJSON(w, http.StatusOK, map[string]model.ID{"id": id})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name       string   `json:"name"`
		TodoListID model.ID `json:"todo_list_id"`
	}
	if err := decode(r, "task", &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		blank(w)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listIndex(in.TodoListID) < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string][]string{"todo_list": {"must exist"}})
		return
	}
	t := model.TaskAttrs{ID: s.allocID(), Name: in.Name, TodoListID: in.TodoListID}
	s.tasks = append(s.tasks, t)
	writeJSON(w, http.StatusCreated, taskJSON{TaskAttrs: t, CreatedAt: stamp})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	var in model.TaskPatch
	if err := decode(r, "task", &in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		blank(w)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		notFound(w, "task", id)
		return
	}
	t := &s.tasks[i]
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Notes != nil {
		t.Notes = *in.Notes
	}
	writeJSON(w, http.StatusOK, taskJSON{TaskAttrs: *t, CreatedAt: stamp})
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := routeID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		notFound(w, "task", id)
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	writeJSON(w, http.StatusOK, map[string]model.ID{"id": id})
}
