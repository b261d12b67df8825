// Package apitest runs an in-memory todo list backend for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/idilsaglam/todolists/internal/model"
)

// Request is one request the server saw.
type Request struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

type failure struct {
	status int
	body   string
}

// Server is an httptest server holding lists and tasks in memory. Responses
// carry a created_at field the client is expected to ignore.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   model.ID
	lists    []model.ListAttrs
	tasks    []model.TaskAttrs
	failures map[string]failure
	gates    map[string][]chan struct{}
	requests []Request
}

// New starts a server seeded with lists and tasks.
func New(lists []model.ListAttrs, tasks []model.TaskAttrs) *Server {
	s := &Server{
		nextID:   100,
		lists:    slices.Clone(lists),
		tasks:    slices.Clone(tasks),
		failures: map[string]failure{},
		gates:    map[string][]chan struct{}{},
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.Methods(http.MethodGet).Path("/todo_lists").HandlerFunc(s.getLists)
	r.Methods(http.MethodPost).Path("/todo_lists").HandlerFunc(s.createList)
	r.Methods(http.MethodGet).Path("/todo_lists/{id:[0-9]+}").HandlerFunc(s.getList)
	r.Methods(http.MethodPut).Path("/todo_lists/{id:[0-9]+}").HandlerFunc(s.updateList)
	r.Methods(http.MethodDelete).Path("/todo_lists/{id:[0-9]+}").HandlerFunc(s.deleteList)
	r.Methods(http.MethodPost).Path("/tasks").HandlerFunc(s.createTask)
	r.Methods(http.MethodPut).Path("/tasks/{id:[0-9]+}").HandlerFunc(s.updateTask)
	r.Methods(http.MethodDelete).Path("/tasks/{id:[0-9]+}").HandlerFunc(s.deleteTask)

	s.Server = httptest.NewServer(r)
	return s
}

// Fail makes every later request matching "METHOD /path" answer with status
// and body until Recover is called.
func (s *Server) Fail(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Gate holds the next request matching route before it is handled. The
// returned func releases it.
func (s *Server) Gate(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[route] = append(s.gates[route], ch)
	s.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Requests returns every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Tasks returns the server-side tasks of a list.
func (s *Server) Tasks(listID model.ID) []model.TaskAttrs {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TaskAttrs
	for _, t := range s.tasks {
		if t.TodoListID == listID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body strings.Builder
		if r.Body != nil {
			var raw json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&raw)
			body.Write(raw)
			r.Body = http.NoBody
		}
		route := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: body.String()})
		var gate chan struct{}
		if q := s.gates[route]; len(q) > 0 {
			gate, s.gates[route] = q[0], q[1:]
		}
		f, failing := s.failures[route]
		s.mu.Unlock()

		if gate != nil {
			<-gate
		}
		if failing {
			http.Error(w, f.body, f.status)
			return
		}
		ctx := withBody(r.Context(), body.String())
		m := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))
		slog.Debug("handled", "method", r.Method, "url", r.URL, "duration", m.Duration, "status", m.Code)
	})
}

func (s *Server) allocID() model.ID {
	s.nextID++
	return s.nextID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string, id model.ID) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("%s %d not found", what, id)})
}

func blank(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]string{"name": {"can't be blank"}})
}

func routeID(r *http.Request) model.ID {
	id, _ := model.ParseID(mux.Vars(r)["id"])
	return id
}
