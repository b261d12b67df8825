package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/api/apitest"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/notify"
	"github.com/idilsaglam/todolists/internal/store"
)

type harness struct {
	srv   *apitest.Server
	toast *notify.Toast
	ws    *store.Workspace
}

// testModel returns a loaded model against an in-memory backend. The toast
// expires after a millisecond so draining commands stays fast.
func testModel(t *testing.T) (Model, *harness) {
	t.Helper()
	srv := apitest.New(
		[]model.ListAttrs{{ID: 1, Name: "Groceries"}, {ID: 2, Name: "Chores"}},
		[]model.TaskAttrs{
			{ID: 10, Name: "Milk", TodoListID: 1},
			{ID: 11, Name: "Bread", TodoListID: 1, Notes: "sourdough"},
		},
	)
	t.Cleanup(srv.Close)
	c, err := api.New(srv.URL)
	require.NoError(t, err)

	h := &harness{srv: srv, toast: notify.NewToast(time.Millisecond, notify.WithoutTimer())}
	h.ws = store.New(c, h.toast)
	m := New(context.Background(), h.ws, h.toast)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.notes.Cursor.SetMode(cursor.CursorStatic)
	return run(t, m, m.Init()), h
}

// run executes cmd and feeds what it produces back into the model until no
// command is left.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
		return m
	default:
		next, cmd := m.Update(msg)
		return run(t, next.(Model), cmd)
	}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return run(t, next.(Model), cmd)
}

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEscape}
	space = tea.KeyMsg{Type: tea.KeySpace}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

// --- Browse ---

func TestModel_LoadsLists(t *testing.T) {
	m, h := testModel(t)

	assert.Equal(t, 2, h.ws.Lists.Len())
	out := m.View()
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Chores")
	assert.Contains(t, out, store.NoSelectionText)
}

func TestModel_SelectList(t *testing.T) {
	m, h := testModel(t)

	m = send(t, m, down)
	m = send(t, m, keys("k"))
	m = send(t, m, enter)

	active := h.ws.Selection.Active()
	require.NotNil(t, active)
	assert.Equal(t, model.ID(1), active.ID)
	out := m.View()
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "sourdough")
}

func TestModel_CursorClamps(t *testing.T) {
	m, _ := testModel(t)

	for i := 0; i < 5; i++ {
		m = send(t, m, down)
	}
	assert.Equal(t, 1, m.listCursor)
	m = send(t, m, tab)
	m = send(t, m, down)
	assert.Equal(t, 0, m.taskCursor)
}

func TestModel_ToggleTask(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, enter)
	m = send(t, m, tab)
	m = send(t, m, space)

	assert.True(t, h.srv.Tasks(1)[0].Completed)
	task, err := h.ws.Tasks.FindByID(10)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, notify.Notification{Severity: notify.Success, Text: `Updated task "Milk"`}, h.toast.Current())
	assert.False(t, h.toast.Visible())
}

// --- Add ---

func TestModel_AddTask(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, enter)
	m = send(t, m, tab)
	m = send(t, m, keys("a"))
	require.Equal(t, modeAddTask, m.mode)

	m = send(t, m, keys("Eggs"))
	m = send(t, m, enter)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 3, h.ws.Tasks.Len())
	assert.Len(t, h.srv.Tasks(1), 3)
	assert.Contains(t, m.View(), "Eggs")
}

func TestModel_AddTaskWithoutList(t *testing.T) {
	m, h := testModel(t)
	before := len(h.srv.Requests())

	m = send(t, m, tab)
	m = send(t, m, keys("a"))
	m = send(t, m, keys("Eggs"))
	send(t, m, enter)

	assert.Equal(t, before, len(h.srv.Requests()))
	assert.Equal(t, notify.Notification{Severity: notify.Error, Text: "Select a todo list before adding tasks"}, h.toast.Current())
}

func TestModel_AddList(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, keys("a"))
	require.Equal(t, modeAddList, m.mode)
	m = send(t, m, keys("Work"))
	m = send(t, m, enter)

	assert.Equal(t, 3, h.ws.Lists.Len())
	assert.Contains(t, m.View(), "Work")
}

func TestModel_AddCancelled(t *testing.T) {
	m, h := testModel(t)
	before := len(h.srv.Requests())
	m = send(t, m, keys("a"))
	m = send(t, m, keys("Work"))
	m = send(t, m, esc)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, before, len(h.srv.Requests()))
}

// --- Delete ---

func TestModel_DeleteTaskConfirm(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, enter)
	m = send(t, m, tab)

	m = send(t, m, keys("d"))
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), "delete this task")
	m = send(t, m, keys("n"))
	assert.Equal(t, 2, h.ws.Tasks.Len())

	m = send(t, m, keys("d"))
	m = send(t, m, keys("y"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 1, h.ws.Tasks.Len())
	assert.Len(t, h.srv.Tasks(1), 1)
}

func TestModel_DeleteSelectedList(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, enter)
	m = send(t, m, keys("d"))
	m = send(t, m, enter)

	assert.Nil(t, h.ws.Selection.Active())
	assert.Equal(t, 1, h.ws.Lists.Len())
	assert.Contains(t, m.View(), store.NoSelectionText)
}

// --- Edit ---

func TestModel_InlineRename(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, down)
	m = send(t, m, keys("e"))
	require.Equal(t, modeEditList, m.mode)
	require.NotNil(t, m.session)
	assert.True(t, m.session.Inline())
	assert.Equal(t, "Chores", m.input.Value())

	m = send(t, m, keys(" & errands"))
	assert.Equal(t, "Chores & errands", m.session.Value("name"))
	m = send(t, m, enter)

	assert.Equal(t, modeBrowse, m.mode)
	l, err := h.ws.Lists.FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Chores & errands", l.Name)
	assert.Len(t, l.Element.Node().Children(), 3)
}

func TestModel_InlineRenameFailureStaysOpen(t *testing.T) {
	m, h := testModel(t)
	h.srv.Fail("PUT /todo_lists/1", 422, "name is taken")
	m = send(t, m, keys("e"))
	m = send(t, m, keys("!"))
	m = send(t, m, enter)

	assert.Equal(t, modeEditList, m.mode)
	assert.Equal(t, "name is taken", h.toast.Current().Text)

	m = send(t, m, esc)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Zero(t, m.sessions.Len())
}

func TestModel_ModalEditTask(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, enter)
	m = send(t, m, tab)
	m = send(t, m, down)
	m = send(t, m, keys("e"))

	require.Equal(t, modeEditTask, m.mode)
	assert.True(t, m.overlay.Active())
	assert.Contains(t, m.View(), "Edit Task")
	assert.Equal(t, "Bread", m.input.Value())
	assert.Equal(t, "sourdough", m.notes.Value())

	m = send(t, m, tab)
	m = send(t, m, keys(", sliced"))
	m = send(t, m, enter)

	assert.Equal(t, modeBrowse, m.mode)
	assert.False(t, m.overlay.Active())
	task, err := h.ws.Tasks.FindByID(11)
	require.NoError(t, err)
	assert.Equal(t, "sourdough, sliced", task.Notes)
	assert.Equal(t, "Bread", task.Name)
}

func TestModel_ModalCancel(t *testing.T) {
	m, h := testModel(t)
	m = send(t, m, enter)
	m = send(t, m, tab)
	m = send(t, m, keys("e"))
	m = send(t, m, keys("xyz"))
	m = send(t, m, esc)

	assert.Equal(t, modeBrowse, m.mode)
	assert.False(t, m.overlay.Active())
	task, err := h.ws.Tasks.FindByID(10)
	require.NoError(t, err)
	assert.Equal(t, "Milk", task.Name)
}
