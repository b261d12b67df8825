package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolists/internal/api/apitest"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

type harness struct {
	srv      *apitest.Server
	out, err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("TODO_TOKEN", "")
	t.Setenv("TODO_AUTH_DIR", t.TempDir())

	srv := apitest.New(
		[]model.ListAttrs{{ID: 1, Name: "Groceries"}, {ID: 2, Name: "Chores"}},
		[]model.TaskAttrs{
			{ID: 10, Name: "Milk", TodoListID: 1},
			{ID: 11, Name: "Bread", TodoListID: 1, Completed: true, Notes: "sourdough"},
		},
	)
	t.Cleanup(srv.Close)

	h := &harness{srv: srv, out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	oldOut, oldErr := ui.Out, ui.Err
	ui.Out, ui.Err = h.out, h.err
	t.Cleanup(func() { ui.Out, ui.Err = oldOut, oldErr })
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return Run(append([]string{"--base-url", h.srv.URL, "--no-color"}, args...))
}

func TestRun_Lists(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("lists"))
	assert.Contains(t, h.out.String(), "Groceries")
	assert.Contains(t, h.out.String(), "Chores")
	assert.Empty(t, h.err.String())
}

func TestRun_ListsAddRenameRemove(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("lists", "add", "Work", "stuff"))
	assert.Contains(t, h.out.String(), `Created todo list "Work stuff"`)

	require.Equal(t, 0, h.run("lists", "rename", "101", "Office"))
	assert.Contains(t, h.out.String(), `Updated todo list "Office"`)

	require.Equal(t, 0, h.run("lists", "rm", "2"))
	assert.Contains(t, h.out.String(), `Deleted todo list "Chores"`)

	require.Equal(t, 0, h.run("lists"))
	assert.Contains(t, h.out.String(), "Office")
	assert.NotContains(t, h.out.String(), "Chores")
}

func TestRun_NotFoundExitsOne(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 1, h.run("lists", "rm", "99"))
	assert.Contains(t, h.err.String(), "todo list 99 not found")
}

func TestRun_ServerRejectionExitsOne(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail("POST /todo_lists", 422, "name has already been taken")

	assert.Equal(t, 1, h.run("lists", "add", "Groceries"))
	assert.Contains(t, h.err.String(), "name has already been taken")
}

func TestRun_UsageErrors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 2, h.run("bogus"))
	assert.Equal(t, 2, h.run("lists", "rm"))
	assert.Equal(t, 2, h.run("lists", "rm", "abc"))
	assert.Equal(t, 2, h.run("tasks", "edit", "1", "10"))
	assert.Equal(t, 2, h.run("--nope"))
	assert.Contains(t, h.err.String(), "todo --help")
}

func TestRun_Tasks(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("tasks", "1"))
	out := h.out.String()
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "sourdough")
	assert.Contains(t, out, "50%")
}

func TestRun_TaskLifecycle(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("tasks", "add", "1", "Eggs"))
	assert.Contains(t, h.out.String(), `Added task "Eggs"`)
	require.Len(t, h.srv.Tasks(1), 3)

	require.Equal(t, 0, h.run("tasks", "done", "1", "10"))
	assert.True(t, h.srv.Tasks(1)[0].Completed)

	require.Equal(t, 0, h.run("tasks", "edit", "1", "10", "--notes", "oat"))
	assert.Equal(t, "oat", h.srv.Tasks(1)[0].Notes)
	assert.Equal(t, "Milk", h.srv.Tasks(1)[0].Name)

	require.Equal(t, 0, h.run("tasks", "rm", "1", "10"))
	assert.Len(t, h.srv.Tasks(1), 2)
}

func TestRun_TaskOfOtherList(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 1, h.run("tasks", "done", "2", "10"))
	assert.Contains(t, h.err.String(), "not found")
	assert.False(t, h.srv.Tasks(1)[0].Completed)
}

func TestRun_AuthToken(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("auth", "status"))
	assert.Contains(t, h.out.String(), "not logged in")

	require.Equal(t, 0, h.run("auth", "login", "secret"))
	require.Equal(t, 0, h.run("lists"))
	reqs := h.srv.Requests()
	assert.Equal(t, "Bearer secret", reqs[len(reqs)-1].Auth)

	require.Equal(t, 0, h.run("auth", "whoami"))
	assert.Contains(t, h.out.String(), "Opaque token")

	require.Equal(t, 0, h.run("auth", "logout"))
	require.Equal(t, 0, h.run("lists"))
	reqs = h.srv.Requests()
	assert.Empty(t, reqs[len(reqs)-1].Auth)
}
