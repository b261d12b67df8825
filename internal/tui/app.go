// Package tui is the interactive client. It owns the page: the list and task
// containers the stores render into, the toast and the edit modal. Key presses
// are dispatched by reading the data attributes of the node under the cursor.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/edit"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/notify"
	"github.com/idilsaglam/todolists/internal/render"
	"github.com/idilsaglam/todolists/internal/store"
	"github.com/idilsaglam/todolists/internal/view"
)

type pane int

const (
	paneLists pane = iota
	paneTasks
)

type mode int

const (
	modeBrowse mode = iota
	modeAddList
	modeAddTask
	modeEditList
	modeEditTask
	modeConfirm
)

// messages
type (
	loadedMsg       struct{ err error }
	doneMsg         struct{ err error }
	committedMsg    struct{ err error }
	toastExpiredMsg struct{ seq uint64 }
)

// Model is the Bubble Tea model of the client.
type Model struct {
	ctx      context.Context
	ws       *store.Workspace
	toast    *notify.Toast
	overlay  *edit.Overlay
	sessions *edit.Sessions

	keys keyMap
	help help.Model

	focus      pane
	listCursor int
	taskCursor int
	mode       mode

	input   textinput.Model // add, inline rename, modal name
	notes   textinput.Model // modal notes
	field   int             // focused modal field: 0 name, 1 notes
	session *edit.Session

	confirmText string
	confirmCmd  tea.Cmd

	lastToast     uint64
	width, height int
}

// New builds the model. toast must be the sink the workspace reports to and
// should be created WithoutTimer; the model drives its expiry.
func New(ctx context.Context, ws *store.Workspace, toast *notify.Toast) Model {
	overlay := edit.NewOverlay()
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 200
	notes := textinput.New()
	notes.Prompt = "notes> "
	notes.CharLimit = 1000
	return Model{
		ctx:      ctx,
		ws:       ws,
		toast:    toast,
		overlay:  overlay,
		sessions: edit.NewSessions(ws, overlay),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    in,
		notes:    notes,
		width:    100,
		height:   30,
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ws *store.Workspace, toast *notify.Toast) error {
	p := tea.NewProgram(New(ctx, ws, toast), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		_, err := ws.Lists.LoadAll(ctx)
		return loadedMsg{err: err}
	}
}

// op runs a store operation off the UI goroutine.
func op(fn func() error) tea.Cmd {
	return func() tea.Msg { return doneMsg{err: fn()} }
}

// toastCmd schedules expiry of a notification shown since the last check.
func (m *Model) toastCmd() tea.Cmd {
	seq := m.toast.Seq()
	if seq == m.lastToast {
		return nil
	}
	m.lastToast = seq
	return tea.Tick(m.toast.Delay(), func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case toastExpiredMsg:
		m.toast.Expire(msg.seq)
		return m, nil
	case loadedMsg, doneMsg:
		m.clampCursors()
	case committedMsg:
		if msg.err == nil {
			m.endEdit()
		}
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	}
	expire := m.toastCmd()
	return m, tea.Batch(cmd, expire)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeAddList, modeAddTask:
		return m.updateAdd(msg)
	case modeEditList:
		return m.updateInlineEdit(msg)
	case modeEditTask:
		return m.updateModalEdit(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Switch):
		if m.focus == paneLists {
			m.focus = paneTasks
		} else {
			m.focus = paneLists
		}
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAddList
		m.input.Placeholder = "New todo list name..."
		if m.focus == paneTasks {
			m.mode = modeAddTask
			m.input.Placeholder = "New task name..."
		}
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Select):
		if m.focus == paneLists {
			return m, m.selectList()
		}
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Toggle):
		if m.focus == paneTasks {
			return m, m.withTask(func(t *model.Task) error {
				_, err := m.ws.Tasks.ToggleComplete(m.ctx, t.ID)
				return err
			})
		}
	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()
	}
	return m, nil
}

// nodeAt returns the id stored under dataKey on the i-th child of container.
func (m Model) nodeAt(container func() *view.Node, i int, dataKey string) (string, bool) {
	var raw string
	var ok bool
	m.ws.View(func() {
		kids := container().Children()
		if i < 0 || i >= len(kids) {
			return
		}
		raw, ok = kids[i].Data(dataKey)
	})
	return raw, ok
}

func (m Model) cursorList() (*model.TodoList, bool) {
	raw, ok := m.nodeAt(m.ws.ListContainer, m.listCursor, render.ListIDKey)
	if !ok {
		return nil, false
	}
	l, err := m.ws.Lists.Lookup(raw)
	return l, err == nil
}

func (m Model) cursorTask() (*model.Task, bool) {
	raw, ok := m.nodeAt(m.ws.TaskContainer, m.taskCursor, render.TaskIDKey)
	if !ok {
		return nil, false
	}
	t, err := m.ws.Tasks.Lookup(raw)
	return t, err == nil
}

func (m Model) withTask(fn func(*model.Task) error) tea.Cmd {
	t, ok := m.cursorTask()
	if !ok {
		return nil
	}
	return op(func() error { return fn(t) })
}

func (m Model) selectList() tea.Cmd {
	l, ok := m.cursorList()
	if !ok {
		return nil
	}
	ctx, sel := m.ctx, m.ws.Selection
	return op(func() error { return sel.Select(ctx, l) })
}

func (m *Model) move(delta int) {
	if m.focus == paneLists {
		m.listCursor += delta
	} else {
		m.taskCursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	var nl, nt int
	m.ws.View(func() {
		nl = m.ws.ListContainer().Len()
		nt = m.ws.TaskContainer().Len()
	})
	m.listCursor = clamp(m.listCursor, nl)
	m.taskCursor = clamp(m.taskCursor, nt)
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m Model) updateAdd(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		addTask := m.mode == modeAddTask
		m.mode = modeBrowse
		m.input.Blur()
		m.input.SetValue("")
		ctx, ws := m.ctx, m.ws
		if addTask {
			return m, op(func() error { _, err := ws.Tasks.Create(ctx, name); return err })
		}
		return m, op(func() error { _, err := ws.Lists.Create(ctx, name); return err })
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEdit() (Model, tea.Cmd) {
	if m.focus == paneLists {
		l, ok := m.cursorList()
		if !ok {
			return m, nil
		}
		m.session = m.sessions.EditList(l, m.ws.Lists)
		m.mode = modeEditList
		m.input.Placeholder = "Todo list name..."
		m.input.SetValue(m.session.Value("name"))
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	}
	t, ok := m.cursorTask()
	if !ok {
		return m, nil
	}
	m.session = m.sessions.EditTask(t, m.ws.Tasks)
	m.mode = modeEditTask
	m.field = 0
	m.input.Placeholder = "Task name..."
	m.input.SetValue(m.session.Value("name"))
	m.notes.SetValue(m.session.Value("notes"))
	m.notes.Blur()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) endEdit() {
	m.mode = modeBrowse
	m.session = nil
	m.input.Blur()
	m.notes.Blur()
	m.input.SetValue("")
	m.notes.SetValue("")
}

func (m Model) commit() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg { return committedMsg{err: s.Commit(ctx)} }
}

func (m Model) updateInlineEdit(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.session.Cancel()
		m.endEdit()
		return m, nil
	case "enter":
		return m, m.commit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.Set("name", m.input.Value())
	return m, cmd
}

func (m Model) updateModalEdit(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.session.Cancel()
		m.endEdit()
		return m, nil
	case "enter":
		return m, m.commit()
	case "tab", "shift+tab":
		m.field = 1 - m.field
		var cmd tea.Cmd
		if m.field == 0 {
			m.notes.Blur()
			cmd = m.input.Focus()
		} else {
			m.input.Blur()
			cmd = m.notes.Focus()
		}
		return m, cmd
	}
	var cmd tea.Cmd
	if m.field == 0 {
		m.input, cmd = m.input.Update(msg)
		m.session.Set("name", m.input.Value())
	} else {
		m.notes, cmd = m.notes.Update(msg)
		m.session.Set("notes", m.notes.Value())
	}
	return m, cmd
}

func (m Model) confirmDelete() (Model, tea.Cmd) {
	ctx, ws := m.ctx, m.ws
	if m.focus == paneLists {
		l, ok := m.cursorList()
		if !ok {
			return m, nil
		}
		m.confirmText = "Are you sure you want to delete this todo list?"
		m.confirmCmd = op(func() error { _, err := ws.Lists.Delete(ctx, l.ID); return err })
	} else {
		t, ok := m.cursorTask()
		if !ok {
			return m, nil
		}
		m.confirmText = "Are you sure you want to delete this task?"
		m.confirmCmd = op(func() error { _, err := ws.Tasks.Delete(ctx, t.ID); return err })
	}
	m.mode = modeConfirm
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	cmd := m.confirmCmd
	m.mode = modeBrowse
	m.confirmCmd = nil
	m.confirmText = ""
	switch msg.String() {
	case "y", "Y", "enter":
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var lists, tasks []string
	var title string
	var done, total int
	m.ws.View(func() {
		for i, n := range m.ws.ListContainer().Children() {
			lists = append(lists, drawListItem(n, m.focus == paneLists && i == m.listCursor, m.input.View()))
		}
		for i, n := range m.ws.TaskContainer().Children() {
			tasks = append(tasks, drawTaskItem(n, m.focus == paneTasks && i == m.taskCursor))
			if n.HasClass("task") {
				total++
				if n.HasClass("completed") {
					done++
				}
			}
		}
	})
	if a := m.ws.Selection.Active(); a != nil {
		m.ws.View(func() { title = a.Name })
	}
	if len(lists) == 0 {
		lists = append(lists, mutedStyle.Render("no todo lists"))
	}

	leftW := m.width/3 - 2
	rightW := m.width - leftW - 6
	left := paneStyle(m.focus == paneLists).Width(leftW).Render(
		titleStyle.Render("Todo Lists") + "\n\n" + strings.Join(lists, "\n"))
	header := titleStyle.Render("Tasks")
	if title != "" {
		header = fmt.Sprintf("%s  %s   %s %d  %s %d",
			titleStyle.Render(title), accentStyle.Render("Tasks"),
			successStyle.Render("✔"), done,
			pendingStyle.Render("•"), total-done)
	}
	right := paneStyle(m.focus == paneTasks).Width(rightW).Render(header + "\n\n" + strings.Join(tasks, "\n"))
	page := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var footer []string
	switch m.mode {
	case modeAddList, modeAddTask:
		label := "Add new todo list"
		if m.mode == modeAddTask {
			label = "Add new task"
		}
		footer = append(footer, paneStyle(true).Render(label+"\n"+m.input.View()))
	case modeConfirm:
		footer = append(footer, errorStyle.Render(m.confirmText)+" "+helpStyle.Render("(y/n)"))
	}
	if m.toast.Visible() {
		n := m.toast.Current()
		style := successStyle
		if n.Severity == notify.Error {
			style = errorStyle
		}
		footer = append(footer, style.Render(n.Text))
	}
	footer = append(footer, helpStyle.Render(m.help.View(m.keys)))
	out := page + "\n" + strings.Join(footer, "\n")

	if m.mode == modeEditTask && m.overlay.Active() {
		box := paneStyle(true).Width(m.width / 2).Render(
			titleStyle.Render(m.overlay.Title()) + "\n\n" + m.input.View() + "\n" + m.notes.View() +
				"\n\n" + helpStyle.Render("tab switch field • enter save • esc cancel"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return out
}
