// Package render draws entities into their render handles. Rendering is
// idempotent: the handle's node and its parts are created once and mutated on
// every later call, so node identity is stable for as long as the entity lives.
package render

import (
	"slices"

	"github.com/muesli/reflow/truncate"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/view"
)

// Data attribute keys event dispatch reads to resolve a node to its entity.
const (
	ListIDKey = "todo-list-id"
	TaskIDKey = "task-id"
)

const maxNameWidth = 80

func label(s string) string {
	return truncate.StringWithTail(s, maxNameWidth, "…")
}

func link(class, icon string) func() *view.Node {
	return func() *view.Node {
		n := view.New("a", class)
		if icon != "" {
			n.Append(view.New("i", "fa", icon))
		}
		return n
	}
}

// attach makes parts the exact children of el, leaving el untouched when they
// already are.
func attach(h *view.Handle, el *view.Node, parts ...*view.Node) {
	if h.Suspended() || slices.Equal(el.Children(), parts) {
		return
	}
	el.Clear()
	el.Append(parts...)
}

// TodoList renders l into its handle and returns the handle's node.
//
//	<li class="todo-list [active]" data-todo-list-id=ID>
//	  <a class="selectTodoList">Name</a>
//	  <a class="editTodoList"><i class="fa fa-pencil-alt"></i></a>
//	  <a class="deleteTodoList"><i class="fa fa-trash-alt"></i></a>
//	</li>
func TodoList(l *model.TodoList) *view.Node {
	h := l.Handle()
	id := l.ID.String()

	el, _ := h.Ensure("li", "todo-list")
	el.SetData(ListIDKey, id)
	el.ToggleClass("active", l.Active)

	name := h.Part("name", link("selectTodoList", ""))
	name.SetData(ListIDKey, id)
	name.SetText(label(l.Name))

	edit := h.Part("edit", link("editTodoList", "fa-pencil-alt"))
	edit.SetData(ListIDKey, id)

	del := h.Part("delete", link("deleteTodoList", "fa-trash-alt"))
	del.SetData(ListIDKey, id)

	attach(h, el, name, edit, del)
	return el
}

// Task renders t into its handle and returns the handle's node.
func Task(t *model.Task) *view.Node {
	h := t.Handle()
	id := t.ID.String()

	el, _ := h.Ensure("li", "task")
	el.SetData(TaskIDKey, id)
	el.ToggleClass("completed", t.Completed)

	toggle := h.Part("toggle", link("toggleComplete", ""))
	toggle.SetData(TaskIDKey, id)
	box := checkbox(toggle)
	box.ToggleClass("fa-check-square", t.Completed)
	box.ToggleClass("fa-square", !t.Completed)

	name := h.Part("name", func() *view.Node { return view.New("span", "name") })
	name.SetText(label(t.Name))
	name.ToggleClass("line-through", t.Completed)

	notes := h.Part("notes", func() *view.Node { return view.New("p", "notes") })
	notes.SetText(t.Notes)
	notes.ToggleClass("empty", t.Notes == "")

	edit := h.Part("edit", link("editTask", "fa-pencil-alt"))
	edit.SetData(TaskIDKey, id)

	del := h.Part("delete", link("deleteTask", "fa-trash-alt"))
	del.SetData(TaskIDKey, id)

	attach(h, el, toggle, name, notes, edit, del)
	return el
}

func checkbox(toggle *view.Node) *view.Node {
	if kids := toggle.Children(); len(kids) > 0 {
		return kids[0]
	}
	box := view.New("i", "fa")
	toggle.Append(box)
	return box
}

// ListContainer builds the node the lists are appended to.
func ListContainer() *view.Node {
	n := view.New("ul", "list-none")
	n.SetAttr("id", "lists")
	return n
}

// TaskContainer builds the node the resident tasks are appended to.
func TaskContainer() *view.Node {
	n := view.New("ul", "list-none")
	n.SetAttr("id", "tasks")
	return n
}

// Placeholder empties container and leaves a single message in it.
func Placeholder(container *view.Node, text string) *view.Node {
	container.Clear()
	p := view.New("p", "placeholder")
	p.SetText(text)
	container.Append(p)
	return p
}
