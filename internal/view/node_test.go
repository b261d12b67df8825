package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Classes(t *testing.T) {
	n := New("li", "task completed", "task")
	assert.Equal(t, []string{"task", "completed"}, n.Classes())

	n.ToggleClass("completed", false)
	n.ToggleClass("active", true)
	n.ToggleClass("active", true)
	assert.Equal(t, []string{"task", "active"}, n.Classes())
	assert.True(t, n.HasClass("active"))
	assert.False(t, n.HasClass("completed"))
}

func TestNode_AppendReparents(t *testing.T) {
	a, b := New("ul"), New("ul")
	x, y := New("li"), New("li")

	a.Append(x, y)
	require.Equal(t, 2, a.Len())

	b.Append(x)
	assert.Equal(t, 1, a.Len())
	assert.False(t, a.Contains(x))
	assert.True(t, b.Contains(x))
	assert.Same(t, b, x.Parent())

	// Appending an existing child moves it to the end.
	a.Append(New("li"))
	first := a.Children()[0]
	a.Append(first)
	assert.Same(t, first, a.Children()[1])
}

func TestNode_RemoveAndClear(t *testing.T) {
	ul := New("ul")
	li := New("li")
	ul.Append(li, New("li"))

	li.Remove()
	li.Remove()
	assert.Nil(t, li.Parent())
	assert.Equal(t, 1, ul.Len())

	kids := ul.Children()
	ul.Clear()
	assert.Zero(t, ul.Len())
	for _, k := range kids {
		assert.Nil(t, k.Parent())
	}
}

func TestNode_TextContent(t *testing.T) {
	li := New("li")
	a := New("a")
	a.SetText("Groceries")
	i := New("i", "fa", "fa-edit")
	li.Append(a, i)
	li.SetText(">")

	assert.Equal(t, ">Groceries", li.TextContent())
	assert.Equal(t, "Groceries", a.TextContent())
}

func TestNode_Closest(t *testing.T) {
	li := New("li")
	li.SetData("task-id", "7")
	a := New("a")
	icon := New("i")
	a.Append(icon)
	li.Append(a)

	n, v := icon.Closest("task-id")
	assert.Same(t, li, n)
	assert.Equal(t, "7", v)

	n, v = icon.Closest("todo-list-id")
	assert.Nil(t, n)
	assert.Empty(t, v)
}

func TestNode_Find(t *testing.T) {
	root := New("div")
	form := New("form")
	input := New("input")
	input.SetAttr("name", "notes")
	form.Append(New("input"), input)
	root.Append(form)

	got := root.Find(func(n *Node) bool { return n.Attr("name") == "notes" })
	assert.Same(t, input, got)
	assert.Nil(t, root.Find(func(n *Node) bool { return n.Tag == "button" }))

	var tags []string
	root.Walk(func(n *Node) bool {
		tags = append(tags, n.Tag)
		return n.Tag != "form"
	})
	if diff := cmp.Diff([]string{"div", "form"}, tags); diff != "" {
		t.Errorf("walk order (-want +got):\n%s", diff)
	}
}

func TestHandle_Lifecycle(t *testing.T) {
	var h Handle
	assert.Nil(t, h.Node())

	n, created := h.Ensure("li", "todo-list")
	require.True(t, created)
	again, created := h.Ensure("li", "todo-list")
	assert.False(t, created)
	assert.Same(t, n, again)

	builds := 0
	build := func() *Node { builds++; return New("a") }
	p := h.Part("name", build)
	assert.Same(t, p, h.Part("name", build))
	assert.Equal(t, 1, builds)

	ul := New("ul")
	ul.Append(n)
	h.Suspend()
	assert.True(t, h.Suspended())

	h.Release()
	assert.Nil(t, h.Node())
	assert.False(t, h.Suspended())
	assert.Zero(t, ul.Len())

	fresh, created := h.Ensure("li")
	assert.True(t, created)
	assert.NotSame(t, n, fresh)
}
