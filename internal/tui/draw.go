package tui

import (
	"strings"

	"github.com/idilsaglam/todolists/internal/view"
)

// drawing turns rendered nodes into terminal lines. Class names carry the
// visual state; the nodes themselves are owned by the stores.

func isForm(n *view.Node) bool { return n.Tag == "form" }

func icons(n *view.Node) string {
	var out []string
	for _, c := range n.Children() {
		if c.Tag != "a" {
			continue
		}
		for _, i := range c.Children() {
			for _, cls := range i.Classes() {
				if g, ok := iconGlyphs[cls]; ok {
					out = append(out, g)
				}
			}
		}
	}
	return mutedStyle.Render(strings.Join(out, " "))
}

func cursorPrefix(on bool) string {
	if on {
		return selectedStyle.Render(">") + " "
	}
	return "  "
}

// drawListItem draws one list node. inputView replaces the node's content while
// an inline edit holds it.
func drawListItem(n *view.Node, cursor bool, inputView string) string {
	if n.Find(isForm) != nil {
		return cursorPrefix(cursor) + inputView
	}
	name := ""
	if a := n.Find(func(c *view.Node) bool { return c.HasClass("selectTodoList") }); a != nil {
		name = a.Text()
	}
	if n.HasClass("active") {
		name = activeStyle.Render("● " + name)
	} else {
		name = "  " + name
	}
	return cursorPrefix(cursor) + name + "  " + icons(n)
}

func drawTaskItem(n *view.Node, cursor bool) string {
	if n.HasClass("placeholder") {
		return mutedStyle.Render(n.Text())
	}
	box := mutedStyle.Render(boxUnchecked)
	if n.Find(func(c *view.Node) bool { return c.HasClass("fa-check-square") }) != nil {
		box = successStyle.Render(boxChecked)
	}
	name := ""
	if s := n.Find(func(c *view.Node) bool { return c.HasClass("name") }); s != nil {
		name = s.Text()
		if s.HasClass("line-through") {
			name = doneStyle.Render(name)
		}
	}
	line := cursorPrefix(cursor) + box + " " + name + "  " + icons(n)
	if p := n.Find(func(c *view.Node) bool { return c.HasClass("notes") }); p != nil && p.Text() != "" {
		line += "\n      " + mutedStyle.Render(p.Text())
	}
	return line
}
