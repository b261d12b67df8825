// Package view is a small retained node tree. Entities render into nodes they
// own, containers hold those nodes in display order, and front ends draw the
// tree. Nodes are mutated in place so their identity survives re-renders.
package view

import (
	"slices"
	"strings"
)

// Node is one element of the tree. The zero value is not usable; use New.
type Node struct {
	Tag string

	text     string
	classes  []string
	data     map[string]string
	attrs    map[string]string
	children []*Node
	parent   *Node
}

// New returns a detached node with the given tag and classes.
func New(tag string, classes ...string) *Node {
	n := &Node{Tag: tag}
	n.AddClass(classes...)
	return n
}

// Text returns the node's own text, excluding children.
func (n *Node) Text() string { return n.text }

// SetText replaces the node's own text.
func (n *Node) SetText(s string) { n.text = s }

// TextContent concatenates the node's text with its descendants' text, in
// document order.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		b.WriteString(c.text)
		return true
	})
	return b.String()
}

// AddClass adds each class that is not already present.
func (n *Node) AddClass(cs ...string) {
	for _, c := range cs {
		for _, f := range strings.Fields(c) {
			if !slices.Contains(n.classes, f) {
				n.classes = append(n.classes, f)
			}
		}
	}
}

// RemoveClass removes the given classes if present.
func (n *Node) RemoveClass(cs ...string) {
	for _, c := range cs {
		n.classes = slices.DeleteFunc(n.classes, func(x string) bool { return x == c })
	}
}

// ToggleClass adds c when on is true and removes it otherwise.
func (n *Node) ToggleClass(c string, on bool) {
	if on {
		n.AddClass(c)
	} else {
		n.RemoveClass(c)
	}
}

func (n *Node) HasClass(c string) bool { return slices.Contains(n.classes, c) }

// Classes returns a copy of the class list.
func (n *Node) Classes() []string { return slices.Clone(n.classes) }

// SetData sets a data attribute. Event dispatch reads these to find the entity
// a node belongs to.
func (n *Node) SetData(key, value string) {
	if n.data == nil {
		n.data = map[string]string{}
	}
	n.data[key] = value
}

func (n *Node) Data(key string) (string, bool) {
	v, ok := n.data[key]
	return v, ok
}

func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = map[string]string{}
	}
	n.attrs[key] = value
}

func (n *Node) Attr(key string) string { return n.attrs[key] }

func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

func (n *Node) Len() int { return len(n.children) }

// Append moves each child to the end of n. A child that already has a parent is
// detached from it first, so appending an existing child reorders it.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		c.Remove()
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Contains reports whether c is a direct child of n.
func (n *Node) Contains(c *Node) bool { return c != nil && c.parent == n }

// Remove detaches n from its parent. It is a no-op for detached nodes.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Clear detaches every child.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Walk visits n and its descendants depth-first. Returning false from fn skips
// the visited node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node in n's subtree (n included) matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// Closest walks up from n (n included) to the first node carrying the data key.
// It mirrors how a click on a nested element is resolved to its entity.
func (n *Node) Closest(dataKey string) (*Node, string) {
	for c := n; c != nil; c = c.parent {
		if v, ok := c.Data(dataKey); ok {
			return c, v
		}
	}
	return nil, ""
}
