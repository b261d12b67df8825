package store

import (
	"slices"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/view"
)

type entity interface {
	EntityID() model.ID
	Handle() *view.Handle
}

// collection is an ordered set of entities mirrored into a container node.
// Insertion order is render order.
type collection[T entity] struct {
	items     []T
	container *view.Node
	render    func(T) *view.Node
}

func newCollection[T entity](container *view.Node, render func(T) *view.Node) *collection[T] {
	return &collection[T]{container: container, render: render}
}

// replace swaps the whole collection for items and redraws the container.
func (c *collection[T]) replace(items []T) {
	for _, old := range c.items {
		old.Handle().Release()
	}
	c.container.Clear()
	c.items = items
	for _, e := range c.items {
		c.container.Append(c.render(e))
	}
}

// clear empties the collection and releases every handle.
func (c *collection[T]) clear() {
	for _, old := range c.items {
		old.Handle().Release()
	}
	c.items = c.items[:0]
	c.container.Clear()
}

func (c *collection[T]) index(id model.ID) int {
	return slices.IndexFunc(c.items, func(e T) bool { return e.EntityID() == id })
}

func (c *collection[T]) find(id model.ID) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) contains(e T) bool {
	i := c.index(e.EntityID())
	return i >= 0 && any(c.items[i]) == any(e)
}

// add appends e at the tail and mounts its node.
func (c *collection[T]) add(e T) {
	c.items = append(c.items, e)
	c.container.Append(c.render(e))
}

// redraw re-renders e in place.
func (c *collection[T]) redraw(e T) { c.render(e) }

// removeAt splices the entity at i out of the collection in place and detaches
// its node.
func (c *collection[T]) removeAt(i int) T {
	e := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	e.Handle().Release()
	return e
}

func (c *collection[T]) all() []T { return slices.Clone(c.items) }

func (c *collection[T]) len() int { return len(c.items) }
