package view

// Handle is the render handle an entity owns: a node created on first use and
// mutated thereafter. Named parts cache sub-elements across renders the same
// way, so a re-render never rebuilds what already exists.
type Handle struct {
	node      *Node
	parts     map[string]*Node
	suspended bool
}

// Ensure returns the handle's node, creating it with tag and classes if absent.
// created is true only on the call that built it.
func (h *Handle) Ensure(tag string, classes ...string) (n *Node, created bool) {
	if h.node == nil {
		h.node = New(tag, classes...)
		return h.node, true
	}
	return h.node, false
}

// Node returns the node or nil if the entity was never rendered.
func (h *Handle) Node() *Node { return h.node }

// Part returns the named sub-element, building it on first access.
func (h *Handle) Part(name string, build func() *Node) *Node {
	if p, ok := h.parts[name]; ok {
		return p
	}
	if h.parts == nil {
		h.parts = map[string]*Node{}
	}
	p := build()
	h.parts[name] = p
	return p
}

// Suspend marks the node as temporarily taken over (by an inline editor).
// Renders keep updating parts but leave the node's children alone.
func (h *Handle) Suspend() { h.suspended = true }

func (h *Handle) Resume() { h.suspended = false }

func (h *Handle) Suspended() bool { return h.suspended }

// Release detaches the node from its parent and forgets it.
func (h *Handle) Release() {
	if h.node != nil {
		h.node.Remove()
	}
	h.node = nil
	h.parts = nil
	h.suspended = false
}
