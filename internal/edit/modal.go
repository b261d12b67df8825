package edit

import (
	"github.com/idilsaglam/todolists/internal/view"
)

// Modal displays arbitrary content above the page. It knows nothing about the
// entity being edited.
type Modal interface {
	Populate(title string, content *view.Node)
	Toggle()
	Active() bool
}

// Overlay is a Modal backed by a node. Toggling flips the modal-active class.
type Overlay struct {
	node    *view.Node
	title   *view.Node
	content *view.Node
}

func NewOverlay() *Overlay {
	o := &Overlay{
		node:    view.New("div", "modal"),
		title:   view.New("h2", "modal-title"),
		content: view.New("div", "modal-content"),
	}
	o.node.Append(o.title, o.content)
	return o
}

func (o *Overlay) Populate(title string, content *view.Node) {
	o.title.SetText(title)
	o.content.Clear()
	if content != nil {
		o.content.Append(content)
	}
}

func (o *Overlay) Toggle() {
	o.node.ToggleClass("modal-active", !o.Active())
}

func (o *Overlay) Active() bool { return o.node.HasClass("modal-active") }

func (o *Overlay) Title() string { return o.title.Text() }

// Content returns the node currently shown, or nil.
func (o *Overlay) Content() *view.Node {
	if kids := o.content.Children(); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

func (o *Overlay) Node() *view.Node { return o.node }
