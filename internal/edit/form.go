// Package edit holds in-progress edits of a single entity. A session owns a
// form, commits it through the entity's store and is discarded on commit or
// cancel. At most one session is open per entity.
package edit

import (
	"github.com/idilsaglam/todolists/internal/view"
)

// Form is a node with named input fields.
type Form struct {
	node   *view.Node
	fields map[string]*view.Node
	order  []string
}

func newForm(class string, key, id string, fields ...string) *Form {
	f := &Form{node: view.New("form", class), fields: map[string]*view.Node{}}
	f.node.SetData(key, id)
	for _, name := range fields {
		in := view.New("input")
		in.SetAttr("name", name)
		f.fields[name] = in
		f.order = append(f.order, name)
		f.node.Append(in)
	}
	submit := view.New("input", "submit")
	submit.SetAttr("type", "submit")
	submit.SetAttr("value", "Save")
	f.node.Append(submit)
	return f
}

func (f *Form) Node() *view.Node { return f.node }

// Fields returns the field names in display order.
func (f *Form) Fields() []string { return append([]string(nil), f.order...) }

// Set writes a field's value. Unknown fields are ignored.
func (f *Form) Set(name, value string) {
	if in, ok := f.fields[name]; ok {
		in.SetAttr("value", value)
	}
}

func (f *Form) Value(name string) string {
	if in, ok := f.fields[name]; ok {
		return in.Attr("value")
	}
	return ""
}
