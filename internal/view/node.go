// Package view provides the small retained node tree the board widgets
// render into, plus the drag session that dispatches drag events over it.
package view

import (
	"slices"

	"github.com/hylla/lanes/internal/dnd"
)

// Handler receives one dispatched drag event.
type Handler func(*dnd.Event)

// Node is one element in a Document.
type Node struct {
	ID  string
	Tag string

	text     string
	classes  []string
	children []*Node
	parent   *Node
	handlers map[string][]Handler
}

// NewNode constructs a detached node.
func NewNode(tag string, children ...*Node) *Node {
	n := &Node{Tag: tag}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

// WithText sets the node text and returns the node.
func (n *Node) WithText(text string) *Node {
	n.text = text
	return n
}

// WithID sets the node id and returns the node.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// Text returns the node's own text.
func (n *Node) Text() string {
	return n.text
}

// SetText replaces the node's own text.
func (n *Node) SetText(text string) {
	n.text = text
}

// AddClass adds class once.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// RemoveClass removes class when present.
func (n *Node) RemoveClass(class string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == class })
}

// HasClass reports whether class is set.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Parent returns the attached parent, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// AppendChild attaches child as the last child.
func (n *Node) AppendChild(child *Node) {
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
}

// PrependChild attaches child as the first child.
func (n *Node) PrependChild(child *Node) {
	child.detach()
	child.parent = n
	n.children = slices.Insert(n.children, 0, child)
}

// Clear detaches every child.
func (n *Node) Clear() {
	for _, child := range n.children {
		child.parent = nil
	}
	n.children = nil
}

// detach removes n from its current parent.
func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
}

// Query returns the first descendant with tag in document order.
func (n *Node) Query(tag string) *Node {
	for _, child := range n.children {
		if child.Tag == tag {
			return child
		}
		if found := child.Query(tag); found != nil {
			return found
		}
	}
	return nil
}

// Find returns n or the first descendant with id.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// On registers handler for eventType. Handlers run in registration order.
func (n *Node) On(eventType string, handler Handler) {
	if handler == nil {
		return
	}
	if n.handlers == nil {
		n.handlers = map[string][]Handler{}
	}
	n.handlers[eventType] = append(n.handlers[eventType], handler)
}

// Dispatch delivers ev to n and then to each ancestor.
func (n *Node) Dispatch(ev *dnd.Event) {
	dispatchPath(n.path(), ev)
}

// path returns n followed by its ancestors.
func (n *Node) path() []*Node {
	out := make([]*Node, 0, 4)
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// dispatchPath delivers ev along a precomputed bubble path.
func dispatchPath(path []*Node, ev *dnd.Event) {
	if len(path) == 0 {
		return
	}
	ev.Target = path[0].ID
	for _, node := range path {
		for _, handler := range node.handlers[ev.Type] {
			handler(ev)
		}
	}
}

// clone deep-copies the subtree without handlers or parent.
func (n *Node) clone() *Node {
	out := &Node{
		ID:      n.ID,
		Tag:     n.Tag,
		text:    n.text,
		classes: slices.Clone(n.classes),
	}
	for _, child := range n.children {
		out.AppendChild(child.clone())
	}
	return out
}
