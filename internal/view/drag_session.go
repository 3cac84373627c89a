package view

import "github.com/hylla/lanes/internal/dnd"

// DragSession drives one drag gesture over a document, in the order a host
// platform would: dragstart on the source, dragover/dragleave while hovering,
// then drop (only when the last dragover was accepted), dragleave and dragend.
type DragSession struct {
	source   *Node
	transfer *dnd.Transfer
	over     *Node
	accepted bool
	done     bool
}

// StartDrag dispatches dragstart on source and returns the live session.
func StartDrag(source *Node) *DragSession {
	s := &DragSession{
		source:   source,
		transfer: dnd.NewTransfer(),
	}
	source.Dispatch(dnd.NewEvent(dnd.TypeDragStart, s.transfer))
	return s
}

// Transfer returns the gesture payload.
func (s *DragSession) Transfer() *dnd.Transfer {
	return s.transfer
}

// Source returns the dragged node.
func (s *DragSession) Source() *Node {
	return s.source
}

// Target returns the hovered node, or nil.
func (s *DragSession) Target() *Node {
	return s.over
}

// Accepted reports whether the last dragover was default-prevented.
func (s *DragSession) Accepted() bool {
	return s.over != nil && s.accepted
}

// Done reports whether the gesture has ended.
func (s *DragSession) Done() bool {
	return s.done
}

// Over hovers node. Changing targets fires dragleave on the previous one; a
// nil node only leaves.
func (s *DragSession) Over(node *Node) {
	if s.done {
		return
	}
	if s.over != nil && s.over != node {
		s.over.Dispatch(dnd.NewEvent(dnd.TypeDragLeave, s.transfer))
		s.over = nil
		s.accepted = false
	}
	if node == nil {
		return
	}
	s.over = node
	ev := dnd.NewEvent(dnd.TypeDragOver, s.transfer)
	node.Dispatch(ev)
	s.accepted = ev.DefaultPrevented()
}

// Drop ends the gesture over the current target. It reports whether a drop
// event was dispatched.
func (s *DragSession) Drop() bool {
	if s.done {
		return false
	}
	dropped := false
	if s.over != nil {
		// Drop handlers may re-render and detach the hovered node.
		path := s.over.path()
		if s.accepted {
			dispatchPath(path, dnd.NewEvent(dnd.TypeDrop, s.transfer))
			dropped = true
		}
		dispatchPath(path, dnd.NewEvent(dnd.TypeDragLeave, s.transfer))
	}
	s.finish()
	return dropped
}

// Cancel ends the gesture without a drop.
func (s *DragSession) Cancel() {
	if s.done {
		return
	}
	if s.over != nil {
		s.over.Dispatch(dnd.NewEvent(dnd.TypeDragLeave, s.transfer))
	}
	s.finish()
}

// finish fires dragend on the source and closes the session.
func (s *DragSession) finish() {
	s.source.Dispatch(dnd.NewEvent(dnd.TypeDragEnd, s.transfer))
	s.over = nil
	s.accepted = false
	s.done = true
}
