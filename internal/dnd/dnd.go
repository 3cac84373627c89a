// Package dnd models the drag-and-drop transfer carried between a drag source
// and a drop target during one gesture.
package dnd

import "slices"

// MarkerTextPlain is the only data type the board puts on a transfer.
const MarkerTextPlain = "text/plain"

// Effect names the operation a drag source allows.
type Effect string

// Effect values.
const (
	EffectNone Effect = "none"
	EffectMove Effect = "move"
)

// Transfer holds the typed payload of one drag gesture.
type Transfer struct {
	types         []string
	data          map[string]string
	EffectAllowed Effect
}

// NewTransfer returns an empty transfer.
func NewTransfer() *Transfer {
	return &Transfer{
		data:          map[string]string{},
		EffectAllowed: EffectNone,
	}
}

// SetData stores value under format. Formats keep their first insertion order.
func (t *Transfer) SetData(format, value string) {
	if t.data == nil {
		t.data = map[string]string{}
	}
	if _, ok := t.data[format]; !ok {
		t.types = append(t.types, format)
	}
	t.data[format] = value
}

// GetData returns the value stored under format, or "" when absent.
func (t *Transfer) GetData(format string) string {
	if t == nil {
		return ""
	}
	return t.data[format]
}

// Types lists the formats present on the transfer.
func (t *Transfer) Types() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.types)
}

// Event is dispatched to drag handlers. PreventDefault on a dragover marks
// the target as willing to accept the drop.
type Event struct {
	Type     string
	Transfer *Transfer
	// Target is the id of the node the event was dispatched to.
	Target string

	prevented bool
}

// Event type names.
const (
	TypeDragStart = "dragstart"
	TypeDragEnd   = "dragend"
	TypeDragOver  = "dragover"
	TypeDrop      = "drop"
	TypeDragLeave = "dragleave"
)

// NewEvent builds one event over transfer.
func NewEvent(eventType string, transfer *Transfer) *Event {
	return &Event{Type: eventType, Transfer: transfer}
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// DragSource is implemented by widgets that can be picked up.
type DragSource interface {
	DragStart(*Event)
	DragEnd(*Event)
}

// DropTarget is implemented by widgets that accept dropped items.
type DropTarget interface {
	DragOver(*Event)
	Drop(*Event)
	DragLeave(*Event)
}
