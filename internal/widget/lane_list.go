package widget

import (
	"github.com/hylla/lanes/internal/dnd"
	"github.com/hylla/lanes/internal/domain"
	"github.com/hylla/lanes/internal/view"
)

// DroppableClass marks a list that is currently accepting a hovered drag.
const DroppableClass = "droppable"

// LaneList renders the items of one lane and accepts dropped items.
type LaneList struct {
	doc     *view.Document
	board   Board
	lane    domain.Lane
	element *view.Node
	list    *view.Node
	heading *view.Node
	items   []domain.Item
	cards   []*ItemCard
	opts    options
}

var _ dnd.DropTarget = (*LaneList)(nil)

// NewLaneList mounts the lane at the end of the root host and subscribes it
// to board.
func NewLaneList(doc *view.Document, board Board, lane domain.Lane, opts ...Option) (*LaneList, error) {
	el, err := doc.Mount(view.TemplateProjectList, view.RootID, false, string(lane)+"-projects")
	if err != nil {
		return nil, err
	}
	l := &LaneList{
		doc:     doc,
		board:   board,
		lane:    lane,
		element: el,
		list:    el.Query("ul"),
		heading: el.Query("h2"),
		items:   []domain.Item{},
		opts:    buildOptions(opts),
	}
	view.Attach(l)
	return l, nil
}

// Configure binds the drop handlers and subscribes to the board.
func (l *LaneList) Configure() {
	l.element.On(dnd.TypeDragOver, l.DragOver)
	l.element.On(dnd.TypeDrop, l.Drop)
	l.element.On(dnd.TypeDragLeave, l.DragLeave)
	l.board.Subscribe(l.assign)
}

// RenderContent sets the list id and heading.
func (l *LaneList) RenderContent() {
	l.list.ID = l.ListID()
	l.heading.SetText(l.lane.Heading())
}

// DragOver accepts plain-text drags and highlights the list.
func (l *LaneList) DragOver(ev *dnd.Event) {
	types := ev.Transfer.Types()
	if len(types) == 0 || types[0] != dnd.MarkerTextPlain {
		return
	}
	ev.PreventDefault()
	l.list.AddClass(DroppableClass)
}

// Drop moves the dragged item into this lane.
func (l *LaneList) Drop(ev *dnd.Event) {
	id := ev.Transfer.GetData(dnd.MarkerTextPlain)
	l.opts.logger.Debug("item dropped", "item_id", id, "lane", l.lane)
	l.board.Move(id, l.lane)
}

// DragLeave clears the highlight.
func (l *LaneList) DragLeave(*dnd.Event) {
	l.list.RemoveClass(DroppableClass)
}

// assign keeps the items of this lane and rebuilds the list.
func (l *LaneList) assign(items []domain.Item) {
	l.items = domain.FilterByLane(items, l.lane)
	l.renderItems()
}

// renderItems replaces every card with a fresh one per assigned item.
func (l *LaneList) renderItems() {
	l.list.Clear()
	l.cards = l.cards[:0]
	for _, item := range l.items {
		card, err := NewItemCard(l.doc, l.list.ID, item, WithLogger(l.opts.logger))
		if err != nil {
			l.opts.logger.Error("render item card failed", "item_id", item.ID, "err", err)
			continue
		}
		l.cards = append(l.cards, card)
	}
}

// Lane returns the lane this list shows.
func (l *LaneList) Lane() domain.Lane {
	return l.lane
}

// ListID returns the id of the list surface.
func (l *LaneList) ListID() string {
	return string(l.lane) + "-projects-list"
}

// Items returns a copy of the items currently assigned to the lane.
func (l *LaneList) Items() []domain.Item {
	return domain.CloneItems(l.items)
}

// Cards returns the mounted cards in display order.
func (l *LaneList) Cards() []*ItemCard {
	out := make([]*ItemCard, len(l.cards))
	copy(out, l.cards)
	return out
}

// Droppable reports whether the list is highlighted for a drop.
func (l *LaneList) Droppable() bool {
	return l.list.HasClass(DroppableClass)
}

// Element returns the lane section node.
func (l *LaneList) Element() *view.Node {
	return l.element
}

// Heading returns the rendered heading text.
func (l *LaneList) Heading() string {
	return l.heading.Text()
}
