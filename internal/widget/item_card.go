package widget

import (
	"github.com/hylla/lanes/internal/dnd"
	"github.com/hylla/lanes/internal/domain"
	"github.com/hylla/lanes/internal/view"
)

// ItemCard renders one item and acts as its drag source.
type ItemCard struct {
	item    domain.Item
	element *view.Node
	opts    options
}

var _ dnd.DragSource = (*ItemCard)(nil)

// NewItemCard mounts a card for item at the end of hostID.
func NewItemCard(doc *view.Document, hostID string, item domain.Item, opts ...Option) (*ItemCard, error) {
	el, err := doc.Mount(view.TemplateSingleProject, hostID, false, item.ID)
	if err != nil {
		return nil, err
	}
	c := &ItemCard{
		item:    item,
		element: el,
		opts:    buildOptions(opts),
	}
	view.Attach(c)
	return c, nil
}

// Configure binds the drag handlers to this card.
func (c *ItemCard) Configure() {
	c.element.On(dnd.TypeDragStart, c.DragStart)
	c.element.On(dnd.TypeDragEnd, c.DragEnd)
}

// RenderContent writes title, assignment label, and description.
func (c *ItemCard) RenderContent() {
	c.element.Query("h2").SetText(c.item.Title)
	c.element.Query("h3").SetText(c.item.AssignedLabel())
	c.element.Query("p").SetText(c.item.Description)
}

// DragStart puts the item id on the transfer.
func (c *ItemCard) DragStart(ev *dnd.Event) {
	ev.Transfer.SetData(dnd.MarkerTextPlain, c.item.ID)
	ev.Transfer.EffectAllowed = dnd.EffectMove
}

// DragEnd only logs; the store has already been updated by the drop target.
func (c *ItemCard) DragEnd(ev *dnd.Event) {
	c.opts.logger.Debug("drag ended", "item_id", c.item.ID, "target", ev.Target)
}

// Item returns the rendered item.
func (c *ItemCard) Item() domain.Item {
	return c.item
}

// Element returns the card node.
func (c *ItemCard) Element() *view.Node {
	return c.element
}
