package widget

import (
	"github.com/hylla/lanes/internal/domain"
	"github.com/hylla/lanes/internal/view"
)

// Page assembles the board: the input form first, then one list per lane.
type Page struct {
	Document *view.Document
	Form     *InputForm
	Active   *LaneList
	Finished *LaneList
}

// NewPage builds every widget over a fresh document, all sharing board.
func NewPage(board Board, opts ...Option) (*Page, error) {
	doc := view.NewDocument()
	form, err := NewInputForm(doc, board, opts...)
	if err != nil {
		return nil, err
	}
	active, err := NewLaneList(doc, board, domain.LaneActive, opts...)
	if err != nil {
		return nil, err
	}
	finished, err := NewLaneList(doc, board, domain.LaneFinished, opts...)
	if err != nil {
		return nil, err
	}
	return &Page{
		Document: doc,
		Form:     form,
		Active:   active,
		Finished: finished,
	}, nil
}

// Lanes returns the lane lists in display order.
func (p *Page) Lanes() []*LaneList {
	return []*LaneList{p.Active, p.Finished}
}

// LaneOf returns the list currently showing id.
func (p *Page) LaneOf(id string) (*LaneList, int, bool) {
	for _, lane := range p.Lanes() {
		for itemIdx, card := range lane.Cards() {
			if card.Item().ID == id {
				return lane, itemIdx, true
			}
		}
	}
	return nil, 0, false
}
