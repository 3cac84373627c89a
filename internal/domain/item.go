package domain

import (
	"strconv"
	"strings"
	"time"
)

// Item is one unit of work tracked by the board.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	People      int       `json:"people"`
	Lane        Lane      `json:"lane"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItem builds an active item. Field constraints are enforced by callers
// before they reach the store, so construction never fails.
func NewItem(id, title, description string, people int, now time.Time) Item {
	return Item{
		ID:          strings.TrimSpace(id),
		Title:       title,
		Description: description,
		People:      people,
		Lane:        LaneActive,
		CreatedAt:   now.UTC(),
	}
}

// Persons returns the assignee count with singular/plural wording.
func (i Item) Persons() string {
	if i.People == 1 {
		return "1 person"
	}
	return strconv.Itoa(i.People) + " persons"
}

// AssignedLabel returns the line shown under an item title.
func (i Item) AssignedLabel() string {
	return i.Persons() + " assigned"
}

// CloneItems copies a slice of items. Items hold no reference fields, so a
// shallow copy fully detaches the result from the source.
func CloneItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// FilterByLane returns the items that belong to lane, preserving order.
func FilterByLane(items []Item, lane Lane) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Lane == lane {
			out = append(out, item)
		}
	}
	return out
}
