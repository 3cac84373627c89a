// Package common holds the transport-neutral contracts shared by the HTTP and
// MCP adapters.
package common

import (
	"context"
	"errors"

	"github.com/hylla/lanes/internal/domain"
)

// ErrInvalidRequest reports a request that failed shape or field validation.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound reports a request naming an item that does not exist.
var ErrNotFound = errors.New("not found")

// ErrActivityUnavailable reports that no activity ledger is configured.
var ErrActivityUnavailable = errors.New("activity surface unavailable")

// ListItemsRequest selects the items to return.
type ListItemsRequest struct {
	Lane string `json:"lane,omitempty"`
}

// CreateItemRequest carries the fields for a new item.
type CreateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
}

// MoveItemRequest moves one item to a lane.
type MoveItemRequest struct {
	ID   string `json:"id,omitempty"`
	Lane string `json:"lane"`
}

// MoveItemResult reports the item after a move and whether its lane changed.
type MoveItemResult struct {
	Item  domain.Item `json:"item"`
	Moved bool        `json:"moved"`
}

// ListActivityRequest bounds an activity query.
type ListActivityRequest struct {
	Limit int `json:"limit,omitempty"`
}

// BoardService is the board surface consumed by the server transports.
type BoardService interface {
	ListItems(context.Context, ListItemsRequest) ([]domain.Item, error)
	CreateItem(context.Context, CreateItemRequest) (domain.Item, error)
	MoveItem(context.Context, MoveItemRequest) (MoveItemResult, error)
}

// ActivityService lists recorded board changes, newest first.
type ActivityService interface {
	ListActivity(context.Context, ListActivityRequest) ([]domain.ChangeEvent, error)
}
