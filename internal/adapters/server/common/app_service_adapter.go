package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/domain"
)

// maxActivityLimit caps one activity page.
const maxActivityLimit = 500

// AppServiceAdapter maps transport contracts onto app.Service.
type AppServiceAdapter struct {
	service *app.Service
}

// NewAppServiceAdapter builds one common adapter over an app.Service instance.
func NewAppServiceAdapter(service *app.Service) *AppServiceAdapter {
	return &AppServiceAdapter{service: service}
}

// ListItems lists items in creation order, optionally restricted to one lane.
func (a *AppServiceAdapter) ListItems(ctx context.Context, in ListItemsRequest) ([]domain.Item, error) {
	if a == nil || a.service == nil {
		return nil, fmt.Errorf("app service adapter is not configured: %w", ErrInvalidRequest)
	}
	items, err := a.service.ListItems(ctx, in.Lane)
	if err != nil {
		return nil, mapAppError("list items", err)
	}
	return items, nil
}

// CreateItem validates and creates one active item.
func (a *AppServiceAdapter) CreateItem(ctx context.Context, in CreateItemRequest) (domain.Item, error) {
	if a == nil || a.service == nil {
		return domain.Item{}, fmt.Errorf("app service adapter is not configured: %w", ErrInvalidRequest)
	}
	item, err := a.service.CreateItem(ctx, app.ItemInput{
		Title:       in.Title,
		Description: in.Description,
		People:      in.People,
	})
	if err != nil {
		return domain.Item{}, mapAppError("create item", err)
	}
	return item, nil
}

// MoveItem moves one item to the requested lane.
func (a *AppServiceAdapter) MoveItem(ctx context.Context, in MoveItemRequest) (MoveItemResult, error) {
	if a == nil || a.service == nil {
		return MoveItemResult{}, fmt.Errorf("app service adapter is not configured: %w", ErrInvalidRequest)
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return MoveItemResult{}, fmt.Errorf("move item: id is required: %w", ErrInvalidRequest)
	}
	result, err := a.service.MoveItem(ctx, id, in.Lane)
	if err != nil {
		return MoveItemResult{}, mapAppError("move item", err)
	}
	return MoveItemResult{Item: result.Item, Moved: result.Moved}, nil
}

// ListActivity lists recorded board changes, newest first.
func (a *AppServiceAdapter) ListActivity(ctx context.Context, in ListActivityRequest) ([]domain.ChangeEvent, error) {
	if a == nil || a.service == nil {
		return nil, fmt.Errorf("app service adapter is not configured: %w", ErrActivityUnavailable)
	}
	if in.Limit < 0 {
		return nil, fmt.Errorf("list activity: limit must be positive: %w", ErrInvalidRequest)
	}
	events, err := a.service.ListActivity(ctx, min(in.Limit, maxActivityLimit))
	if err != nil {
		return nil, mapAppError("list activity", err)
	}
	return events, nil
}

// mapAppError maps app and domain errors onto transport sentinels.
func mapAppError(operation string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrNotFound, err))
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, domain.ErrInvalidLane):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrInvalidRequest, err))
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}
