package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/hylla/lanes/internal/domain"
)

// defaultActivityLimit bounds activity queries that do not specify a limit.
const defaultActivityLimit = 50

// Service exposes the store to request-driven adapters.
type Service struct {
	store    *Store
	activity ActivityReader
}

// MoveResult reports the item after a move and whether its lane changed.
type MoveResult struct {
	Item  domain.Item `json:"item"`
	Moved bool        `json:"moved"`
}

// NewService constructs a new value for this package.
func NewService(store *Store, activity ActivityReader) *Service {
	return &Service{
		store:    store,
		activity: activity,
	}
}

// ListItems lists items in creation order, optionally restricted to one lane.
func (s *Service) ListItems(_ context.Context, lane string) ([]domain.Item, error) {
	items := s.store.Snapshot()
	if strings.TrimSpace(lane) == "" {
		return items, nil
	}
	parsed, err := domain.ParseLane(lane)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return domain.FilterByLane(items, parsed), nil
}

// GetItem returns one item by id.
func (s *Service) GetItem(_ context.Context, id string) (domain.Item, error) {
	item, ok := s.store.Get(strings.TrimSpace(id))
	if !ok {
		return domain.Item{}, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	return item, nil
}

// CreateItem validates in and creates an active item.
func (s *Service) CreateItem(_ context.Context, in ItemInput) (domain.Item, error) {
	if err := CheckItemInput(in); err != nil {
		return domain.Item{}, err
	}
	id := s.store.Create(in.Title, in.Description, in.People)
	item, ok := s.store.Get(id)
	if !ok {
		return domain.Item{}, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	return item, nil
}

// MoveItem moves one item. Unknown ids are reported as ErrNotFound without
// touching the store; a move to the current lane succeeds with Moved=false.
func (s *Service) MoveItem(_ context.Context, id string, lane string) (MoveResult, error) {
	id = strings.TrimSpace(id)
	target, err := domain.ParseLane(lane)
	if err != nil {
		return MoveResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	item, found, moved := s.store.move(id, target)
	if !found {
		return MoveResult{}, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	return MoveResult{Item: item, Moved: moved}, nil
}

// ListActivity lists recorded board changes, newest first.
func (s *Service) ListActivity(ctx context.Context, limit int) ([]domain.ChangeEvent, error) {
	if s.activity == nil {
		return []domain.ChangeEvent{}, nil
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	events, err := s.activity.ListChangeEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return events, nil
}
