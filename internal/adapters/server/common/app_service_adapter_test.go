package common

import (
	"context"
	"errors"
	"testing"

	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/domain"
)

// newTestAdapter builds an adapter over a fresh store without an activity ledger.
func newTestAdapter(t *testing.T) (*AppServiceAdapter, *app.Store) {
	t.Helper()
	store := app.NewStore(nil, nil)
	return NewAppServiceAdapter(app.NewService(store, nil)), store
}

// TestAppServiceAdapterCreateAndList verifies create and lane-filtered listing.
func TestAppServiceAdapterCreateAndList(t *testing.T) {
	adapter, store := newTestAdapter(t)
	ctx := context.Background()

	created, err := adapter.CreateItem(ctx, CreateItemRequest{Title: "Ship", Description: "ship the board", People: 2})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if created.Lane != domain.LaneActive {
		t.Fatalf("lane = %q, want active", created.Lane)
	}
	store.Move(created.ID, domain.LaneFinished)

	active, err := adapter.ListItems(ctx, ListItemsRequest{Lane: "active"})
	if err != nil {
		t.Fatalf("ListItems(active) error = %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active items = %d, want 0", len(active))
	}
	finished, err := adapter.ListItems(ctx, ListItemsRequest{Lane: "FINISHED"})
	if err != nil {
		t.Fatalf("ListItems(finished) error = %v", err)
	}
	if len(finished) != 1 || finished[0].ID != created.ID {
		t.Fatalf("finished items = %#v, want [%s]", finished, created.ID)
	}
}

// TestAppServiceAdapterErrorMapping verifies app errors map onto transport sentinels.
func TestAppServiceAdapterErrorMapping(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	if _, err := adapter.ListItems(ctx, ListItemsRequest{Lane: "backlog"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("ListItems(backlog) error = %v, want ErrInvalidRequest", err)
	}
	if _, err := adapter.CreateItem(ctx, CreateItemRequest{Title: "x", Description: "valid body", People: 1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("CreateItem(short title) error = %v, want ErrInvalidRequest", err)
	}
	if _, err := adapter.MoveItem(ctx, MoveItemRequest{ID: "missing", Lane: "finished"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MoveItem(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := adapter.MoveItem(ctx, MoveItemRequest{ID: " ", Lane: "finished"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("MoveItem(blank id) error = %v, want ErrInvalidRequest", err)
	}
	if _, err := adapter.ListActivity(ctx, ListActivityRequest{Limit: -1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("ListActivity(-1) error = %v, want ErrInvalidRequest", err)
	}
}

// TestAppServiceAdapterMoveReportsNoop verifies a same-lane move reports moved=false.
func TestAppServiceAdapterMoveReportsNoop(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()
	created, err := adapter.CreateItem(ctx, CreateItemRequest{Title: "Ship", Description: "ship the board", People: 1})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	first, err := adapter.MoveItem(ctx, MoveItemRequest{ID: created.ID, Lane: "finished"})
	if err != nil {
		t.Fatalf("MoveItem() error = %v", err)
	}
	if !first.Moved || first.Item.Lane != domain.LaneFinished {
		t.Fatalf("first move = %#v, want moved to finished", first)
	}
	second, err := adapter.MoveItem(ctx, MoveItemRequest{ID: created.ID, Lane: "finished"})
	if err != nil {
		t.Fatalf("MoveItem() repeat error = %v", err)
	}
	if second.Moved {
		t.Fatal("expected repeated move to report moved=false")
	}
}

// TestAppServiceAdapterNilService verifies an unconfigured adapter fails closed.
func TestAppServiceAdapterNilService(t *testing.T) {
	var adapter *AppServiceAdapter
	if _, err := adapter.ListItems(context.Background(), ListItemsRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("ListItems() error = %v, want ErrInvalidRequest", err)
	}
	if _, err := adapter.ListActivity(context.Background(), ListActivityRequest{}); !errors.Is(err, ErrActivityUnavailable) {
		t.Fatalf("ListActivity() error = %v, want ErrActivityUnavailable", err)
	}
}
