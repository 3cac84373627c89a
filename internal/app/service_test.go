package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hylla/lanes/internal/domain"
)

type fakeLedger struct {
	events []domain.ChangeEvent
	err    error
}

func (f *fakeLedger) AppendChangeEvents(_ context.Context, events []domain.ChangeEvent) error {
	if f.err != nil {
		return f.err
	}
	for _, ev := range events {
		ev.ID = int64(len(f.events) + 1)
		f.events = append(f.events, ev)
	}
	return nil
}

func (f *fakeLedger) ListChangeEvents(_ context.Context, limit int) ([]domain.ChangeEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.ChangeEvent, 0, len(f.events))
	for idx := len(f.events) - 1; idx >= 0 && len(out) < limit; idx-- {
		out = append(out, f.events[idx])
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *Store, *fakeLedger) {
	t.Helper()
	store := NewStore(sequenceIDs(), fixedClock)
	ledger := &fakeLedger{}
	NewActivityTracker(ledger, fixedClock).Attach(store)
	return NewService(store, ledger), store, ledger
}

func TestServiceCreateAndList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateItem(ctx, ItemInput{Title: "Build API", Description: "Design REST endpoints", People: 3})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if first.Lane != domain.LaneActive || first.ID != "i1" {
		t.Fatalf("unexpected item %#v", first)
	}
	if _, err := svc.CreateItem(ctx, ItemInput{Title: "Write docs", Description: "Cover every endpoint", People: 1}); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if _, err := svc.MoveItem(ctx, first.ID, "finished"); err != nil {
		t.Fatalf("MoveItem() error = %v", err)
	}

	all, err := svc.ListItems(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("ListItems(all) = %#v, %v", all, err)
	}
	active, err := svc.ListItems(ctx, "Active")
	if err != nil || len(active) != 1 || active[0].Title != "Write docs" {
		t.Fatalf("ListItems(active) = %#v, %v", active, err)
	}
	finished, err := svc.ListItems(ctx, "finished")
	if err != nil || len(finished) != 1 || finished[0].ID != first.ID {
		t.Fatalf("ListItems(finished) = %#v, %v", finished, err)
	}
	if _, err := svc.ListItems(ctx, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown lane, got %v", err)
	}
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	svc, store, _ := newTestService(t)
	_, err := svc.CreateItem(context.Background(), ItemInput{Title: "B", Description: "Design REST endpoints", People: 3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	_, err = svc.CreateItem(context.Background(), ItemInput{Title: "Build", Description: "Design REST endpoints", People: 9})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(store.Snapshot()) != 0 {
		t.Fatalf("expected no items after rejected input, got %d", len(store.Snapshot()))
	}
}

func TestServiceMoveItem(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	item, err := svc.CreateItem(ctx, ItemInput{Title: "Build API", Description: "Design REST endpoints", People: 3})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	res, err := svc.MoveItem(ctx, item.ID, "finished")
	if err != nil || !res.Moved || res.Item.Lane != domain.LaneFinished {
		t.Fatalf("MoveItem(finished) = %#v, %v", res, err)
	}
	res, err = svc.MoveItem(ctx, item.ID, "finished")
	if err != nil || res.Moved {
		t.Fatalf("expected same-lane move to report Moved=false, got %#v, %v", res, err)
	}
	if _, err := svc.MoveItem(ctx, "missing", "active"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.MoveItem(ctx, item.ID, "doing"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetItem(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from GetItem, got %v", err)
	}
}

func TestServiceListActivity(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	item, _ := svc.CreateItem(ctx, ItemInput{Title: "Build API", Description: "Design REST endpoints", People: 3})
	_, _ = svc.MoveItem(ctx, item.ID, "finished")

	events, err := svc.ListActivity(ctx, 0)
	if err != nil {
		t.Fatalf("ListActivity() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %#v", events)
	}
	if events[0].Operation != domain.ChangeOperationMove || events[1].Operation != domain.ChangeOperationCreate {
		t.Fatalf("expected newest-first order, got %#v", events)
	}

	limited, err := svc.ListActivity(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("ListActivity(1) = %#v, %v", limited, err)
	}

	bare := NewService(NewStore(sequenceIDs(), fixedClock), nil)
	empty, err := bare.ListActivity(ctx, 10)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty activity without a reader, got %#v, %v", empty, err)
	}
}

func TestServiceListActivityWrapsReaderError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(NewStore(sequenceIDs(), fixedClock), &fakeLedger{err: boom})
	if _, err := svc.ListActivity(context.Background(), 5); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}
}

func TestServiceConcurrentMovesReportOneChange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	item, err := svc.CreateItem(ctx, ItemInput{Title: "Build API", Description: "Design REST endpoints", People: 3})
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		moved int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.MoveItem(ctx, item.ID, "finished")
			if err != nil {
				t.Errorf("MoveItem() error = %v", err)
				return
			}
			if res.Item.Lane != domain.LaneFinished {
				t.Errorf("expected finished lane, got %q", res.Item.Lane)
			}
			if res.Moved {
				mu.Lock()
				moved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if moved != 1 {
		t.Fatalf("expected exactly one move to report Moved=true, got %d", moved)
	}
}
