package app

import (
	"context"
	"io"
	"sync"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/lanes/internal/domain"
)

// ActivityTracker turns consecutive store snapshots into change events.
type ActivityTracker struct {
	mu     sync.Mutex
	ledger ChangeLedger
	clock  Clock
	logger *charmLog.Logger
	sinks  []func(domain.ChangeEvent)
	known  map[string]domain.Lane
}

// ActivityOption configures an ActivityTracker.
type ActivityOption func(*ActivityTracker)

// WithActivityLogger sets the logger used for ledger write failures.
func WithActivityLogger(logger *charmLog.Logger) ActivityOption {
	return func(t *ActivityTracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithEventSink registers a callback that receives every derived event.
func WithEventSink(fn func(domain.ChangeEvent)) ActivityOption {
	return func(t *ActivityTracker) {
		if fn != nil {
			t.sinks = append(t.sinks, fn)
		}
	}
}

// NewActivityTracker constructs a tracker writing to ledger. A nil ledger
// still feeds event sinks.
func NewActivityTracker(ledger ChangeLedger, clock Clock, opts ...ActivityOption) *ActivityTracker {
	if clock == nil {
		clock = time.Now
	}
	t := &ActivityTracker{
		ledger: ledger,
		clock:  clock,
		logger: charmLog.New(io.Discard),
		known:  map[string]domain.Lane{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Attach subscribes the tracker to store.
func (t *ActivityTracker) Attach(store *Store) {
	store.Subscribe(t.Observe)
}

// Observe diffs items against the previous snapshot and records the result.
func (t *ActivityTracker) Observe(items []domain.Item) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock().UTC()
	events := make([]domain.ChangeEvent, 0, 1)
	for _, item := range items {
		prev, seen := t.known[item.ID]
		switch {
		case !seen:
			events = append(events, domain.ChangeEvent{
				ItemID:     item.ID,
				Title:      item.Title,
				Operation:  domain.ChangeOperationCreate,
				ToLane:     item.Lane,
				OccurredAt: now,
			})
		case prev != item.Lane:
			events = append(events, domain.ChangeEvent{
				ItemID:     item.ID,
				Title:      item.Title,
				Operation:  domain.ChangeOperationMove,
				FromLane:   prev,
				ToLane:     item.Lane,
				OccurredAt: now,
			})
		}
		t.known[item.ID] = item.Lane
	}
	if len(events) == 0 {
		return
	}

	if t.ledger != nil {
		if err := t.ledger.AppendChangeEvents(context.Background(), events); err != nil {
			t.logger.Error("activity ledger append failed", "events", len(events), "err", err)
		}
	}
	for _, ev := range events {
		t.logger.Debug("board change recorded", "op", ev.Operation, "item_id", ev.ItemID, "lane", ev.ToLane)
		for _, sink := range t.sinks {
			sink(ev)
		}
	}
}
