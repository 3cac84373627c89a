package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hylla/lanes/internal/domain"
)

// IDGenerator returns unique identifiers for new items.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Listener receives a full copy of the board after every change.
type Listener func(items []domain.Item)

// Store is the single owner of the board's items.
//
// writeMu serializes every mutate-then-notify sequence, so listeners observe
// changes in the order they were made and finish before the mutating call
// returns. mu guards the item and listener slices only and is released before
// listeners run, so listeners may call Snapshot, Get, or Subscribe. Listeners
// must not call Create or Move.
type Store struct {
	writeMu   sync.Mutex
	mu        sync.Mutex
	items     []domain.Item
	listeners []Listener
	idGen     IDGenerator
	clock     Clock
}

// NewStore constructs an empty store. A nil idGen uses random UUIDs and a nil
// clock uses time.Now.
func NewStore(idGen IDGenerator, clock Clock) *Store {
	if idGen == nil {
		idGen = uuid.NewString
	}
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		idGen: idGen,
		clock: clock,
	}
}

// Create appends a new active item and notifies every listener.
func (s *Store) Create(title, description string, people int) string {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	item := domain.NewItem(s.idGen(), title, description, people, s.clock())
	s.items = append(s.items, item)
	s.mu.Unlock()

	s.notify()
	return item.ID
}

// Move changes the lane of one item. Unknown ids, invalid lanes, and moves to
// the current lane are silent no-ops.
func (s *Store) Move(id string, lane domain.Lane) {
	s.move(id, lane)
}

// move applies one lane change and notifies listeners when the lane changed.
// It returns the item as left by this call, whether it exists, and whether
// this call changed its lane.
func (s *Store) move(id string, lane domain.Lane) (item domain.Item, found bool, moved bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if s.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Item{}, false, false
	}
	if !lane.Valid() || s.items[idx].Lane == lane {
		item = s.items[idx]
		s.mu.Unlock()
		return item, true, false
	}
	s.items[idx].Lane = lane
	item = s.items[idx]
	s.mu.Unlock()

	s.notify()
	return item, true, true
}

// Subscribe registers fn for the lifetime of the store. Registering the same
// function twice invokes it twice per change.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a copy of every item in creation order.
func (s *Store) Snapshot() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneItems(s.items)
}

// Get returns a copy of one item by id.
func (s *Store) Get(id string) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Item{}, false
}

// notify hands each listener its own copy, in registration order. Callers
// hold writeMu but not mu.
func (s *Store) notify() {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	items := s.items
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(domain.CloneItems(items))
	}
}
