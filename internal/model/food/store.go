package food

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrDuplicateName is returned when a name collides case-insensitively with a stored item.
var ErrDuplicateName = errors.New("item with this name already exists")

// Store exposes the item collection to the catalog service.
type Store interface {
	List() []Item
	Len() int
	Get(id int) (Item, bool)
	Create(name string, price float64, description string) (Item, error)
	Update(id int, patch Patch) (Item, bool, error)
	Delete(id int) bool
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// MemoryStore implements Store with an in-memory slice kept in insertion order.
// Writers hold the lock for the whole check-and-write step, so two creates with
// the same name can never both succeed.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []Item
	nextID int
	now    func() time.Time
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied items.
// Items without an identifier receive the next free one; zero timestamps are
// stamped with the store clock.
func NewMemoryStore(items []Item, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		items:  make([]Item, 0, len(items)),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, item := range items {
		if item.ID <= 0 {
			item.ID = s.nextID
		}
		if item.ID >= s.nextID {
			s.nextID = item.ID + 1
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = s.now()
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = item.CreatedAt
		}
		s.items = append(s.items, item)
	}
	return s
}

// List returns a copy of the collection in insertion order.
func (s *MemoryStore) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...)
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get looks up an item by identifier.
func (s *MemoryStore) Get(id int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return Item{}, false
}

// Create appends a new item with the next identifier.
func (s *MemoryStore) Create(name string, price float64, description string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(name, 0) {
		return Item{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	now := s.now()
	item := Item{
		ID:          s.nextID,
		Name:        name,
		Price:       price,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.items = append(s.items, item)
	s.nextID++
	return item, nil
}

// Update applies patch to the item with the given identifier. The boolean is
// false when no such item exists. UpdatedAt is refreshed even for an empty patch.
func (s *MemoryStore) Update(id int, patch Patch) (Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Item{}, false, nil
	}

	current := &s.items[i]
	if patch.Name != nil && !strings.EqualFold(*patch.Name, current.Name) && s.nameTaken(*patch.Name, id) {
		return Item{}, true, fmt.Errorf("%w: %q", ErrDuplicateName, *patch.Name)
	}

	patch.applyTo(current)
	current.UpdatedAt = s.now()
	return *current, true, nil
}

// Delete removes the item and reports whether it existed.
func (s *MemoryStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// indexOf must be called with the lock held.
func (s *MemoryStore) indexOf(id int) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// nameTaken reports whether any item other than exceptID uses name. Lock must be held.
func (s *MemoryStore) nameTaken(name string, exceptID int) bool {
	for _, item := range s.items {
		if item.ID != exceptID && strings.EqualFold(item.Name, name) {
			return true
		}
	}
	return false
}
