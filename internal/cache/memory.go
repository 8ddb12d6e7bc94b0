package cache

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryStore is an in-process LRU with per-entry expiry. It survives only as
// long as the warm container that owns it.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	now        func() time.Time
}

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

func NewMemoryStore(maxEntries int) (*MemoryStore, error) {
	return newMemoryStore(maxEntries, time.Now)
}

func newMemoryStore(maxEntries int, now func() time.Time) (*MemoryStore, error) {
	if maxEntries <= 0 {
		return nil, errors.New("max entries must be positive")
	}

	return &MemoryStore{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        now,
	}, nil
}

// Get reports a miss for an empty key, an unknown key, or an entry whose
// expiry has passed. Expired entries are dropped on read; a hit marks the
// entry as most recently used.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if !now.Before(entry.expiresAt) {
		s.removeElement(elem)

		return "", false, nil
	}

	s.order.MoveToFront(elem)

	return entry.value, true, nil
}

// Set stores value until now+ttl, replacing any previous entry for key. It
// returns an error when key is empty or ttl is not positive. Expired entries
// are swept first, then the least recently used ones are evicted down to
// maxEntries.
func (s *MemoryStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if key == "" {
		return errors.New("key is empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	now := s.now()
	expiresAt := now.Add(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		s.order.MoveToFront(elem)

		return nil
	}

	elem := s.order.PushFront(&memoryEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	})
	s.entries[key] = elem

	s.evictExpiredLocked(now)
	s.enforceSizeLimitLocked()

	return nil
}

// Len counts stored entries, expired ones included until they are swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *MemoryStore) evictExpiredLocked(now time.Time) {
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		if !now.Before(elem.Value.(*memoryEntry).expiresAt) {
			s.removeElement(elem)
		}
		elem = prev
	}
}

func (s *MemoryStore) enforceSizeLimitLocked() {
	for len(s.entries) > s.maxEntries {
		elem := s.order.Back()
		if elem == nil {
			return
		}
		s.removeElement(elem)
	}
}

func (s *MemoryStore) removeElement(elem *list.Element) {
	delete(s.entries, elem.Value.(*memoryEntry).key)
	s.order.Remove(elem)
}
