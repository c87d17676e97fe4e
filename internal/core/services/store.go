package services

import (
	"sync"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

const subscriberBuffer = 16

// StateStore holds the current state of one engine and fans every
// transition out to subscribers.
type StateStore struct {
	mu      sync.RWMutex
	current domain.State
	subs    map[int]chan domain.State
	nextID  int
	closed  bool
}

// NewStateStore creates a store starting at initial.
func NewStateStore(initial domain.State) *StateStore {
	return &StateStore{
		current: initial,
		subs:    make(map[int]chan domain.State),
	}
}

// Current returns the latest snapshot. Callers must treat Songs as read-only.
func (s *StateStore) Current() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe returns a channel that first yields the current state and then
// every transition. A subscriber that falls subscriberBuffer states behind
// loses its oldest pending states instead of blocking the engine; the last
// value it receives is always the store's current state. The returned func
// unsubscribes and closes the channel; it is safe to call more than once.
// The channel is also closed when the store is closed.
func (s *StateStore) Subscribe() (<-chan domain.State, func()) {
	ch := make(chan domain.State, subscriberBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(ch)
		return ch, func() {}
	}

	ch <- s.current
	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

func (s *StateStore) set(st domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.current = st
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
			// Full: evict the oldest pending state so the latest always lands.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

func (s *StateStore) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
