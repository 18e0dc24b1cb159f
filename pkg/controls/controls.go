// Package controls holds the Filter State: the user's search text and region
// selection. It has no dependencies and performs no I/O.
package controls

import (
	"sync"

	"github.com/grovetools/atlas/pkg/models"
)

// State is a snapshot of the filter controls.
type State struct {
	Search string        `json:"search"`
	Region models.Region `json:"region"`
}

// Default returns the initial filter state.
func Default() State {
	return State{Search: "", Region: models.RegionNone}
}

// Store owns the Filter State. It is the only writer of search and region.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// New creates a store holding the default state.
func New() *Store {
	return &Store{
		state:     Default(),
		listeners: make(map[int]func(State)),
	}
}

// SetSearch replaces the search text as given.
func (s *Store) SetSearch(text string) {
	s.update(func(st *State) { st.Search = text })
}

// SetRegion replaces the region; models.RegionNone clears the region filter.
func (s *Store) SetRegion(region models.Region) {
	s.update(func(st *State) { st.Region = region })
}

// ClearControls resets both fields to their defaults in a single step.
func (s *Store) ClearControls() {
	s.update(func(st *State) { *st = Default() })
}

// Search returns the current search text.
func (s *Store) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Search
}

// Region returns the current region selection.
func (s *Store) Region() models.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Region
}

// Snapshot returns both fields read together.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called with the new state after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) update(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	next := s.state
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
