// Package countries holds the Dataset State (load status, error and the loaded
// country list) and the read-side selectors derived from it.
package countries

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/logging"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/sirupsen/logrus"
)

// Client fetches the full country list. Implementations must not retry
// silently and must be safe to call repeatedly.
type Client interface {
	FetchAllCountries(ctx context.Context) ([]models.Country, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context) ([]models.Country, error)

// FetchAllCountries calls f.
func (f ClientFunc) FetchAllCountries(ctx context.Context) ([]models.Country, error) {
	return f(ctx)
}

// Store owns the Dataset State. Only Load transitions it.
type Store struct {
	client Client
	logger *logrus.Entry

	mu        sync.RWMutex
	status    Status
	failure   *errors.AtlasError
	list      []models.Country
	listeners map[int]func(Summary)
	nextID    int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for transition logging.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an idle store that fetches through client.
func New(client Client, opts ...Option) *Store {
	s := &Store{
		client:    client,
		status:    StatusIdle,
		list:      []models.Country{},
		listeners: make(map[int]func(Summary)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewLogger("countries")
	}
	return s
}

// Load fetches the full country list and records the outcome.
//
// If an attempt is already in flight the call is dropped: nothing is fetched
// and the state is left exactly as it is. Otherwise the store moves to
// loading, clears the previous error and keeps the current list visible until
// the fetch settles. Fetch errors (and panics) end in the rejected state and
// are never returned to the caller. Load blocks until its own attempt settles;
// run it on a separate goroutine to keep the caller responsive.
func (s *Store) Load(ctx context.Context) {
	attempt, ok := s.begin()
	if !ok {
		s.logger.Debug("Load already in flight, dropping request")
		return
	}

	log := s.logger.WithField("attempt", attempt)
	log.Info("Loading countries")

	list, failure := s.fetch(ctx)
	if failure != nil {
		log.WithError(failure).Warn("Loading countries failed")
	} else {
		log.WithField("count", len(list)).Info("Countries received")
	}

	s.settle(list, failure)
}

// begin atomically checks the guard and moves to loading.
func (s *Store) begin() (string, bool) {
	s.mu.Lock()
	if s.status == StatusLoading {
		s.mu.Unlock()
		return "", false
	}
	s.status = StatusLoading
	s.failure = nil
	attempt := uuid.New().String()
	summary, listeners := s.summaryLocked(), s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, summary)
	return attempt, true
}

func (s *Store) fetch(ctx context.Context) (list []models.Country, failure *errors.AtlasError) {
	defer func() {
		if r := recover(); r != nil {
			list = nil
			if err, ok := r.(error); ok {
				failure = errors.LoadFailed(err)
			} else {
				failure = errors.LoadFailed(nil).WithDetail("panic", fmt.Sprint(r))
			}
		}
	}()

	list, err := s.client.FetchAllCountries(ctx)
	if err != nil {
		return nil, errors.LoadFailed(err)
	}
	if list == nil {
		list = []models.Country{}
	}
	return list, nil
}

// settle records the outcome of the attempt started by begin. The guard in
// begin keeps it the only attempt in flight.
func (s *Store) settle(list []models.Country, failure *errors.AtlasError) {
	s.mu.Lock()
	if failure != nil {
		s.status = StatusRejected
		s.failure = failure
	} else {
		s.status = StatusReceived
		s.list = list
	}
	summary, listeners := s.summaryLocked(), s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, summary)
}

// Status returns the current lifecycle stage.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the recorded LoadFailure, or nil unless the store is rejected.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure == nil {
		return nil
	}
	return s.failure
}

// SelectDatasetSummary returns status, error and the size of the list.
func (s *Store) SelectDatasetSummary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summaryLocked()
}

// SelectAllCountries returns a copy of the current list.
func (s *Store) SelectAllCountries() []models.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.list)
}

// SelectVisibleCountries returns the countries matching search and region,
// in list order. See FilterVisible.
func (s *Store) SelectVisibleCountries(search string, region models.Region) []models.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterVisible(s.list, search, region)
}

// Subscribe registers fn to receive the summary after every transition.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Summary)) func() {
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

func (s *Store) summaryLocked() Summary {
	summary := Summary{
		Status: s.status,
		Count:  len(s.list),
	}
	if s.failure != nil {
		msg := s.failure.Message
		summary.Error = &msg
	}
	return summary
}

func (s *Store) listenersLocked() []func(Summary) {
	listeners := make([]func(Summary), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []func(Summary), summary Summary) {
	for _, fn := range listeners {
		fn(summary)
	}
}
