// ABOUTME: Persistent store owning the canonical Revenue OS snapshot
// ABOUTME: Clone-on-read, atomic mutate, ordered subscribers with persistence first
package store

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/revenueos/models"
)

var (
	// ErrNotFound is returned when an entity lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrSlotNotFound is returned by a Backend when a key has no value.
	ErrSlotNotFound = errors.New("slot not found")
)

// Well-known slot keys.
const (
	KeyState                = "revenue-os-data"
	KeyTeam                 = "revenue-os-team-data"
	KeyLeadsFilter          = "leads-filter"
	KeyProposalStatusFilter = "proposals-status-filter"
	KeyProposalQuickFilter  = "proposals-quick-filter"
	KeyContractsFilter      = "contracts_filter"
	KeyTheme                = "theme"
	KeyOnboarded            = "hasOnboarded"
	KeyDashboardLayout      = "dashboard-layout"
)

// Backend is a durable key-value slot.
type Backend interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Recorder receives store activity counters.
type Recorder interface {
	Mutation(op string)
	PersistFailure()
	LoadFallback(reason string)
}

// Subscriber observes every installed snapshot. The snapshot is shared and
// must be treated as read-only. Subscribers must not call Mutate.
type Subscriber func(state models.AppState) error

type subscription struct {
	id int
	fn Subscriber
}

// Store owns one immutable snapshot and replaces it wholesale on every change.
type Store struct {
	backend  Backend
	now      func() time.Time
	logger   *log.Logger
	recorder Recorder

	writeMu sync.Mutex // serializes mutations and subscriber fan-out
	mu      sync.RWMutex
	state   models.AppState
	report  LoadReport
	lastID  int64

	subMu  sync.Mutex
	subs   []subscription
	nextID int
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// New creates a store over backend holding the default seed. Call Load to
// read a prior snapshot.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		now:      time.Now,
		logger:   log.New(io.Discard),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = models.Seed(s.now())
	s.report = LoadReport{Source: SourceSeed, Reason: ReasonNotLoaded}
	s.Subscribe(s.persist)
	return s
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Logger returns the store's logger.
func (s *Store) Logger() *log.Logger {
	return s.logger
}

// Backend returns the durable slot the store persists into.
func (s *Store) Backend() Backend {
	return s.backend
}

// Get returns a deep copy of the current snapshot.
func (s *Store) Get() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to run after every installed snapshot, in
// registration order.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Mutate applies fn to a copy of the snapshot and installs the result. When fn
// fails the snapshot is untouched. Subscriber errors are returned after the
// new snapshot is already in place.
func (s *Store) Mutate(fn func(state *models.AppState) error) error {
	return s.mutate("custom", fn)
}

func (s *Store) mutate(op string, fn func(state *models.AppState) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := s.state.Clone()
	s.mu.RUnlock()

	if err := fn(&next); err != nil {
		return err
	}

	s.recorder.Mutation(op)
	return s.install(next)
}

// install swaps the snapshot and fans out. Caller holds writeMu.
func (s *Store) install(next models.AppState) error {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	var errs []error
	for _, sub := range subs {
		if err := sub.fn(next); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reset deletes the stored snapshot and installs the default dataset.
func (s *Store) Reset() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.backend.Delete([]byte(KeyState)); err != nil && !errors.Is(err, ErrSlotNotFound) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	s.recorder.Mutation("reset")
	s.logger.Info("workspace reset")
	return s.install(models.Seed(s.now()))
}

// Seed installs the demo dataset over the current snapshot.
func (s *Store) Seed() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.recorder.Mutation("seed")
	return s.install(models.Seed(s.now()))
}

// nextEntityID returns a time-based id strictly greater than any id handed
// out by this store. Caller holds writeMu.
func (s *Store) nextEntityID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string)     {}
func (nopRecorder) PersistFailure()     {}
func (nopRecorder) LoadFallback(string) {}
