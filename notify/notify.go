// ABOUTME: Transient toast notifications with automatic dismissal
// ABOUTME: A new toast replaces the current one; stale timers never clear a newer toast

package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

type Toast struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"type"`
	Message string    `json:"message"`
	ShownAt time.Time `json:"shownAt"`
}

// Listener receives the current toast, or nil when it clears.
type Listener func(t *Toast)

type Service struct {
	mu        sync.Mutex
	current   *Toast
	duration  time.Duration
	timer     *time.Timer
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
}

type Option func(*Service)

// WithDuration changes the display time.
func WithDuration(d time.Duration) Option {
	return func(s *Service) { s.duration = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(opts ...Option) *Service {
	s := &Service{duration: DefaultDuration, listeners: map[int]Listener{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Show replaces the current toast and schedules its dismissal.
func (s *Service) Show(kind Kind, message string) Toast {
	t := Toast{ID: ulid.Make().String(), Kind: kind, Message: message, ShownAt: s.now()}

	s.mu.Lock()
	s.current = &t
	if s.timer != nil {
		s.timer.Stop()
	}
	id := t.ID
	s.timer = time.AfterFunc(s.duration, func() { s.clearIf(id) })
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		cp := t
		l(&cp)
	}
	return t
}

// Current returns the visible toast, if any.
func (s *Service) Current() (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Toast{}, false
	}
	return *s.current, true
}

// Dismiss clears the current toast immediately.
func (s *Service) Dismiss() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	id := s.current.ID
	s.mu.Unlock()
	s.clearIf(id)
}

// Subscribe registers a listener and returns its removal func.
func (s *Service) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Service) clearIf(id string) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != id {
		s.mu.Unlock()
		return
	}
	s.current = nil
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(nil)
	}
}

// snapshotListeners must be called with s.mu held.
func (s *Service) snapshotListeners() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}
