package kb

import (
	"fmt"
	"sync"

	"github.com/siderealworks/astrocarto/model"
)

// EventType indicates what kind of change happened in the store.
type EventType int

const (
	EventChartAdded EventType = iota
	EventChartUpdated
)

// Event is emitted to subscribers when something interesting happens.
type Event struct {
	Type  EventType
	Chart model.Chart
}

// Store is an in-memory, thread-safe registry of natal charts and the
// candidate locations scored against them.
type Store struct {
	mu sync.RWMutex

	charts    map[string]*model.Chart
	locations map[string]*model.Location

	subs []func(Event)
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		charts:    make(map[string]*model.Chart),
		locations: make(map[string]*model.Location),
	}
}

// cloneChart detaches a chart from the store so callers can read or encode
// it without holding the lock.
func cloneChart(c *model.Chart) *model.Chart {
	cp := *c
	cp.Positions = append([]model.PlanetPosition(nil), c.Positions...)
	cp.Lines = append([]model.AstroLine(nil), c.Lines...)
	cp.Transits = append([]model.PlanetPosition(nil), c.Transits...)
	return &cp
}

// AddChart stores a copy of the chart and notifies subscribers. It returns
// an error if the ID already exists.
func (s *Store) AddChart(c *model.Chart) error {
	s.mu.Lock()
	if _, exists := s.charts[c.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("chart with ID %q already exists", c.ID)
	}
	stored := cloneChart(c)
	s.charts[c.ID] = stored
	event := Event{
		Type:  EventChartAdded,
		Chart: *stored,
	}
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// AddLocation adds a candidate location keyed by name. It returns an error
// if the name already exists.
func (s *Store) AddLocation(loc *model.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.locations[loc.Name]; exists {
		return fmt.Errorf("location %q already exists", loc.Name)
	}
	s.locations[loc.Name] = loc
	return nil
}

// GetChart returns a copy of the chart with the given ID, or nil if not
// found. The copy is safe to encode while the refresh loop keeps writing
// transit snapshots.
func (s *Store) GetChart(id string) *model.Chart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.charts[id]
	if !ok {
		return nil
	}
	return cloneChart(c)
}

// GetLocation returns the location with the given name, or nil if not found.
func (s *Store) GetLocation(name string) *model.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locations[name]
}

// ListCharts returns a snapshot of all charts as detached copies.
func (s *Store) ListCharts() []*model.Chart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*model.Chart, 0, len(s.charts))
	for _, c := range s.charts {
		res = append(res, cloneChart(c))
	}
	return res
}

// ListLocations returns a snapshot slice of all locations.
func (s *Store) ListLocations() []*model.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*model.Location, 0, len(s.locations))
	for _, l := range s.locations {
		res = append(res, l)
	}
	return res
}

// UpdateChartTransits replaces a chart's cached transit snapshot and
// notifies subscribers. The refresh loop calls this on every tick.
func (s *Store) UpdateChartTransits(id string, positions []model.PlanetPosition) error {
	s.mu.Lock()
	c, ok := s.charts[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("chart with ID %q not found", id)
	}
	c.Transits = append([]model.PlanetPosition(nil), positions...)
	event := Event{
		Type:  EventChartUpdated,
		Chart: *cloneChart(c),
	}
	subs := append([]func(Event){}, s.subs...)
	s.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Subscribe registers a callback for store events. It returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < 0 || idx >= len(s.subs) {
			return
		}
		s.subs = append(s.subs[:idx], s.subs[idx+1:]...)
		idx = -1
	}
}
