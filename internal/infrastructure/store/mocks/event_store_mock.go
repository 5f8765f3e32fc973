package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tranphihao2k3/LapLap-sub001/internal/infrastructure/store"
)

// MockEventStore is a mock implementation of EventStoreInterface for testing
type MockEventStore struct {
	mu        sync.RWMutex
	events    map[string][]store.Event
	snapshots map[string]*store.Snapshot

	// For tracking calls in tests
	AppendCalls       []AppendCall
	AppendErr         error
	AppendCallback    func(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*store.Event, error)
	SaveSnapshotCalls []SaveSnapshotCall
	SnapshotErr       error
}

// AppendCall records parameters passed to Append
type AppendCall struct {
	AggregateID   string
	AggregateType string
	EventType     string
	Data          any
}

// SaveSnapshotCall records parameters passed to SaveSnapshot
type SaveSnapshotCall struct {
	Snapshot *store.Snapshot
}

// NewMockEventStore creates a new MockEventStore
func NewMockEventStore() *MockEventStore {
	return &MockEventStore{
		events:      make(map[string][]store.Event),
		snapshots:   make(map[string]*store.Snapshot),
		AppendCalls: make([]AppendCall, 0),
	}
}

// Append stores an event in memory
func (m *MockEventStore) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*store.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls = append(m.AppendCalls, AppendCall{
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          data,
	})

	if m.AppendCallback != nil {
		return m.AppendCallback(ctx, aggregateID, aggregateType, eventType, data)
	}

	if m.AppendErr != nil {
		return nil, m.AppendErr
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	version := m.nextVersion(aggregateID)
	event := store.Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}

	m.events[aggregateID] = append(m.events[aggregateID], event)
	return &event, nil
}

// nextVersion continues from the highest known version, whether it came from
// appended events, SetEvents or a snapshot.
func (m *MockEventStore) nextVersion(aggregateID string) int {
	max := 0
	for _, e := range m.events[aggregateID] {
		if e.Version > max {
			max = e.Version
		}
	}
	if s := m.snapshots[aggregateID]; s != nil && s.Version > max {
		max = s.Version
	}
	return max + 1
}

// GetEvents returns events for an aggregate
func (m *MockEventStore) GetEvents(aggregateID string) []store.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.events[aggregateID]
}

// GetEventsFromVersion returns events newer than the given version
func (m *MockEventStore) GetEventsFromVersion(ctx context.Context, aggregateID string, version int) []store.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []store.Event
	for _, e := range m.events[aggregateID] {
		if e.Version > version {
			events = append(events, e)
		}
	}
	return events
}

// GetAllEvents returns all events
func (m *MockEventStore) GetAllEvents() []store.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []store.Event
	for _, events := range m.events {
		all = append(all, events...)
	}
	return all
}

// GetSnapshot returns the snapshot set via SetSnapshot or SaveSnapshot
func (m *MockEventStore) GetSnapshot(ctx context.Context, aggregateID string) (*store.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.SnapshotErr != nil {
		return nil, m.SnapshotErr
	}
	return m.snapshots[aggregateID], nil
}

// SaveSnapshot records the call and stores the snapshot
func (m *MockEventStore) SaveSnapshot(ctx context.Context, snapshot *store.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveSnapshotCalls = append(m.SaveSnapshotCalls, SaveSnapshotCall{Snapshot: snapshot})
	if m.SnapshotErr != nil {
		return m.SnapshotErr
	}
	m.snapshots[snapshot.AggregateID] = snapshot
	return nil
}

// Reset clears all events, snapshots and recorded calls
func (m *MockEventStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = make(map[string][]store.Event)
	m.snapshots = make(map[string]*store.Snapshot)
	m.AppendCalls = make([]AppendCall, 0)
	m.SaveSnapshotCalls = nil
	m.AppendErr = nil
	m.AppendCallback = nil
	m.SnapshotErr = nil
}

// SetEvents sets events directly for testing
func (m *MockEventStore) SetEvents(aggregateID string, events []store.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[aggregateID] = events
}

// SetSnapshot sets a snapshot directly for testing
func (m *MockEventStore) SetSnapshot(snapshot *store.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapshot.AggregateID] = snapshot
}

// AddEvent adds a single event for testing
func (m *MockEventStore) AddEvent(aggregateID, aggregateType, eventType string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	version := m.nextVersion(aggregateID)
	event := store.Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}

	m.events[aggregateID] = append(m.events[aggregateID], event)
	return nil
}
