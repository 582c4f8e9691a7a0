package learning

import (
	"errors"
	"sync"
	"time"

	"github.com/growthkit/linkedin-assistant/internal/storage"
)

// mockStore is an in-memory storage.ActivityStore for testing.
type mockStore struct {
	mu      sync.Mutex
	history map[string][]storage.ActivityEvent
	initErr error
	failFor string
}

func newMockStore() *mockStore {
	return &mockStore{history: make(map[string][]storage.ActivityEvent)}
}

func (m *mockStore) Init() error  { return m.initErr }
func (m *mockStore) Close() error { return nil }

func (m *mockStore) RecordActivity(event storage.ActivityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[event.Tone] = append(m.history[event.Tone], event)
	return nil
}

func (m *mockStore) GetActivityHistory(tone string, since time.Time) ([]storage.ActivityEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tone == m.failFor {
		return nil, errors.New("history unavailable")
	}
	var out []storage.ActivityEvent
	for _, e := range m.history[tone] {
		if !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStore) ClearActivity() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = make(map[string][]storage.ActivityEvent)
	return nil
}

func (m *mockStore) Cleanup(retention time.Duration) error { return nil }

func (m *mockStore) count(tone string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history[tone])
}
