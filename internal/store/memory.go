package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

// Memory is an in-process EventStore used in tests and local development
type Memory struct {
	mu     sync.Mutex
	events map[string]model.EventRecord // natural key -> record
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{events: make(map[string]model.EventRecord)}
}

// Upsert merges the batch on the natural key
func (m *Memory) Upsert(_ context.Context, events []model.EventRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	written := 0
	for _, ev := range events {
		m.events[ev.NaturalKey()] = ev
		written++
	}
	return written, nil
}

// ListUpcoming returns future-dated events ordered by start date
func (m *Memory) ListUpcoming(_ context.Context, now time.Time, limit int64) ([]model.EventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.EventRecord
	for _, ev := range m.events {
		if ev.StartDate.After(now) {
			out = append(out, ev)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })

	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len reports the number of persisted rows
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// Get returns the record stored under the given natural key
func (m *Memory) Get(key string) (model.EventRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[key]
	return ev, ok
}
