package store

import (
	"context"
	"sort"
	"sync"

	"tableflip.dev/appoverrides/pkg/override"
)

// MemorySink is a Sink kept entirely in memory. It is used by tests and by
// dry runs that must not touch disk.
type MemorySink struct {
	mu   sync.RWMutex
	rows map[string]override.Entry
}

func NewMemorySink(entries ...override.Entry) *MemorySink {
	m := &MemorySink{rows: make(map[string]override.Entry, len(entries))}
	for _, e := range entries {
		m.rows[e.AppID] = e
	}
	return m
}

func (m *MemorySink) LoadAll(_ context.Context) ([]override.Entry, error) {
	m.mu.RLock()
	out := make([]override.Entry, 0, len(m.rows))
	for _, e := range m.rows {
		out = append(out, e)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].AppID < out[j].AppID })
	return out, nil
}

func (m *MemorySink) Write(e override.Entry) error {
	if e.AppID == "" {
		return ErrInvalidEntry
	}
	m.mu.Lock()
	m.rows[e.AppID] = e
	m.mu.Unlock()
	return nil
}

func (m *MemorySink) Erase(appID string) error {
	m.mu.Lock()
	delete(m.rows, appID)
	m.mu.Unlock()
	return nil
}

// Row returns the persisted row for appID.
func (m *MemorySink) Row(appID string) (override.Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.rows[appID]
	return e, ok
}
