// Package store holds the per-application override entries and persists them
// through a durable Sink.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/setting"
)

var (
	// ErrInvalidEntry is returned for an entry without an application id or
	// with a value outside its setting's keys.
	ErrInvalidEntry = errors.New("store: invalid entry")
	// ErrSink wraps failures reported by the durable sink.
	ErrSink = errors.New("store: sink failure")
)

// Store is the keyed collection of override entries. Mutations are written
// through to the sink before they become visible to readers.
type Store struct {
	sink Sink
	// Diagnostics receives warnings from Watch when a reload fails.
	Diagnostics io.Writer

	mu      sync.RWMutex
	entries map[string]override.Entry
}

// Open loads every entry from sink.
func Open(ctx context.Context, sink Sink) (*Store, error) {
	if sink == nil {
		return nil, errors.New("store: no sink configured")
	}
	s := &Store{sink: sink, entries: map[string]override.Entry{}}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Sink returns the sink the store writes through.
func (s *Store) Sink() Sink {
	return s.sink
}

// Reload replaces the in-memory view with the sink's current contents.
func (s *Store) Reload(ctx context.Context) error {
	loaded, err := s.sink.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: load: %v", ErrSink, err)
	}
	next := make(map[string]override.Entry, len(loaded))
	for _, e := range loaded {
		if e.AppID == "" {
			continue
		}
		if _, dup := next[e.AppID]; dup {
			continue
		}
		next[e.AppID] = e
	}
	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()
	return nil
}

// All returns every entry ordered by app id.
func (s *Store) All() []override.Entry {
	s.mu.RLock()
	out := make([]override.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].AppID < out[j].AppID })
	return out
}

// Len is the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get returns the entry for appID, if any.
func (s *Store) Get(appID string) (override.Entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[appID]
	s.mu.RUnlock()
	return e, ok
}

// Put inserts or replaces the entry keyed by e.AppID.
func (s *Store) Put(e override.Entry) error {
	e, err := validate(e)
	if err != nil {
		return err
	}
	// Writers are serialised so the sink and the map agree on ordering.
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sink.Write(e); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrSink, e.AppID, err)
	}
	s.entries[e.AppID] = e
	return nil
}

// Delete removes the entry for appID. Deleting a missing entry is a no-op.
func (s *Store) Delete(appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// The sink may hold a row written since the last reload.
	if err := s.sink.Erase(appID); err != nil {
		return fmt.Errorf("%w: erase %s: %v", ErrSink, appID, err)
	}
	delete(s.entries, appID)
	return nil
}

// Watch forwards change events from the sink when it supports watching. The
// store is reloaded before each event is delivered.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.sink.(Watcher)
	if !ok {
		return nil, errors.New("store: sink does not support watching")
	}
	in, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan Event, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			if err := s.Reload(ctx); err != nil {
				s.warnf("reload after %s: %v", ev.Type, err)
				ev = Event{Type: EventOverridesInvalidated}
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *Store) warnf(format string, args ...any) {
	if s.Diagnostics == nil {
		return
	}
	fmt.Fprintf(s.Diagnostics, "store: "+format+"\n", args...)
}

// validate rejects entries the sink could not round trip and returns e with
// its values in key form.
func validate(e override.Entry) (override.Entry, error) {
	if e.AppID == "" {
		return e, fmt.Errorf("%w: app id required", ErrInvalidEntry)
	}
	cs, err := setting.ParseControllerStyle(string(e.ControllerStyle))
	if err != nil {
		return e, fmt.Errorf("%w: %s: %v", ErrInvalidEntry, e.AppID, err)
	}
	l2r2, err := setting.ParseL2R2Style(string(e.L2R2Style))
	if err != nil {
		return e, fmt.Errorf("%w: %s: %v", ErrInvalidEntry, e.AppID, err)
	}
	e.ControllerStyle, e.L2R2Style = cs, l2r2
	return e, nil
}
