package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification.
type EventType int

const (
	// EventOverrideChanged indicates the row for AppID was written or erased.
	EventOverrideChanged EventType = iota

	// EventOverridesInvalidated signals that the change could not be pinned to
	// one application and callers should rebuild their full view.
	EventOverridesInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventOverrideChanged:
		return "changed"
	case EventOverridesInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type  EventType
	AppID string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than blocking the watcher. The
// channel is closed once ctx is done or the watcher fails.
func (s *DiskSink) Watch(ctx context.Context) (<-chan Event, error) {
	dir := filepath.Join(s.basePath, overridesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure overrides dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				s.warnf("watcher close: %v", err)
			}
		})
	}
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; the next event triggers a full rebuild anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.warnf("watch: %v", err)
				throttle.Enqueue(Event{Type: EventOverridesInvalidated})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				appID := s.pathToAppID(evt.Name)
				if appID == "" {
					throttle.Enqueue(Event{Type: EventOverridesInvalidated})
					continue
				}
				throttle.Enqueue(Event{Type: EventOverrideChanged, AppID: appID})
			case <-throttle.Ready():
				throttle.Flush(send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces bursts of writes into one notification per app.
// Flush runs on the watcher goroutine so sends never race the channel close.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
	ready   chan struct{}
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
		ready:   make(chan struct{}, 1),
	}
}

func (t *eventThrottle) Enqueue(ev Event) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.AppID] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			select {
			case t.ready <- struct{}{}:
			default:
			}
		})
	}
	t.mu.Unlock()
}

// Ready fires once the delay after the first pending event has elapsed.
func (t *eventThrottle) Ready() <-chan struct{} {
	return t.ready
}

func (t *eventThrottle) Flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	if _, ok := pending[EventOverridesInvalidated]; ok {
		send(Event{Type: EventOverridesInvalidated})
		return
	}
	for appID := range pending[EventOverrideChanged] {
		send(Event{Type: EventOverrideChanged, AppID: appID})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
