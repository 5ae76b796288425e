package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatchUnsupported is returned by Watch for backends that cannot observe
// writes made by other processes.
var ErrWatchUnsupported = errors.New("store: backend does not support watch")

// EventType describes the nature of a slot change notification.
type EventType int

const (
	// EventSlotChanged indicates the slot was created or rewritten.
	EventSlotChanged EventType = iota

	// EventSlotRemoved indicates the slot was cleared from outside.
	EventSlotRemoved

	// EventResync signals that the watcher lost track of precise changes and
	// callers should reload every slot they care about.
	EventResync
)

func (t EventType) String() string {
	switch t {
	case EventSlotChanged:
		return "changed"
	case EventSlotRemoved:
		return "removed"
	case EventResync:
		return "resync"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type EventType
	Slot string
}

// Watcher is implemented by backends that can stream change events.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Watch streams change events from s, if the backend supports it.
func Watch(ctx context.Context, s Slots) (<-chan Event, error) {
	w, ok := s.(Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

const watchThrottle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than queued when the consumer
// falls behind. The channel is closed once ctx is done or the watcher fails.
func (s *DiskvSlots) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(s.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", s.basePath, err)
	}

	events := make(chan Event, 64)
	var (
		mu     sync.Mutex
		closed bool
	)
	send := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case events <- ev:
		default:
		}
	}

	go func() {
		throttle := newEventThrottle(watchThrottle)
		defer func() {
			throttle.Stop()
			if err := watcher.Close(); err != nil {
				slog.Warn("store: watcher close", "error", err)
			}
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("store: watcher error", "error", err)
				throttle.Enqueue(Event{Type: EventResync}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key := keyForPath(s.basePath, evt.Name)
				if key == "" {
					continue
				}
				switch {
				case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					throttle.Enqueue(Event{Type: EventSlotRemoved, Slot: key}, send)
				case evt.Op&(fsnotify.Create|fsnotify.Write) != 0:
					throttle.Enqueue(Event{Type: EventSlotChanged, Slot: key}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so callers redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]EventType
	order   []string
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]EventType),
	}
}

// Enqueue records ev; the latest event per slot wins within one burst.
func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if _, ok := t.pending[ev.Slot]; !ok {
		t.order = append(t.order, ev.Slot)
	}
	t.pending[ev.Slot] = ev.Type

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending, order := t.pending, t.order
	t.pending = make(map[string]EventType)
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, slot := range order {
		send(Event{Type: pending[slot], Slot: slot})
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
