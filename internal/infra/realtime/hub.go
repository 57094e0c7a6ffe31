// Package realtime fans reservation lifecycle events out to live viewers.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"table-booking/internal/domain/event"
)

const DefaultSubscriberBuffer = 64

// Hub is the in-process broadcaster. Publish never blocks: a subscriber whose buffer is full
// misses the event and is expected to re-fetch after its next reconnect.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*subscription]struct{}
	closed  bool
	buffer  int
	dropped atomic.Int64
	logger  *slog.Logger
}

type subscription struct {
	ch   chan event.Event
	once sync.Once
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Hub{
		subs:   make(map[*subscription]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

func (h *Hub) Publish(_ context.Context, e event.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		select {
		case s.ch <- e:
		default:
			h.dropped.Add(1)
			h.logger.Debug("Dropped event for slow subscriber", "type", e.Type)
		}
	}
	return nil
}

// Subscribe registers a viewer. The returned cancel func is idempotent and closes the channel.
// After Close the channel comes back already closed.
func (h *Hub) Subscribe() (<-chan event.Event, func()) {
	s := &subscription{ch: make(chan event.Event, h.buffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(s.ch)
		return s.ch, func() {}
	}
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		s.once.Do(func() {
			h.mu.Lock()
			delete(h.subs, s)
			h.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel
}

// Close ends every open stream so the HTTP server can drain.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for s := range h.subs {
		s.once.Do(func() { close(s.ch) })
		delete(h.subs, s)
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
