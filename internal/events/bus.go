package events

import (
	"log/slog"
	"sync"
)

// Subscription is one listener on the bus. Events arrive on C; a
// subscription that stops draining loses events rather than stalling
// the publisher.
type Subscription struct {
	bus   *Bus
	ch    chan Event
	types map[string]struct{} // empty matches every event type
}

// C returns the channel events are delivered on. It is closed when the
// subscription is cancelled or the bus shuts down.
func (s *Subscription) C() <-chan Event { return s.ch }

// Cancel removes the subscription and closes its channel.
func (s *Subscription) Cancel() { s.bus.cancel(s) }

func (s *Subscription) wants(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// Bus fans events out to subscribers. Delivery is fire-and-forget: a
// full subscriber never fails or delays the publishing mutation.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	log    *slog.Logger
	closed bool
}

func NewBus(log *slog.Logger) *Bus {
	if log == nil {
		log = slog.Default()
	}
	return &Bus{
		subs: make(map[*Subscription]struct{}),
		log:  log,
	}
}

// Subscribe registers a listener. With no types it receives every
// event; otherwise only the named event types.
func (b *Bus) Subscribe(buffer int, types ...string) *Subscription {
	sub := &Subscription{
		bus: b,
		ch:  make(chan Event, buffer),
	}
	if len(types) > 0 {
		sub.types = make(map[string]struct{}, len(types))
		for _, t := range types {
			sub.types[t] = struct{}{}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.ch)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Publish delivers e to every matching subscriber without blocking.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	targets := make([]*Subscription, 0, len(b.subs))
	for sub := range b.subs {
		if sub.wants(e.EventType()) {
			targets = append(targets, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		select {
		case sub.ch <- e:
		default:
			b.log.Warn("subscriber full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
}

func (b *Bus) cancel(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
}

// Close shuts down the bus and closes every subscriber channel.
// Publishing after Close is a no-op.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for sub := range b.subs {
		close(sub.ch)
	}
	b.subs = nil
	return nil
}
