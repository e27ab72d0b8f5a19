// Package event provides a minimal named-topic publish/subscribe bus.
//
// Delivery is synchronous: Publish returns after every subscriber registered
// at the moment of the call has run. A panicking subscriber is logged and
// skipped; the remaining subscribers still receive the event.
package event

import (
	"runtime/debug"
	"sync"
	"time"

	"keyclaim/log"
)

// Event is the envelope handed to subscribers.
type Event struct {
	Type      string
	Data      any
	Timestamp time.Time
}

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus is an observer table keyed by topic name. The zero value is not usable,
// use NewBus.
type Bus struct {
	mu     sync.Mutex
	topics map[string][]subscription
	nextID uint64

	// now is replaceable in tests.
	now func() time.Time
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		topics: make(map[string][]subscription),
		now:    time.Now,
	}
}

// Subscribe registers fn for topic and returns a function that removes it.
// The returned function is safe to call more than once.
func (b *Bus) Subscribe(topic string, fn Handler) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.topics[topic] = append(b.topics[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// Copy so that an in-flight Publish keeps iterating its own slice.
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.topics, topic)
		} else {
			b.topics[topic] = next
		}
		return
	}
}

// Publish delivers data to every current subscriber of topic, in subscription
// order. Subscribers added while Publish is running do not see this event.
func (b *Bus) Publish(topic string, data any) {
	b.mu.Lock()
	subs := b.topics[topic]
	if len(subs) == 0 {
		b.mu.Unlock()
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	ev := Event{Type: topic, Data: data, Timestamp: b.now()}
	b.mu.Unlock()

	for _, s := range snapshot {
		b.deliver(s, ev)
	}
}

// deliver runs a single handler and isolates its failure.
func (b *Bus) deliver(s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorLog.Printf("event subscriber %d for %q panicked: %v\n%s", s.id, ev.Type, r, debug.Stack())
		}
	}()
	s.fn(ev)
}

// SubscriberCount returns the number of subscribers currently registered for topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

// Subscribe registers a typed handler. Events whose Data is not a T are
// logged and dropped.
func Subscribe[T any](b *Bus, topic string, fn func(T)) (unsubscribe func()) {
	return b.Subscribe(topic, func(ev Event) {
		data, ok := ev.Data.(T)
		if !ok {
			log.WarningLog.Printf("event %q carried %T, subscriber expects %T", ev.Type, ev.Data, data)
			return
		}
		fn(data)
	})
}
