// Package notify implements the change-notification bus shared by every
// component observing the entity store.
//
// The source system propagated changes over two disjoint channels: a native
// cross-context signal that fired only in contexts other than the writer,
// and a custom same-context event the writer had to emit by hand. Here both
// are unified behind a single bus that delivers every change to all
// subscribers, including the writer's own context, so nobody special-cases
// the sender anymore. Event.Kind records where a change came from for
// logging and tests; subscribers are expected to run the same
// recompute-and-render callback regardless of kind.
package notify

import (
	"sort"
	"sync"
)

// EventKind classifies the origin of a change event.
type EventKind int

const (
	// KindLocal is a commit made through this context's own store handle.
	KindLocal EventKind = iota

	// KindExternal is a commit observed from another context sharing the
	// store. It carries the changed key and the new value (nil for deletes).
	KindExternal

	// KindRefresh is a zero-payload pulse asking subscribers to recompute
	// everything, emitted when a context returns to foreground and may have
	// missed signals while inactive.
	KindRefresh
)

// Event describes one observed change.
type Event struct {
	Namespace string
	Key       string
	Value     []byte // new serialized value; nil for deletes and refresh pulses
	Kind      EventKind
}

// Bus delivers events synchronously, in subscription order, to all current
// subscribers. A bus with no subscribers drops events.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers fn for every future event. The returned Subscription
// must be released with Unsubscribe when the observer tears down, or the
// callback leaks.
func (b *Bus) Subscribe(fn func(Event)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = fn
	return &Subscription{bus: b, id: id}
}

// Publish delivers e to all subscribers registered at the time of the call.
// A subscriber that unsubscribes mid-delivery is skipped if it has not been
// called yet.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	b.mu.Unlock()
	sort.Ints(ids)

	for _, id := range ids {
		b.mu.Lock()
		fn, ok := b.subs[id]
		b.mu.Unlock()
		if ok {
			fn(e)
		}
	}
}

// Subscription represents one registered observer.
type Subscription struct {
	bus  *Bus
	id   int
	once sync.Once
}

// Unsubscribe removes the observer. Safe to call more than once and safe to
// call from inside a delivery.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s.id)
		s.bus.mu.Unlock()
	})
}
