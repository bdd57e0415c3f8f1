package event

import (
	"sync"
	"sync/atomic"

	"gopkg.in/inconshreveable/log15.v2"
)

// Handler receives a dispatched Event.
type Handler func(Event)

// Filter decides whether a filtered subscription should fire for ev. A
// filter that returns false does not consume a once-subscription — it
// remains live until a matching Event arrives.
type Filter func(Event) bool

// ID identifies a subscription for Off.
type ID uint64

type subscription struct {
	id      ID
	once    bool
	filter  Filter
	handler Handler
}

// Bus is a closed-Kind publish/subscribe dispatcher. Subscribers are
// invoked in registration order, inline on the calling goroutine; dispatch
// holds a copy of the handler list so that subscription/unsubscription
// during dispatch never races with, or reorders, the in-flight dispatch.
type Bus struct {
	mu   sync.RWMutex
	subs map[Kind][]*subscription

	nextID atomic.Uint64

	log log15.Logger
}

// NewBus creates an empty Bus. A nil logger falls back to a discarding
// log15.Logger.
func NewBus(logger log15.Logger) *Bus {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &Bus{
		subs: make(map[Kind][]*subscription),
		log:  logger,
	}
}

// On registers a persistent subscription for kind, firing for every
// matching event until Off is called.
func (b *Bus) On(kind Kind, handler Handler) ID {
	return b.subscribe(kind, false, nil, handler)
}

// Once registers a subscription removed after its first firing.
func (b *Bus) Once(kind Kind, handler Handler) ID {
	return b.subscribe(kind, true, nil, handler)
}

// OnFilter registers a persistent subscription that only fires when filter
// returns true.
func (b *Bus) OnFilter(kind Kind, filter Filter, handler Handler) ID {
	return b.subscribe(kind, false, filter, handler)
}

// OnceFilter registers a subscription removed after the first event for
// which filter returns true; non-matching events do not consume it.
func (b *Bus) OnceFilter(kind Kind, filter Filter, handler Handler) ID {
	return b.subscribe(kind, true, filter, handler)
}

func (b *Bus) subscribe(kind Kind, once bool, filter Filter, handler Handler) ID {
	id := ID(b.nextID.Add(1))
	sub := &subscription{id: id, once: once, filter: filter, handler: handler}

	b.mu.Lock()
	b.subs[kind] = append(b.subs[kind], sub)
	b.mu.Unlock()

	return id
}

// Off removes a subscription by ID. It is a no-op if the ID is unknown
// (e.g. a once-subscription that already fired).
func (b *Bus) Off(kind Kind, id ID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[kind]
	for i, sub := range list {
		if sub.id == id {
			b.subs[kind] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Publish dispatches ev to every subscriber registered for ev.Kind, in
// registration order. Subscribers registered during this dispatch (by
// another subscriber) do not observe it — only the copy taken at the start
// is walked. A subscriber that panics is isolated: the panic is recovered
// and logged, and dispatch continues with the remaining subscribers.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	list := make([]*subscription, len(b.subs[ev.Kind]))
	copy(list, b.subs[ev.Kind])
	b.mu.RUnlock()

	var toRemove []ID
	for _, sub := range list {
		if sub.filter != nil && !sub.filter(ev) {
			continue
		}

		b.invoke(sub, ev)

		if sub.once {
			toRemove = append(toRemove, sub.id)
		}
	}

	if len(toRemove) > 0 {
		b.mu.Lock()
		for _, id := range toRemove {
			list := b.subs[ev.Kind]
			for i, sub := range list {
				if sub.id == id {
					b.subs[ev.Kind] = append(list[:i], list[i+1:]...)
					break
				}
			}
		}
		b.mu.Unlock()
	}
}

// invoke calls a single handler with panic isolation, so one misbehaving
// subscriber cannot take down dispatch for the rest.
func (b *Bus) invoke(sub *subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event subscriber panicked", "kind", ev.Kind.String(), "recovered", r)
		}
	}()
	sub.handler(ev)
}
