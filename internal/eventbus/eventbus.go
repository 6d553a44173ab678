// Package eventbus provides a small in-process publish/subscribe bus.
package eventbus

import "sync"

// subscriberBuffer bounds how many undelivered events a subscriber may hold
// before further publishes to it are dropped.
const subscriberBuffer = 8

// Bus is a type-safe publish/subscribe bus. Publishing never blocks: a
// subscriber that falls behind its buffer misses events, which suits display
// refreshes where only the latest state matters.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   map[int]chan T
	nextID int
	closed bool
}

// New creates an empty bus.
func New[T any]() *Bus[T] { return &Bus[T]{subs: make(map[int]chan T)} }

// Publish delivers e to every subscriber without blocking.
func (b *Bus[T]) Publish(e T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a subscriber and returns its channel together with a
// cancel function that removes the subscription and closes the channel.
// Subscribing to a closed bus yields an already closed channel.
func (b *Bus[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, subscriberBuffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()
	return ch, func() { b.unsubscribe(id) }
}

func (b *Bus[T]) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	if !b.closed {
		close(ch)
	}
}

// Close shuts the bus down and closes every subscriber channel. Publishes
// after Close are dropped.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
