// Package counter provides a broadcast counter: a single non-negative
// integer with many independent observers.
package counter

import (
	"sort"
	"sync"
)

// Counter is the observable unread counter shared by every screen.
type Counter interface {
	// Get returns the current value.
	Get() int
	// Set stores n clamped to zero and notifies every observer before returning.
	Set(n int)
	// Adjust is Set(Get()+delta) performed atomically.
	Adjust(delta int)
	// Subscribe registers fn, delivers the current value to it immediately,
	// and returns a function removing only this registration.
	Subscribe(fn func(int)) (unsubscribe func())
}

// Broadcast is the in-process Counter implementation.
type Broadcast struct {
	// deliver serializes set-and-notify so observers see values in order.
	deliver sync.Mutex

	mu     sync.RWMutex
	value  int
	nextID uint64
	subs   map[uint64]func(int)
	closed bool
}

var _ Counter = (*Broadcast)(nil)

// New creates a counter starting at initial (clamped).
func New(initial int) *Broadcast {
	return &Broadcast{
		value: clamp(initial),
		subs:  make(map[uint64]func(int)),
	}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Get returns the current value.
func (b *Broadcast) Get() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Set stores n (negative values clamp to 0) and notifies observers.
// Observers must not call Set or Adjust from inside their callback.
func (b *Broadcast) Set(n int) {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	b.mu.Lock()
	b.value = clamp(n)
	value := b.value
	subs := b.snapshotLocked()
	b.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Adjust adds delta to the current value, clamping at zero.
func (b *Broadcast) Adjust(delta int) {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	b.mu.Lock()
	b.value = clamp(b.value + delta)
	value := b.value
	subs := b.snapshotLocked()
	b.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Subscribe registers fn and delivers the current value to it.
func (b *Broadcast) Subscribe(fn func(int)) func() {
	if fn == nil {
		return func() {}
	}
	b.deliver.Lock()
	defer b.deliver.Unlock()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	value := b.value
	b.mu.Unlock()

	fn(value)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered observers.
func (b *Broadcast) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close drops every observer. Later subscriptions are ignored; the value
// remains readable.
func (b *Broadcast) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[uint64]func(int))
}

// snapshotLocked returns observers in registration order.
func (b *Broadcast) snapshotLocked() []func(int) {
	ids := make([]uint64, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(int), 0, len(ids))
	for _, id := range ids {
		out = append(out, b.subs[id])
	}
	return out
}
