// Package pagecache accumulates pages of items per query key and tracks the
// fetch state of each stream.
//
// Every fetch is started with Begin, which issues a ticket carrying a
// per-key, monotonically increasing token. Only the holder of the latest
// token may Commit or Fail; responses for superseded requests are dropped.
package pagecache

import (
	"sync"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

// State is the fetch state of one stream.
type State int

const (
	Idle State = iota
	Loading
	LoadingMore
	Loaded
	Errored
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case LoadingMore:
		return "loading-more"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Mode selects how a committed page is merged.
type Mode int

const (
	// ModeReplace discards the accumulated list on commit (load, refetch).
	ModeReplace Mode = iota
	// ModeAppend appends the next page (pagination).
	ModeAppend
)

// Token orders requests issued for one key.
type Token uint64

// Ticket is handed out by Begin and presented back on Commit or Fail.
type Ticket struct {
	Token Token
	Mode  Mode
	Page  int // page number to request
}

// Page is one fetched page.
type Page[T domain.Item] struct {
	Items      []T
	PageNumber int
	TotalPages int
}

// Snapshot is a read-only copy of a stream's state.
type Snapshot[T domain.Item] struct {
	Key        domain.QueryKey
	Items      []T
	State      State
	HasMore    bool
	PageNumber int
	TotalPages int
	Err        error
}

type entry[T domain.Item] struct {
	items     []T
	index     map[int64]int
	state     State
	hasMore   bool
	page      int
	total     int
	err       error
	latest    Token
	observers map[uint64]func(Snapshot[T])
}

func newEntry[T domain.Item]() *entry[T] {
	return &entry[T]{
		index:     make(map[int64]int),
		observers: make(map[uint64]func(Snapshot[T])),
	}
}

// Cache maps query keys to accumulated item lists. Observers are notified
// synchronously after each change and must not mutate the cache from inside
// their callback.
type Cache[T domain.Item] struct {
	deliver sync.Mutex

	mu      sync.Mutex
	entries map[domain.QueryKey]*entry[T]
	nextObs uint64
}

// New creates an empty cache.
func New[T domain.Item]() *Cache[T] {
	return &Cache[T]{entries: make(map[domain.QueryKey]*entry[T])}
}

// Begin starts a fetch for key. ModeReplace is always accepted. ModeAppend
// is accepted only when the stream is Loaded with more pages; otherwise ok is
// false and nothing changes.
func (c *Cache[T]) Begin(key domain.QueryKey, mode Mode) (ticket Ticket, ok bool) {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	e := c.entries[key]
	switch mode {
	case ModeAppend:
		if e == nil || e.state != Loaded || !e.hasMore {
			c.mu.Unlock()
			return Ticket{}, false
		}
		e.state = LoadingMore
		ticket = Ticket{Mode: ModeAppend, Page: e.page + 1}
	default:
		if e == nil {
			e = newEntry[T]()
			c.entries[key] = e
		}
		e.state = Loading
		ticket = Ticket{Mode: ModeReplace, Page: 1}
	}
	e.latest++
	ticket.Token = e.latest
	snap, obs := c.snapshotLocked(key, e)
	c.mu.Unlock()

	notify(obs, snap)
	return ticket, true
}

// Commit merges page into key's list if ticket is still the latest request.
// It reports false when the response was superseded or the entry discarded.
func (c *Cache[T]) Commit(key domain.QueryKey, ticket Ticket, page Page[T]) bool {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	e := c.entries[key]
	if e == nil || e.latest != ticket.Token {
		c.mu.Unlock()
		return false
	}
	if ticket.Mode == ModeReplace {
		e.items = nil
		e.index = make(map[int64]int)
	}
	for _, it := range page.Items {
		id := it.ItemID()
		if _, dup := e.index[id]; dup {
			continue
		}
		e.index[id] = len(e.items)
		e.items = append(e.items, it)
	}
	e.page = page.PageNumber
	e.total = page.TotalPages
	e.hasMore = page.PageNumber < page.TotalPages
	e.state = Loaded
	e.err = nil
	snap, obs := c.snapshotLocked(key, e)
	c.mu.Unlock()

	notify(obs, snap)
	return true
}

// Fail marks the request as errored, keeping the accumulated list. It
// reports false for superseded requests.
func (c *Cache[T]) Fail(key domain.QueryKey, ticket Ticket, err error) bool {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	e := c.entries[key]
	if e == nil || e.latest != ticket.Token {
		c.mu.Unlock()
		return false
	}
	e.state = Errored
	e.err = err
	snap, obs := c.snapshotLocked(key, e)
	c.mu.Unlock()

	notify(obs, snap)
	return true
}

// Clear empties key's list and marks it Loaded with no more pages. Any
// request in flight for key is superseded.
func (c *Cache[T]) Clear(key domain.QueryKey) {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	e := c.entries[key]
	if e == nil {
		e = newEntry[T]()
		c.entries[key] = e
	}
	e.latest++
	e.items = nil
	e.index = make(map[int64]int)
	e.state = Loaded
	e.hasMore = false
	e.page = 0
	e.total = 0
	e.err = nil
	snap, obs := c.snapshotLocked(key, e)
	c.mu.Unlock()

	notify(obs, snap)
}

// Get returns the cached item with id under key.
func (c *Cache[T]) Get(key domain.QueryKey, id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	e := c.entries[key]
	if e == nil {
		return zero, false
	}
	i, ok := e.index[id]
	if !ok {
		return zero, false
	}
	return e.items[i], true
}

// Update replaces the item with id under key by fn(item) and returns the new
// value. The identifier must not change.
func (c *Cache[T]) Update(key domain.QueryKey, id int64, fn func(T) T) (T, bool) {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	var zero T
	c.mu.Lock()
	e := c.entries[key]
	if e == nil {
		c.mu.Unlock()
		return zero, false
	}
	i, ok := e.index[id]
	if !ok {
		c.mu.Unlock()
		return zero, false
	}
	updated := fn(e.items[i])
	e.items[i] = updated
	snap, obs := c.snapshotLocked(key, e)
	c.mu.Unlock()

	notify(obs, snap)
	return updated, true
}

// UpdateAll applies fn to every cached item of every key and returns the
// number of items visited.
func (c *Cache[T]) UpdateAll(fn func(T) T) int {
	return c.UpdateEach(func(_ domain.QueryKey, item T) T { return fn(item) })
}

// UpdateEach is UpdateAll with the key each item is cached under.
func (c *Cache[T]) UpdateEach(fn func(key domain.QueryKey, item T) T) int {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	type pending struct {
		snap Snapshot[T]
		obs  []func(Snapshot[T])
	}
	var notifications []pending
	visited := 0

	c.mu.Lock()
	for key, e := range c.entries {
		if len(e.items) == 0 {
			continue
		}
		for i := range e.items {
			e.items[i] = fn(key, e.items[i])
		}
		visited += len(e.items)
		snap, obs := c.snapshotLocked(key, e)
		notifications = append(notifications, pending{snap: snap, obs: obs})
	}
	c.mu.Unlock()

	for _, n := range notifications {
		notify(n.obs, n.snap)
	}
	return visited
}

// Snapshot returns a copy of key's state. Unknown keys are Idle.
func (c *Cache[T]) Snapshot(key domain.QueryKey) Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil {
		return Snapshot[T]{Key: key, State: Idle}
	}
	snap, _ := c.snapshotLocked(key, e)
	return snap
}

// Items returns a copy of key's accumulated list.
func (c *Cache[T]) Items(key domain.QueryKey) []T {
	return c.Snapshot(key).Items
}

// Keys returns the keys currently held.
func (c *Cache[T]) Keys() []domain.QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]domain.QueryKey, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Subscribe registers fn for key and delivers the current snapshot at once.
// When the last observer of key unsubscribes the entry is discarded.
func (c *Cache[T]) Subscribe(key domain.QueryKey, fn func(Snapshot[T])) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	e := c.entries[key]
	if e == nil {
		e = newEntry[T]()
		c.entries[key] = e
	}
	id := c.nextObs
	c.nextObs++
	e.observers[id] = fn
	snap, _ := c.snapshotLocked(key, e)
	c.mu.Unlock()

	fn(snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			cur := c.entries[key]
			if cur != e {
				return
			}
			delete(e.observers, id)
			if len(e.observers) == 0 {
				delete(c.entries, key)
			}
		})
	}
}

// Observers returns the number of observers registered for key.
func (c *Cache[T]) Observers(key domain.QueryKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entries[key]; e != nil {
		return len(e.observers)
	}
	return 0
}

// Discard drops key regardless of observers. Requests in flight for it are
// ignored when they complete.
func (c *Cache[T]) Discard(key domain.QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache[T]) snapshotLocked(key domain.QueryKey, e *entry[T]) (Snapshot[T], []func(Snapshot[T])) {
	items := make([]T, len(e.items))
	copy(items, e.items)
	snap := Snapshot[T]{
		Key:        key,
		Items:      items,
		State:      e.state,
		HasMore:    e.hasMore,
		PageNumber: e.page,
		TotalPages: e.total,
		Err:        e.err,
	}
	obs := make([]func(Snapshot[T]), 0, len(e.observers))
	for _, fn := range e.observers {
		obs = append(obs, fn)
	}
	return snap, obs
}

func notify[T domain.Item](obs []func(Snapshot[T]), snap Snapshot[T]) {
	for _, fn := range obs {
		fn(snap)
	}
}
