// Package optimistic applies user mutations to cached items before the
// server confirms them.
//
// The local change and the counter adjustment happen synchronously; the
// remote call runs in the background. Remote results are never merged back.
// What happens to the local change when the remote call fails is decided by
// the Policy.
package optimistic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/counter"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
)

// DefaultTimeout bounds each remote call.
const DefaultTimeout = 15 * time.Second

// Policy decides what happens to a local change whose remote call failed.
type Policy int

const (
	// KeepOnFailure leaves the local change in place and only logs.
	KeepOnFailure Policy = iota
	// RevertOnFailure undoes the local change and the counter adjustment.
	RevertOnFailure
)

// String returns the config spelling of the policy.
func (p Policy) String() string {
	if p == RevertOnFailure {
		return "revert"
	}
	return "keep"
}

// ParsePolicy parses "keep" or "revert".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepOnFailure, nil
	case "revert":
		return RevertOnFailure, nil
	default:
		return KeepOnFailure, fmt.Errorf("invalid rollback policy %q: expected keep or revert", s)
	}
}

// Mutation describes a local change.
type Mutation[T domain.Item] struct {
	// Applies reports whether the change is meaningful for the item. Nil
	// means always.
	Applies func(T) bool
	Apply   func(T) T
	// Revert undoes Apply; used only under RevertOnFailure.
	Revert func(T) T
	// Delta is added to the counter when the change is applied.
	Delta int
}

func (m Mutation[T]) applies(item T) bool {
	return m.Applies == nil || m.Applies(item)
}

// Remote performs the server side of a mutation.
type Remote func(ctx context.Context) error

// Option configures a Mutator.
type Option[T domain.Item] func(*Mutator[T])

// WithRollback sets the failure policy.
func WithRollback[T domain.Item](p Policy) Option[T] {
	return func(m *Mutator[T]) { m.policy = p }
}

// WithLogger sets the logger.
func WithLogger[T domain.Item](l logging.Logger) Option[T] {
	return func(m *Mutator[T]) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTimeout bounds each remote call.
func WithTimeout[T domain.Item](d time.Duration) Option[T] {
	return func(m *Mutator[T]) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// Mutator applies mutations to a cache and a counter.
type Mutator[T domain.Item] struct {
	cache   *pagecache.Cache[T]
	counter counter.Counter
	policy  Policy
	log     logging.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// New creates a mutator. cnt may be nil when no counter tracks the items.
func New[T domain.Item](cache *pagecache.Cache[T], cnt counter.Counter, opts ...Option[T]) *Mutator[T] {
	m := &Mutator[T]{
		cache:   cache,
		counter: cnt,
		log:     logging.NewNoop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the configured failure policy.
func (m *Mutator[T]) Policy() Policy {
	return m.policy
}

// ApplyAndSync applies mut to item id under key, adjusts the counter and
// starts remote in the background. It reports false, without calling
// remote, when the item is not cached or the mutation does not apply.
func (m *Mutator[T]) ApplyAndSync(key domain.QueryKey, id int64, mut Mutation[T], remote Remote) bool {
	applied := false
	_, found := m.cache.Update(key, id, func(cur T) T {
		if !mut.applies(cur) {
			return cur
		}
		applied = true
		return mut.Apply(cur)
	})
	if !found || !applied {
		m.log.Debug("mutation skipped", "key", key.String(), "id", id, "found", found)
		return false
	}
	if m.counter != nil && mut.Delta != 0 {
		m.counter.Adjust(mut.Delta)
	}

	m.sync(remote, func(err error) {
		m.log.Warn("remote mutation failed", "key", key.String(), "id", id, "error", err, "policy", m.policy.String())
		if m.policy != RevertOnFailure || mut.Revert == nil {
			return
		}
		m.cache.Update(key, id, mut.Revert)
		if m.counter != nil && mut.Delta != 0 {
			m.counter.Adjust(-mut.Delta)
		}
	})
	return true
}

// ApplyAllAndSync applies mut to every cached item it applies to, sets the
// counter to zero and starts remote in the background. Remote is always
// called since the server may hold items that were never cached. It returns
// the number of items changed.
func (m *Mutator[T]) ApplyAllAndSync(mut Mutation[T], remote Remote) int {
	type cached struct {
		key domain.QueryKey
		id  int64
	}
	changed := make(map[cached]struct{})
	ids := make(map[int64]struct{})
	m.cache.UpdateEach(func(key domain.QueryKey, cur T) T {
		if !mut.applies(cur) {
			return cur
		}
		changed[cached{key: key, id: cur.ItemID()}] = struct{}{}
		ids[cur.ItemID()] = struct{}{}
		return mut.Apply(cur)
	})

	previous := 0
	if m.counter != nil {
		previous = m.counter.Get()
		m.counter.Set(0)
	}

	m.sync(remote, func(err error) {
		m.log.Warn("remote bulk mutation failed", "changed", len(ids), "error", err, "policy", m.policy.String())
		if m.policy != RevertOnFailure || mut.Revert == nil {
			return
		}
		m.cache.UpdateEach(func(key domain.QueryKey, cur T) T {
			if _, ok := changed[cached{key: key, id: cur.ItemID()}]; ok {
				return mut.Revert(cur)
			}
			return cur
		})
		if m.counter != nil {
			m.counter.Set(previous)
		}
	})
	return len(ids)
}

// Wait blocks until every remote call started so far has finished.
func (m *Mutator[T]) Wait() {
	m.wg.Wait()
}

func (m *Mutator[T]) sync(remote Remote, onFailure func(error)) {
	if remote == nil {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		if err := remote(ctx); err != nil {
			onFailure(err)
		}
	}()
}
