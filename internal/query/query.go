// Package query drives fetching for cached item streams: initial load,
// manual refetch, pagination and debounced search.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/counter"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/debounce"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	apperrors "github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 10

// Fetcher retrieves one page of key.
type Fetcher[T domain.Item] func(ctx context.Context, key domain.QueryKey, page, pageSize int) (pagecache.Page[T], error)

// Resolver maps search text to the key to load. It returns
// domain.ErrIdentifierUnparseable when text cannot be searched for.
type Resolver func(base domain.QueryKey, text string) (domain.QueryKey, error)

// Option configures a Coordinator.
type Option[T domain.Item] func(*Coordinator[T])

// WithReporter sets the handler receiving user-visible failure messages.
func WithReporter[T domain.Item](h apperrors.ErrorHandler) Option[T] {
	return func(c *Coordinator[T]) { c.reporter = h }
}

// WithLogger sets the logger.
func WithLogger[T domain.Item](l logging.Logger) Option[T] {
	return func(c *Coordinator[T]) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPageSize sets the requested page size.
func WithPageSize[T domain.Item](n int) Option[T] {
	return func(c *Coordinator[T]) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithCounter publishes derive(items) to cnt after every committed page of
// the base key.
func WithCounter[T domain.Item](cnt counter.Counter, derive func([]T) int) Option[T] {
	return func(c *Coordinator[T]) {
		c.counter = cnt
		c.derive = derive
	}
}

// WithSearch enables Search. A nil clock uses the real clock.
func WithSearch[T domain.Item](resolve Resolver, delay time.Duration, clk clock.WithDelayedExecution) Option[T] {
	return func(c *Coordinator[T]) {
		c.resolve = resolve
		c.searchDelay = delay
		c.clock = clk
	}
}

// Coordinator fetches pages into a cache. Responses are committed only while
// their request is the latest for the key.
type Coordinator[T domain.Item] struct {
	cache    *pagecache.Cache[T]
	fetch    Fetcher[T]
	reporter apperrors.ErrorHandler
	log      logging.Logger
	pageSize int
	counter  counter.Counter
	derive   func([]T) int

	resolve     Resolver
	searchDelay time.Duration
	clock       clock.WithDelayedExecution
	gate        *debounce.Gate

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	base   domain.QueryKey
	active domain.QueryKey
	// cleared is set while active is a search key holding no results.
	cleared bool
}

// New creates a coordinator over cache using fetch.
func New[T domain.Item](cache *pagecache.Cache[T], fetch Fetcher[T], opts ...Option[T]) *Coordinator[T] {
	c := &Coordinator[T]{
		cache:    cache,
		fetch:    fetch,
		log:      logging.NewNoop(),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	if c.resolve != nil {
		var gateOpts []debounce.Option
		if c.clock != nil {
			gateOpts = append(gateOpts, debounce.WithClock(c.clock))
		}
		c.gate = debounce.New(c.searchDelay, func(text string) {
			_ = c.SearchNow(c.ctx, text)
		}, gateOpts...)
	}
	return c
}

// Cache returns the underlying cache.
func (c *Coordinator[T]) Cache() *pagecache.Cache[T] {
	return c.cache
}

// Base returns the canonical key set by the last Load.
func (c *Coordinator[T]) Base() domain.QueryKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base
}

// Active returns the key currently displayed (base or a search key).
func (c *Coordinator[T]) Active() domain.QueryKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Snapshot returns the state of the active key.
func (c *Coordinator[T]) Snapshot() pagecache.Snapshot[T] {
	return c.cache.Snapshot(c.Active())
}

// Load makes key the canonical and displayed key and fetches its first page.
func (c *Coordinator[T]) Load(ctx context.Context, key domain.QueryKey) error {
	c.setActive(key, false)
	c.mu.Lock()
	c.base = key
	c.mu.Unlock()
	return c.run(ctx, key, pagecache.ModeReplace)
}

// SetBase switches the canonical key (for example a different shift) and
// reloads.
func (c *Coordinator[T]) SetBase(ctx context.Context, key domain.QueryKey) error {
	return c.Load(ctx, key)
}

// Refetch reloads the first page of key, replacing its list on success. A
// search key whose text was not searchable stays empty.
func (c *Coordinator[T]) Refetch(ctx context.Context, key domain.QueryKey) error {
	c.mu.RLock()
	cleared := c.cleared && key == c.active
	c.mu.RUnlock()
	if cleared {
		c.cache.Clear(key)
		return nil
	}
	return c.run(ctx, key, pagecache.ModeReplace)
}

// FetchNextPage requests the next page of key. It reports false without
// fetching unless key is Loaded with more pages.
func (c *Coordinator[T]) FetchNextPage(ctx context.Context, key domain.QueryKey) (bool, error) {
	ticket, ok := c.cache.Begin(key, pagecache.ModeAppend)
	if !ok {
		return false, nil
	}
	return true, c.complete(ctx, key, ticket)
}

// Search schedules a debounced search for text.
func (c *Coordinator[T]) Search(text string) {
	if c.gate == nil {
		c.log.Warn("search requested without resolver", "text", text)
		return
	}
	c.gate.Trigger(text)
}

// FlushSearch runs a pending debounced search immediately.
func (c *Coordinator[T]) FlushSearch() bool {
	if c.gate == nil {
		return false
	}
	return c.gate.Flush()
}

// SearchPending reports whether a debounced search is waiting to fire.
func (c *Coordinator[T]) SearchPending() bool {
	return c.gate != nil && c.gate.Pending()
}

// SearchNow runs a search for text without debouncing. Blank text returns
// to the canonical listing; text the resolver cannot parse shows an empty
// list.
func (c *Coordinator[T]) SearchNow(ctx context.Context, text string) error {
	c.mu.RLock()
	base := c.base
	c.mu.RUnlock()

	text = strings.TrimSpace(text)
	if text == "" {
		c.setActive(base, false)
		return c.run(ctx, base, pagecache.ModeReplace)
	}
	if c.resolve == nil {
		return fmt.Errorf("search %q: no resolver configured", text)
	}

	key, err := c.resolve(base, text)
	if err != nil {
		if errors.Is(err, domain.ErrIdentifierUnparseable) {
			cleared := base.WithFilter(text)
			c.setActive(cleared, true)
			c.cache.Clear(cleared)
			c.log.Debug("search text not searchable", "text", text)
			return nil
		}
		return fmt.Errorf("resolve search %q: %w", text, err)
	}
	c.setActive(key, false)
	return c.run(ctx, key, pagecache.ModeReplace)
}

// Close stops pending searches.
func (c *Coordinator[T]) Close() {
	if c.gate != nil {
		c.gate.Stop()
	}
	c.cancel()
}

// setActive switches the displayed key. The previous search key, if any, is
// dropped from the cache.
func (c *Coordinator[T]) setActive(key domain.QueryKey, cleared bool) {
	c.mu.Lock()
	prev, wasSearch := c.active, c.active != c.base && c.active != (domain.QueryKey{})
	c.active = key
	c.cleared = cleared
	c.mu.Unlock()
	if wasSearch && prev != key {
		c.cache.Discard(prev)
	}
}

func (c *Coordinator[T]) run(ctx context.Context, key domain.QueryKey, mode pagecache.Mode) error {
	ticket, ok := c.cache.Begin(key, mode)
	if !ok {
		return nil
	}
	return c.complete(ctx, key, ticket)
}

func (c *Coordinator[T]) complete(ctx context.Context, key domain.QueryKey, ticket pagecache.Ticket) error {
	log := c.log.With("key", key.String(), "page", ticket.Page)
	page, err := c.fetch(ctx, key, ticket.Page, c.pageSize)

	switch {
	case err == nil:
		if !c.cache.Commit(key, ticket, page) {
			log.Debug("dropped superseded response")
			return nil
		}
		log.Debug("page committed", "items", len(page.Items), "total_pages", page.TotalPages)
		c.publish(key)
		return nil

	case domain.IsAbsorbed(err):
		empty := pagecache.Page[T]{PageNumber: ticket.Page, TotalPages: ticket.Page}
		if !c.cache.Commit(key, ticket, empty) {
			log.Debug("dropped superseded response")
			return nil
		}
		log.Warn("response absorbed as empty", "error", err)
		c.publish(key)
		return nil

	default:
		if !c.cache.Fail(key, ticket, err) {
			log.Debug("dropped superseded failure", "error", err)
			return nil
		}
		if errors.Is(err, context.Canceled) {
			log.Debug("fetch canceled")
			return err
		}
		log.Error("fetch failed", "error", err)
		if c.reporter != nil {
			c.reporter.Error(fmt.Sprintf("Could not load %s: %v", key.Resource, err))
		}
		return err
	}
}

func (c *Coordinator[T]) publish(key domain.QueryKey) {
	if c.counter == nil || c.derive == nil || key != c.Base() {
		return
	}
	c.counter.Set(c.derive(c.cache.Items(key)))
}

// ExactOrderID resolves search text to a lookup of a single order id.
func ExactOrderID(base domain.QueryKey, text string) (domain.QueryKey, error) {
	id, err := domain.ParseID(text)
	if err != nil {
		return domain.QueryKey{}, err
	}
	return base.WithOrder(id), nil
}
