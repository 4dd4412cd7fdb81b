// Package core wires the API client, the session, the page caches and their
// coordinators, the optimistic mutators and the unread counter into the
// operations the CLI and the TUI share.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/api"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/counter"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/datetime"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	apperrors "github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/optimistic"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/ports"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/query"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/session"
)

type settings struct {
	reporter    apperrors.ErrorHandler
	logger      logging.Logger
	pageSize    int
	searchDelay time.Duration
	rollback    optimistic.Policy
	codec       datetime.Codec
	clock       clock.WithDelayedExecution
	withUnits   bool
	now         func() time.Time
}

// Option configures a Core.
type Option func(*settings)

// WithReporter sets where user-visible load failures go.
func WithReporter(h apperrors.ErrorHandler) Option {
	return func(s *settings) { s.reporter = h }
}

func WithLogger(l logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithSearchDelay sets the debounce delay of order search.
func WithSearchDelay(d time.Duration) Option {
	return func(s *settings) { s.searchDelay = d }
}

// WithRollback sets what happens to optimistic changes whose remote call fails.
func WithRollback(p optimistic.Policy) Option {
	return func(s *settings) { s.rollback = p }
}

func WithCodec(c datetime.Codec) Option {
	return func(s *settings) { s.codec = c }
}

// WithClock sets the clock driving search debouncing.
func WithClock(c clock.WithDelayedExecution) Option {
	return func(s *settings) { s.clock = c }
}

// WithProductUnits makes product listings carry their units.
func WithProductUnits(enabled bool) Option {
	return func(s *settings) { s.withUnits = enabled }
}

// Core holds one unread counter and one cache per resource.
type Core struct {
	api      ports.ShopAPI
	sessions session.Store
	log      logging.Logger
	codec    datetime.Codec
	now      func() time.Time

	counter *counter.Broadcast

	notifications *query.Coordinator[domain.Notification]
	readMutator   *optimistic.Mutator[domain.Notification]
	shifts        *query.Coordinator[domain.Shift]
	shiftMutator  *optimistic.Mutator[domain.Shift]
	orderLines    *query.Coordinator[domain.OrderLine]
	orders        *OrdersView
	products      *ProductsView

	mu    sync.RWMutex
	scope session.Session
}

// New creates a Core. Nothing is fetched until a load operation runs.
func New(shop ports.ShopAPI, sessions session.Store, opts ...Option) (*Core, error) {
	if shop == nil {
		return nil, errors.New("core: api dependency cannot be nil")
	}
	if sessions == nil {
		return nil, errors.New("core: session store dependency cannot be nil")
	}
	s := settings{
		logger:   logging.NewNoop(),
		pageSize: query.DefaultPageSize,
		codec:    datetime.New(nil),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}

	c := &Core{
		api:      shop,
		sessions: sessions,
		log:      s.logger,
		codec:    s.codec,
		now:      s.now,
		counter:  counter.New(0),
	}

	c.notifications = query.New(pagecache.New[domain.Notification](), api.NotificationsFetcher(shop),
		query.WithReporter[domain.Notification](s.reporter),
		query.WithLogger[domain.Notification](s.logger.With("component", "notifications")),
		query.WithPageSize[domain.Notification](s.pageSize),
		query.WithCounter[domain.Notification](c.counter, domain.CountUnread))
	c.readMutator = optimistic.New(c.notifications.Cache(), counter.Counter(c.counter),
		optimistic.WithRollback[domain.Notification](s.rollback),
		optimistic.WithLogger[domain.Notification](s.logger.With("component", "mark-read")))

	c.shifts = query.New(pagecache.New[domain.Shift](), api.ShiftsFetcher(shop),
		query.WithReporter[domain.Shift](s.reporter),
		query.WithLogger[domain.Shift](s.logger.With("component", "shifts")),
		query.WithPageSize[domain.Shift](s.pageSize))
	c.shiftMutator = optimistic.New[domain.Shift](c.shifts.Cache(), nil,
		optimistic.WithRollback[domain.Shift](s.rollback),
		optimistic.WithLogger[domain.Shift](s.logger.With("component", "close-shift")))

	c.orderLines = query.New(pagecache.New[domain.OrderLine](), api.OrderLinesFetcher(shop),
		query.WithReporter[domain.OrderLine](s.reporter),
		query.WithLogger[domain.OrderLine](s.logger.With("component", "order-lines")),
		query.WithPageSize[domain.OrderLine](s.pageSize))

	c.orders = &OrdersView{
		core: c,
		coord: query.New(pagecache.New[domain.Order](), api.OrdersFetcher(shop),
			query.WithReporter[domain.Order](s.reporter),
			query.WithLogger[domain.Order](s.logger.With("component", "orders")),
			query.WithPageSize[domain.Order](s.pageSize),
			query.WithSearch[domain.Order](query.ExactOrderID, s.searchDelay, s.clock)),
		sort: domain.SortOrderDesc,
	}
	c.products = &ProductsView{
		core: c,
		coord: query.New(pagecache.New[domain.Product](), api.ProductsFetcher(shop, s.withUnits),
			query.WithReporter[domain.Product](s.reporter),
			query.WithLogger[domain.Product](s.logger.With("component", "products")),
			query.WithPageSize[domain.Product](s.pageSize)),
	}
	return c, nil
}

// Start loads the saved session. Without one every listing is empty.
func (c *Core) Start(ctx context.Context) (session.Session, error) {
	sess, err := c.sessions.Load(ctx)
	if err != nil {
		c.log.Debug("no session", "error", err)
		return session.Session{}, err
	}
	c.mu.Lock()
	c.scope = sess
	c.mu.Unlock()
	return sess, nil
}

// Scope returns the session loaded by Start.
func (c *Core) Scope() session.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scope
}

func (c *Core) shopID() int64 {
	return c.Scope().ShopID
}

// Counter returns the unread counter.
func (c *Core) Counter() counter.Counter {
	return c.counter
}

// Notifications returns the feed coordinator.
func (c *Core) Notifications() *query.Coordinator[domain.Notification] {
	return c.notifications
}

// NotificationsKey is the feed of the signed-in user.
func (c *Core) NotificationsKey() domain.QueryKey {
	s := c.Scope()
	return domain.NotificationsKey(s.ShopID, s.UserID)
}

// LoadNotifications loads the first page of the feed. The counter follows
// the unread items of the loaded pages.
func (c *Core) LoadNotifications(ctx context.Context) error {
	return c.notifications.Load(ctx, c.NotificationsKey())
}

// MoreNotifications appends the next page of the feed, if any.
func (c *Core) MoreNotifications(ctx context.Context) (bool, error) {
	return c.notifications.FetchNextPage(ctx, c.NotificationsKey())
}

// NotificationItems returns the loaded pages of the feed.
func (c *Core) NotificationItems() []domain.Notification {
	return c.notifications.Cache().Items(c.NotificationsKey())
}

var markRead = optimistic.Mutation[domain.Notification]{
	Applies: func(n domain.Notification) bool { return !n.IsRead },
	Apply:   domain.Notification.MarkRead,
	Revert:  domain.Notification.MarkUnread,
	Delta:   -1,
}

// MarkRead marks one cached notification read at once and tells the server
// in the background. It reports false when the notification is not cached
// or already read.
func (c *Core) MarkRead(id int64) bool {
	return c.readMutator.ApplyAndSync(c.NotificationsKey(), id, markRead, func(ctx context.Context) error {
		return c.api.MarkNotificationRead(ctx, id)
	})
}

// MarkAllRead marks every cached notification read, zeroes the counter and
// tells the server in the background. It returns how many items changed.
func (c *Core) MarkAllRead() int {
	userID := c.Scope().UserID
	return c.readMutator.ApplyAllAndSync(markRead, func(ctx context.Context) error {
		return c.api.MarkAllNotificationsRead(ctx, userID)
	})
}

// Shifts returns the shifts coordinator.
func (c *Core) Shifts() *query.Coordinator[domain.Shift] {
	return c.shifts
}

// LoadShifts loads every page of the shop's shifts.
func (c *Core) LoadShifts(ctx context.Context) ([]domain.Shift, error) {
	key := domain.ShiftsKey(c.shopID())
	if err := loadAll(ctx, c.shifts, key); err != nil {
		return nil, err
	}
	return c.shifts.Cache().Items(key), nil
}

// OpenShift returns the shop's open shift.
func (c *Core) OpenShift(ctx context.Context) (domain.Shift, bool, error) {
	shifts, err := c.LoadShifts(ctx)
	if err != nil {
		return domain.Shift{}, false, err
	}
	open, ok := domain.OpenShift(shifts)
	return open, ok, nil
}

// CloseShift closes a cached open shift at once and tells the server in the
// background.
func (c *Core) CloseShift(id int64) bool {
	closedAt := c.codec.Display(c.now())
	return c.shiftMutator.ApplyAndSync(domain.ShiftsKey(c.shopID()), id, optimistic.Mutation[domain.Shift]{
		Applies: domain.Shift.IsOpen,
		Apply:   func(s domain.Shift) domain.Shift { return s.Close(closedAt) },
		Revert:  domain.Shift.Reopen,
	}, func(ctx context.Context) error {
		return c.api.CloseShift(ctx, id)
	})
}

// OrderLines loads every line of orderID.
func (c *Core) OrderLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("order lines: %d: %w", orderID, domain.ErrIdentifierUnparseable)
	}
	key := domain.OrderLinesKey(c.shopID(), orderID)
	if err := loadAll(ctx, c.orderLines, key); err != nil {
		return nil, err
	}
	return c.orderLines.Cache().Items(key), nil
}

// Orders returns the orders view.
func (c *Core) Orders() *OrdersView {
	return c.orders
}

// Products returns the products view.
func (c *Core) Products() *ProductsView {
	return c.products
}

// Wait blocks until every background remote call has finished.
func (c *Core) Wait() {
	c.readMutator.Wait()
	c.shiftMutator.Wait()
}

// Close stops pending searches, waits for background calls and releases
// counter observers.
func (c *Core) Close() {
	c.orders.coord.Close()
	c.products.coord.Close()
	c.notifications.Close()
	c.shifts.Close()
	c.orderLines.Close()
	c.Wait()
	c.counter.Close()
}

// maxPages caps loadAll against a server that never reports a last page.
const maxPages = 500

// loadAll loads key and follows its pages until the server reports none left.
func loadAll[T domain.Item](ctx context.Context, coord *query.Coordinator[T], key domain.QueryKey) error {
	if err := coord.Load(ctx, key); err != nil {
		return err
	}
	for page := 1; page < maxPages; page++ {
		more, err := coord.FetchNextPage(ctx, key)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}
