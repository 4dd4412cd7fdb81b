package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/counter"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
)

type fetchCall struct {
	key  domain.QueryKey
	page int
}

// fakeSource serves pages of five notifications; errors and blocking can be
// configured per key.
type fakeSource struct {
	mu         sync.Mutex
	totalPages int
	errs       map[domain.QueryKey]error
	unread     bool
	calls      []fetchCall
	block      chan struct{}
	entered    chan struct{}
}

func newFakeSource(totalPages int) *fakeSource {
	return &fakeSource{totalPages: totalPages, errs: map[domain.QueryKey]error{}}
}

func (s *fakeSource) fetch(ctx context.Context, key domain.QueryKey, page, pageSize int) (pagecache.Page[domain.Notification], error) {
	s.mu.Lock()
	s.calls = append(s.calls, fetchCall{key: key, page: page})
	err := s.errs[key]
	block, entered := s.block, s.entered
	s.block, s.entered = nil, nil
	s.mu.Unlock()

	if block != nil {
		close(entered)
		<-block
	}
	if err != nil {
		return pagecache.Page[domain.Notification]{}, err
	}
	items := make([]domain.Notification, 0, 5)
	base := int64(key.OrderID) * 100
	for i := 1; i <= 5; i++ {
		items = append(items, domain.Notification{ID: base + int64((page-1)*5+i), IsRead: !s.unread})
	}
	return pagecache.Page[domain.Notification]{Items: items, PageNumber: page, TotalPages: s.totalPages}, nil
}

func (s *fakeSource) callList() []fetchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]fetchCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// blockNext makes the next fetch wait until the returned release is called.
func (s *fakeSource) blockNext() (entered <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.block = make(chan struct{})
	s.entered = make(chan struct{})
	b := s.block
	return s.entered, func() { close(b) }
}

type recordingReporter struct {
	mu     sync.Mutex
	errors []string
}

func (r *recordingReporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}
func (r *recordingReporter) Warning(string) {}
func (r *recordingReporter) Info(string)    {}
func (r *recordingReporter) Success(string) {}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

var feedKey = domain.NotificationsKey(1, 7)

func newCoordinator(src *fakeSource, opts ...Option[domain.Notification]) *Coordinator[domain.Notification] {
	return New(pagecache.New[domain.Notification](), src.fetch, opts...)
}

func TestPaginationAccumulatesAllPages(t *testing.T) {
	src := newFakeSource(3)
	c := newCoordinator(src)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, feedKey))
	snap := c.Snapshot()
	assert.Len(t, snap.Items, 5)
	assert.True(t, snap.HasMore)

	for i := 0; i < 2; i++ {
		fetched, err := c.FetchNextPage(ctx, feedKey)
		require.NoError(t, err)
		assert.True(t, fetched)
	}

	snap = c.Snapshot()
	assert.Len(t, snap.Items, 15)
	assert.False(t, snap.HasMore)

	seen := map[int64]bool{}
	for _, id := range domain.IDs(snap.Items) {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}

	fetched, err := c.FetchNextPage(ctx, feedKey)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Len(t, src.callList(), 3)
}

func TestFetchNextPageBeforeLoadIsNoop(t *testing.T) {
	src := newFakeSource(3)
	c := newCoordinator(src)

	fetched, err := c.FetchNextPage(context.Background(), feedKey)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Empty(t, src.callList())
}

func TestConcurrentFetchNextPageRequestsOnce(t *testing.T) {
	src := newFakeSource(3)
	c := newCoordinator(src)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, feedKey))

	entered, release := src.blockNext()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.FetchNextPage(ctx, feedKey)
	}()
	<-entered

	fetched, err := c.FetchNextPage(ctx, feedKey)
	require.NoError(t, err)
	assert.False(t, fetched, "already loading more")

	release()
	<-done
	assert.Len(t, c.Snapshot().Items, 10)
}

func TestNetworkErrorKeepsItemsAndReportsOnce(t *testing.T) {
	src := newFakeSource(3)
	rep := &recordingReporter{}
	c := newCoordinator(src, WithReporter[domain.Notification](rep))
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, feedKey))
	src.errs[feedKey] = fmt.Errorf("GET notifications: %w", domain.ErrNetwork)

	err := c.Refetch(ctx, feedKey)
	require.ErrorIs(t, err, domain.ErrNetwork)

	snap := c.Snapshot()
	assert.Equal(t, pagecache.Errored, snap.State)
	assert.Len(t, snap.Items, 5)
	assert.Equal(t, 1, rep.count())

	delete(src.errs, feedKey)
	require.NoError(t, c.Refetch(ctx, feedKey))
	assert.Equal(t, pagecache.Loaded, c.Snapshot().State)
	assert.Equal(t, 1, rep.count())
}

func TestAbsorbedErrorsYieldEmptyList(t *testing.T) {
	for _, absorbed := range []error{domain.ErrMalformedPayload, domain.ErrSessionMissing} {
		t.Run(absorbed.Error(), func(t *testing.T) {
			src := newFakeSource(1)
			src.errs[feedKey] = fmt.Errorf("decode: %w", absorbed)
			rep := &recordingReporter{}
			c := newCoordinator(src, WithReporter[domain.Notification](rep))

			require.NoError(t, c.Load(context.Background(), feedKey))
			snap := c.Snapshot()
			assert.Equal(t, pagecache.Loaded, snap.State)
			assert.Empty(t, snap.Items)
			assert.False(t, snap.HasMore)
			assert.Zero(t, rep.count())
		})
	}
}

func TestStaleRefetchIsDiscarded(t *testing.T) {
	src := newFakeSource(1)
	c := newCoordinator(src)
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, feedKey))

	entered, release := src.blockNext()
	src.errs[feedKey] = errors.New("should be dropped")
	done := make(chan error, 1)
	go func() { done <- c.Refetch(ctx, feedKey) }()
	<-entered

	delete(src.errs, feedKey)
	require.NoError(t, c.Refetch(ctx, feedKey))

	release()
	require.NoError(t, <-done)
	snap := c.Snapshot()
	assert.Equal(t, pagecache.Loaded, snap.State)
	assert.NoError(t, snap.Err)
	assert.Len(t, snap.Items, 5)
}

func TestSearchResolvesExactID(t *testing.T) {
	src := newFakeSource(1)
	c := newCoordinator(src, WithSearch[domain.Notification](ExactOrderID, 0, nil))
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, feedKey))

	require.NoError(t, c.SearchNow(ctx, " 3 "))
	assert.Equal(t, feedKey.WithOrder(3), c.Active())
	assert.Equal(t, int64(301), c.Snapshot().Items[0].ID)
	assert.Equal(t, feedKey, c.Base())
}

func TestSearchUnparseableClearsList(t *testing.T) {
	src := newFakeSource(1)
	rep := &recordingReporter{}
	c := newCoordinator(src,
		WithSearch[domain.Notification](ExactOrderID, 0, nil),
		WithReporter[domain.Notification](rep))
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, feedKey))
	calls := len(src.callList())

	require.NoError(t, c.SearchNow(ctx, "abc"))
	snap := c.Snapshot()
	assert.Equal(t, pagecache.Loaded, snap.State)
	assert.Empty(t, snap.Items)
	assert.Len(t, src.callList(), calls, "no request for unparseable text")
	assert.Zero(t, rep.count())

	// the canonical listing is untouched
	assert.Len(t, c.Cache().Items(feedKey), 5)
}

func TestSearchBlankReturnsToBase(t *testing.T) {
	src := newFakeSource(1)
	c := newCoordinator(src, WithSearch[domain.Notification](ExactOrderID, 0, nil))
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, feedKey))
	require.NoError(t, c.SearchNow(ctx, "9"))

	require.NoError(t, c.SearchNow(ctx, "   "))
	assert.Equal(t, feedKey, c.Active())

	calls := src.callList()
	assert.Equal(t, fetchCall{key: feedKey, page: 1}, calls[len(calls)-1])
}

func TestRefetchKeepsUnsearchableTextEmpty(t *testing.T) {
	src := newFakeSource(1)
	c := newCoordinator(src, WithSearch[domain.Notification](ExactOrderID, 0, nil))
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, feedKey))
	require.NoError(t, c.SearchNow(ctx, "abc"))
	calls := len(src.callList())

	require.NoError(t, c.Refetch(ctx, c.Active()))
	assert.Equal(t, feedKey.WithFilter("abc"), c.Active())
	assert.Empty(t, c.Snapshot().Items)
	assert.Equal(t, pagecache.Loaded, c.Snapshot().State)
	assert.Len(t, src.callList(), calls)

	more, err := c.FetchNextPage(ctx, c.Active())
	require.NoError(t, err)
	assert.False(t, more)
	assert.Empty(t, c.Snapshot().Items)

	// a numeric search afterwards fetches normally
	require.NoError(t, c.SearchNow(ctx, "4"))
	require.NoError(t, c.Refetch(ctx, c.Active()))
	assert.Equal(t, int64(401), c.Snapshot().Items[0].ID)
}

func TestLeavingSearchDiscardsItsKey(t *testing.T) {
	src := newFakeSource(1)
	c := newCoordinator(src, WithSearch[domain.Notification](ExactOrderID, 0, nil))
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx, feedKey))

	require.NoError(t, c.SearchNow(ctx, "3"))
	require.NoError(t, c.SearchNow(ctx, "abc"))
	assert.ElementsMatch(t, []domain.QueryKey{feedKey, feedKey.WithFilter("abc")}, c.Cache().Keys())

	require.NoError(t, c.SearchNow(ctx, ""))
	assert.Equal(t, []domain.QueryKey{feedKey}, c.Cache().Keys())

	other := domain.NotificationsKey(1, 8)
	require.NoError(t, c.SearchNow(ctx, "7"))
	require.NoError(t, c.Load(ctx, other))
	assert.ElementsMatch(t, []domain.QueryKey{feedKey, other}, c.Cache().Keys(), "the previous base is kept")
}

func TestSearchWithoutResolver(t *testing.T) {
	src := newFakeSource(1)
	c := newCoordinator(src)
	defer c.Close()

	c.Search("12")
	assert.False(t, c.SearchPending())
	assert.False(t, c.FlushSearch())
	assert.Error(t, c.SearchNow(context.Background(), "12"))
}

func TestDebouncedSearchFetchesOnceWithLatestText(t *testing.T) {
	src := newFakeSource(1)
	fake := testingclock.NewFakeClock(time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC))
	c := newCoordinator(src, WithSearch[domain.Notification](ExactOrderID, 500*time.Millisecond, fake))
	defer c.Close()
	require.NoError(t, c.Load(context.Background(), feedKey))

	for _, text := range []string{"1", "12", "123"} {
		c.Search(text)
		fake.Step(100 * time.Millisecond)
	}
	fake.Step(500 * time.Millisecond)

	want := feedKey.WithOrder(123)
	require.Eventually(t, func() bool {
		return c.Active() == want && c.Cache().Snapshot(want).State == pagecache.Loaded
	}, time.Second, 5*time.Millisecond)

	searches := 0
	for _, call := range src.callList() {
		if call.key != feedKey {
			searches++
			assert.Equal(t, want, call.key)
		}
	}
	assert.Equal(t, 1, searches)
}

func TestFlushSearchRunsImmediately(t *testing.T) {
	src := newFakeSource(1)
	fake := testingclock.NewFakeClock(time.Now())
	c := newCoordinator(src, WithSearch[domain.Notification](ExactOrderID, time.Hour, fake))
	defer c.Close()
	require.NoError(t, c.Load(context.Background(), feedKey))

	c.Search("5")
	assert.True(t, c.SearchPending())
	assert.True(t, c.FlushSearch())
	assert.False(t, c.SearchPending())
	assert.Equal(t, feedKey.WithOrder(5), c.Active())
}

func TestCounterTracksBaseKey(t *testing.T) {
	src := newFakeSource(2)
	src.unread = true
	cnt := counter.New(0)
	c := newCoordinator(src,
		WithCounter(cnt, domain.CountUnread),
		WithSearch[domain.Notification](ExactOrderID, 0, nil))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Load(ctx, feedKey))
	assert.Equal(t, 5, cnt.Get())

	_, err := c.FetchNextPage(ctx, feedKey)
	require.NoError(t, err)
	assert.Equal(t, 10, cnt.Get())

	require.NoError(t, c.SearchNow(ctx, "4"))
	assert.Equal(t, 10, cnt.Get(), "search results do not drive the counter")
}

func TestSetBaseSwitchesStream(t *testing.T) {
	src := newFakeSource(1)
	c := newCoordinator(src)
	ctx := context.Background()

	shiftA := domain.OrdersKey(1, 10)
	shiftB := domain.OrdersKey(1, 11)
	require.NoError(t, c.Load(ctx, shiftA))
	require.NoError(t, c.SetBase(ctx, shiftB))

	assert.Equal(t, shiftB, c.Base())
	assert.Equal(t, shiftB, c.Active())
	assert.Equal(t, pagecache.Loaded, c.Cache().Snapshot(shiftA).State)
}

func TestPageSizeIsPassedToFetcher(t *testing.T) {
	var got int
	fetch := func(_ context.Context, _ domain.QueryKey, page, pageSize int) (pagecache.Page[domain.Notification], error) {
		got = pageSize
		return pagecache.Page[domain.Notification]{PageNumber: page, TotalPages: 1}, nil
	}
	c := New(pagecache.New[domain.Notification](), fetch, WithPageSize[domain.Notification](25))
	require.NoError(t, c.Load(context.Background(), feedKey))
	assert.Equal(t, 25, got)

	c = New(pagecache.New[domain.Notification](), fetch)
	require.NoError(t, c.Load(context.Background(), feedKey))
	assert.Equal(t, DefaultPageSize, got)
}

func TestExactOrderID(t *testing.T) {
	base := domain.OrdersKey(1, 10)
	key, err := ExactOrderID(base, "77")
	require.NoError(t, err)
	assert.Equal(t, int64(77), key.OrderID)
	assert.Equal(t, int64(10), key.ShiftID)

	_, err = ExactOrderID(base, "7x")
	assert.ErrorIs(t, err, domain.ErrIdentifierUnparseable)
}
