package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/counter"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/session"
)

func captureColors(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	colors.SetOutput(&out, &out)
	t.Cleanup(colors.ResetOutput)
	return &out
}

// fakeFeed pages through a fixed feed, pageSize items at a time.
type fakeFeed struct {
	all      []domain.Notification
	pageSize int
	loaded   int
	err      error
	marked   []int64
	markAll  int
	waits    int
}

func (f *fakeFeed) LoadNotifications(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = min(f.pageSize, len(f.all))
	return nil
}

func (f *fakeFeed) MoreNotifications(context.Context) (bool, error) {
	if f.loaded >= len(f.all) {
		return false, nil
	}
	f.loaded = min(f.loaded+f.pageSize, len(f.all))
	return true, nil
}

func (f *fakeFeed) NotificationItems() []domain.Notification {
	return f.all[:f.loaded]
}

func (f *fakeFeed) MarkRead(id int64) bool {
	f.marked = append(f.marked, id)
	return true
}

func (f *fakeFeed) MarkAllRead() int {
	f.markAll++
	return domain.CountUnread(f.all[:f.loaded])
}

func (f *fakeFeed) Wait() { f.waits++ }

func newFeed() *fakeFeed {
	return &fakeFeed{
		pageSize: 2,
		all: []domain.Notification{
			{ID: 1, Title: "Low stock", CreatedAt: "09:15, 3 tháng 11, 2024"},
			{ID: 2, Title: "Shift opened", CreatedAt: "08:00, 3 tháng 11, 2024", IsRead: true},
			{ID: 3, Title: "New order", CreatedAt: "07:00, 3 tháng 11, 2024"},
			{ID: 4, Title: "Price change", CreatedAt: "06:00, 3 tháng 11, 2024", IsRead: true},
			{ID: 5, Title: "Restock", CreatedAt: "05:00, 3 tháng 11, 2024"},
		},
	}
}

func TestConstructorsRejectNil(t *testing.T) {
	assert.Panics(t, func() { NewListNotificationsUseCase(nil) })
	assert.Panics(t, func() { NewMarkReadUseCase(nil) })
	assert.Panics(t, func() { NewListOrdersUseCase(nil) })
	assert.Panics(t, func() { NewOrderLinesUseCase(nil) })
	assert.Panics(t, func() { NewListShiftsUseCase(nil) })
	assert.Panics(t, func() { NewCloseShiftUseCase(nil) })
	assert.Panics(t, func() { NewListProductsUseCase(nil) })
	assert.Panics(t, func() { NewLoginUseCase(nil) })
	assert.Panics(t, func() { NewStatusUseCase(nil) })
}

func TestListNotifications(t *testing.T) {
	captureColors(t)
	feed := newFeed()
	var buf bytes.Buffer

	err := NewListNotificationsUseCase(feed).Execute(context.Background(), NotificationsOptions{Pages: 2, Format: format.FormatterTypeSimple}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, feed.loaded)
	assert.Contains(t, buf.String(), "Price change")
	assert.NotContains(t, buf.String(), "Restock")

	buf.Reset()
	err = NewListNotificationsUseCase(feed).Execute(context.Background(), NotificationsOptions{Pages: 10, UnreadOnly: true, Format: format.FormatterTypeSimple}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Restock")
	assert.NotContains(t, buf.String(), "Shift opened")
}

func TestListNotificationsEmptyAndError(t *testing.T) {
	out := captureColors(t)
	var buf bytes.Buffer

	require.NoError(t, NewListNotificationsUseCase(&fakeFeed{pageSize: 2}).Execute(context.Background(), NotificationsOptions{}, &buf))
	assert.Empty(t, buf.String())
	assert.Contains(t, out.String(), "No notifications")

	failing := &fakeFeed{pageSize: 2, err: fmt.Errorf("GET: %w", domain.ErrNetwork)}
	err := NewListNotificationsUseCase(failing).Execute(context.Background(), NotificationsOptions{}, &buf)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestMarkReadPagesUntilFound(t *testing.T) {
	out := captureColors(t)
	feed := newFeed()

	require.NoError(t, NewMarkReadUseCase(feed).Execute(context.Background(), 5))
	assert.Equal(t, []int64{5}, feed.marked)
	assert.Equal(t, 1, feed.waits)
	assert.Contains(t, out.String(), "Notification 5 marked as read")
}

func TestMarkReadAlreadyReadOrMissing(t *testing.T) {
	out := captureColors(t)
	feed := newFeed()
	u := NewMarkReadUseCase(feed)

	require.NoError(t, u.Execute(context.Background(), 2))
	assert.Empty(t, feed.marked)
	assert.Contains(t, out.String(), "already read")

	err := u.Execute(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, feed.marked)
}

func TestMarkAllRead(t *testing.T) {
	out := captureColors(t)
	feed := newFeed()

	require.NoError(t, NewMarkReadUseCase(feed).ExecuteAll(context.Background()))
	assert.Equal(t, 1, feed.markAll)
	assert.Equal(t, 1, feed.waits)
	assert.Contains(t, out.String(), "Marked 1 notifications as read")
}

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) Load(ctx context.Context, shiftID int64) error {
	return m.Called(ctx, shiftID).Error(0)
}

func (m *mockOrders) LoadOpenShift(ctx context.Context) (domain.Shift, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Shift), args.Bool(1), args.Error(2)
}

func (m *mockOrders) SearchNow(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func (m *mockOrders) NextPage(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrders) Items(status string) []domain.Order {
	return m.Called(status).Get(0).([]domain.Order)
}

func TestListOrdersOpenShiftWithSearch(t *testing.T) {
	captureColors(t)
	orders := &mockOrders{}
	orders.On("LoadOpenShift", mock.Anything).Return(domain.Shift{ID: 5}, true, nil)
	orders.On("SearchNow", mock.Anything, "42").Return(nil)
	orders.On("Items", "").Return([]domain.Order{{ID: 42, Status: "paid", TotalPrice: 45000}})

	var buf bytes.Buffer
	err := NewListOrdersUseCase(orders).Execute(context.Background(), OrdersOptions{Search: "42", Format: format.FormatterTypeSimple}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "#42")
	orders.AssertExpectations(t)
	orders.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestListOrdersGivenShiftAndPages(t *testing.T) {
	captureColors(t)
	orders := &mockOrders{}
	orders.On("Load", mock.Anything, int64(9)).Return(nil)
	orders.On("NextPage", mock.Anything).Return(true, nil).Once()
	orders.On("NextPage", mock.Anything).Return(false, nil).Once()
	orders.On("Items", "paid").Return([]domain.Order{})

	var buf bytes.Buffer
	err := NewListOrdersUseCase(orders).Execute(context.Background(), OrdersOptions{ShiftID: 9, Status: "paid", Pages: 5}, &buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
	orders.AssertNumberOfCalls(t, "NextPage", 2)
}

func TestListOrdersNoOpenShift(t *testing.T) {
	out := captureColors(t)
	orders := &mockOrders{}
	orders.On("LoadOpenShift", mock.Anything).Return(domain.Shift{}, false, nil)

	require.NoError(t, NewListOrdersUseCase(orders).Execute(context.Background(), OrdersOptions{}, &bytes.Buffer{}))
	assert.Contains(t, out.String(), "No open shift")
	orders.AssertNotCalled(t, "Items", mock.Anything)
}

type linesFunc func(ctx context.Context, orderID int64) ([]domain.OrderLine, error)

func (f linesFunc) OrderLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	return f(ctx, orderID)
}

func TestOrderLines(t *testing.T) {
	captureColors(t)
	client := linesFunc(func(_ context.Context, id int64) ([]domain.OrderLine, error) {
		return []domain.OrderLine{
			{ID: 1, OrderID: id, ProductName: "Trà đào", Quantity: 2, UnitPrice: 22500},
			{ID: 2, OrderID: id, ProductName: "Bánh mì", Quantity: 1, UnitPrice: 15000},
		}, nil
	})
	var buf bytes.Buffer

	require.NoError(t, NewOrderLinesUseCase(client).Execute(context.Background(), "42", format.FormatterTypeSimple, &buf))
	assert.Contains(t, buf.String(), "Total: 60.000₫")

	err := NewOrderLinesUseCase(client).Execute(context.Background(), "abc", format.FormatterTypeSimple, &buf)
	assert.ErrorIs(t, err, domain.ErrIdentifierUnparseable)
}

type fakeShifts struct {
	shifts []domain.Shift
	closed []int64
}

func (f *fakeShifts) LoadShifts(context.Context) ([]domain.Shift, error) { return f.shifts, nil }

func (f *fakeShifts) CloseShift(id int64) bool {
	f.closed = append(f.closed, id)
	return true
}

func (f *fakeShifts) Wait() {}

func shiftsFixture() *fakeShifts {
	closedAt := "17:00, 1 tháng 1, 2025"
	return &fakeShifts{shifts: []domain.Shift{
		{ID: 4, StartDate: "08:00, 1 tháng 1, 2025", ClosedDate: &closedAt},
		{ID: 5, StartDate: "08:00, 2 tháng 1, 2025"},
	}}
}

func TestListShiftsOpenOnly(t *testing.T) {
	captureColors(t)
	var buf bytes.Buffer
	require.NoError(t, NewListShiftsUseCase(shiftsFixture()).Execute(context.Background(), true, format.FormatterTypeSimple, &buf))
	assert.Contains(t, buf.String(), "#5")
	assert.NotContains(t, buf.String(), "#4")
}

func TestCloseShift(t *testing.T) {
	out := captureColors(t)

	f := shiftsFixture()
	require.NoError(t, NewCloseShiftUseCase(f).Execute(context.Background(), 0))
	assert.Equal(t, []int64{5}, f.closed)
	assert.Contains(t, out.String(), "Shift 5 closed")

	f = shiftsFixture()
	require.NoError(t, NewCloseShiftUseCase(f).Execute(context.Background(), 4))
	assert.Empty(t, f.closed)

	assert.ErrorIs(t, NewCloseShiftUseCase(f).Execute(context.Background(), 77), domain.ErrNotFound)

	f.shifts = f.shifts[:1]
	assert.ErrorIs(t, NewCloseShiftUseCase(f).Execute(context.Background(), 0), domain.ErrNotFound)
}

type fakeCatalog struct {
	products []domain.Product
	err      error
}

func (f *fakeCatalog) Load(context.Context) error { return f.err }

func (f *fakeCatalog) Filter(text string) []domain.Product {
	return domain.FilterProducts(f.products, text)
}

func TestListProducts(t *testing.T) {
	out := captureColors(t)
	catalog := &fakeCatalog{products: []domain.Product{
		{ID: 1, Name: "Trà đào", Category: "Đồ uống", Price: 25000},
		{ID: 2, Name: "Bánh mì", Category: "Đồ ăn", Price: 15000},
	}}
	var buf bytes.Buffer

	require.NoError(t, NewListProductsUseCase(catalog).Execute(context.Background(), "uống", format.FormatterTypeSimple, &buf))
	assert.Contains(t, buf.String(), "Trà đào")
	assert.NotContains(t, buf.String(), "Bánh mì")

	buf.Reset()
	require.NoError(t, NewListProductsUseCase(catalog).Execute(context.Background(), "phở", format.FormatterTypeSimple, &buf))
	assert.Empty(t, buf.String())
	assert.Contains(t, out.String(), "No products")

	catalog.err = errors.New("boom")
	assert.Error(t, NewListProductsUseCase(catalog).Execute(context.Background(), "", format.FormatterTypeSimple, &buf))
}

func TestLoginAndLogout(t *testing.T) {
	out := captureColors(t)
	store := session.NewMemoryStore()
	u := NewLoginUseCase(store)

	require.NoError(t, u.Execute(context.Background(), session.Session{Token: "tok", ShopID: 7, UserID: 3, UserName: "Bình"}))
	assert.Contains(t, out.String(), "Signed in as Bình (shop 7)")
	s, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)

	assert.Error(t, u.Execute(context.Background(), session.Session{Token: "tok"}))

	require.NoError(t, u.ExecuteLogout(context.Background()))
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionMissing)
}

type fakeStatus struct {
	sess    session.Session
	err     error
	unread  *counter.Broadcast
	shift   domain.Shift
	hasOpen bool
}

func (f *fakeStatus) Start(context.Context) (session.Session, error) { return f.sess, f.err }

func (f *fakeStatus) LoadNotifications(context.Context) error {
	f.unread.Set(4)
	return nil
}

func (f *fakeStatus) Counter() counter.Counter { return f.unread }

func (f *fakeStatus) OpenShift(context.Context) (domain.Shift, bool, error) {
	return f.shift, f.hasOpen, nil
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	signedOut := &fakeStatus{err: domain.ErrSessionMissing, unread: counter.New(0)}
	require.NoError(t, NewStatusUseCase(signedOut).Execute(context.Background(), false, &buf))
	assert.Equal(t, "Not signed in\n", buf.String())

	buf.Reset()
	signedIn := &fakeStatus{
		sess:    session.Session{Token: "tok", ShopID: 7, UserName: "Bình"},
		unread:  counter.New(0),
		shift:   domain.Shift{ID: 5, StartDate: "08:00, 2 tháng 1, 2025"},
		hasOpen: true,
	}
	require.NoError(t, NewStatusUseCase(signedIn).Execute(context.Background(), true, &buf))
	assert.Contains(t, buf.String(), `"unread": 4`)
	assert.Contains(t, buf.String(), `"openShift": "#5 since 08:00, 2 tháng 1, 2025"`)

	broken := &fakeStatus{err: errors.New("disk"), unread: counter.New(0)}
	assert.Error(t, NewStatusUseCase(broken).Execute(context.Background(), false, &buf))
}
