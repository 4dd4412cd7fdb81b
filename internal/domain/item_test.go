package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationReadFlag(t *testing.T) {
	n := Notification{ID: 1}

	read := n.MarkRead()

	assert.True(t, read.IsRead)
	assert.False(t, n.IsRead, "MarkRead returns a copy")
	assert.False(t, read.MarkUnread().IsRead)
}

func TestCountUnread(t *testing.T) {
	notifs := []Notification{{ID: 1}, {ID: 2, IsRead: true}, {ID: 3}}

	assert.Equal(t, 2, CountUnread(notifs))
	assert.Equal(t, 0, CountUnread(nil))
}

func TestShiftOpenClose(t *testing.T) {
	s := Shift{ID: 4}
	require.True(t, s.IsOpen())

	closed := s.Close("18:00, 1 tháng 1, 2025")
	assert.False(t, closed.IsOpen())
	assert.True(t, s.IsOpen())
	assert.True(t, closed.Reopen().IsOpen())
}

func TestOpenShift(t *testing.T) {
	closedAt := "17:00, 1 tháng 1, 2025"
	shifts := []Shift{{ID: 1, ClosedDate: &closedAt}, {ID: 2}, {ID: 3}}

	open, ok := OpenShift(shifts)
	require.True(t, ok)
	assert.Equal(t, int64(2), open.ID)

	_, ok = OpenShift(shifts[:1])
	assert.False(t, ok)
}

func TestFindByID(t *testing.T) {
	orders := []Order{{ID: 5}, {ID: 6}}

	got, ok := FindByID(orders, 6)
	require.True(t, ok)
	assert.Equal(t, int64(6), got.ID)

	_, ok = FindByID(orders, 7)
	assert.False(t, ok)
}

func TestOrderLineSubtotal(t *testing.T) {
	assert.InDelta(t, 45000.0, OrderLine{Quantity: 3, UnitPrice: 15000}.Subtotal(), 0.001)
}

func TestQueryKeyIdentity(t *testing.T) {
	base := OrdersKey(1, 10)

	assert.Equal(t, base, OrdersKey(1, 10))
	assert.NotEqual(t, base, base.WithShift(11))
	assert.NotEqual(t, base, base.WithOrder(42))
	assert.Equal(t, `orders shop=1 shift=10 order=42`, base.WithOrder(42).String())
	assert.Equal(t, `orders shop=1 shift=10 filter="abc"`, base.WithFilter("abc").String())

	m := map[QueryKey]int{base: 1}
	m[base.WithShift(11)] = 2
	assert.Len(t, m, 2)
}

func TestErrorClassification(t *testing.T) {
	wrapped := func(err error) error { return fmt.Errorf("api: list orders: %w", err) }

	assert.True(t, IsAbsorbed(wrapped(ErrMalformedPayload)))
	assert.True(t, IsAbsorbed(wrapped(ErrSessionMissing)))
	assert.False(t, IsAbsorbed(wrapped(ErrNetwork)))

	assert.True(t, IsUserVisible(wrapped(ErrNetwork)))
	assert.False(t, IsUserVisible(wrapped(ErrMalformedPayload)))
	assert.False(t, IsUserVisible(wrapped(ErrIdentifierUnparseable)))
	assert.False(t, IsUserVisible(nil))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"123", 123, true},
		{"  42 ", 42, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"12a", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if !tt.wantOK {
				require.ErrorIs(t, err, ErrIdentifierUnparseable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
