package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "hello", width: 10, want: "hello"},
		{in: "hello", width: 5, want: "hello"},
		{in: "hello world", width: 6, want: "hello…"},
		{in: "Thông báo", width: 5, want: "Thôn…"},
		{in: "abc", width: 1, want: "…"},
		{in: "abc", width: 0, want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.width), "%q/%d", tt.in, tt.width)
	}
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "3", Badge(3))
	assert.Equal(t, "99+", Badge(120))
}

func TestHeader(t *testing.T) {
	shift := domain.Shift{ID: 5, StartDate: "08:00, 1 tháng 1, 2025"}
	out := Header(HeaderState{Tabs: []string{"Orders", "Notifications"}, Active: 0, Unread: 4, Shift: &shift})

	assert.Contains(t, out, "Orders")
	assert.Contains(t, out, "Notifications")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "shift #5")

	out = Header(HeaderState{Tabs: []string{"Orders", "Notifications"}})
	assert.NotContains(t, out, "shift")
}

func TestNotificationRow(t *testing.T) {
	n := domain.Notification{ID: 1, Title: "Low stock", Content: "Milk", CreatedAt: "09:15, 3 tháng 11, 2024"}
	row := NotificationRow(n, 80, false)
	assert.Contains(t, row, unreadMark)
	assert.Contains(t, row, "Low stock: Milk")

	row = NotificationRow(n.MarkRead(), 80, false)
	assert.NotContains(t, row, unreadMark)
}

func TestOrderRow(t *testing.T) {
	o := domain.Order{ID: 42, CreatedAt: "10:00, 1 tháng 1, 2025", Status: "paid", TotalPrice: 45000, CustomerName: "An"}
	row := OrderRow(o, 100, true)
	assert.Contains(t, row, "#42")
	assert.Contains(t, row, "45.000₫")
	assert.Contains(t, row, "An")
}

func TestFooter(t *testing.T) {
	assert.Contains(t, Footer(FooterState{SearchMode: true, HasMore: true}), "esc")
	assert.NotContains(t, Footer(FooterState{SearchMode: true, HasMore: true}), "n: more")
	assert.Contains(t, Footer(FooterState{Notifications: true}), "mark all read")
	assert.Contains(t, Footer(FooterState{HasMore: true}), "n: more")
	assert.Contains(t, Footer(FooterState{}), "s: oldest first")
	assert.Contains(t, Footer(FooterState{OldestFirst: true}), "s: newest first")
}

func TestStatus(t *testing.T) {
	assert.Contains(t, Status(errors.Message{Text: "boom", Type: errors.MessageTypeError}), "boom")
}
