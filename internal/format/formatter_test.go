package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

var (
	closedAt = "17:00, 1 tháng 1, 2025"

	orders = []domain.Order{
		{ID: 42, ShiftID: 5, Status: "paid", PaymentMethod: "cash", TotalPrice: 45000, CreatedAt: "10:00, 1 tháng 1, 2025", CustomerName: "An"},
		{ID: 7, ShiftID: 5, Status: "pending", TotalPrice: 1250000, CreatedAt: "09:00, 1 tháng 1, 2025"},
	}
	notifications = []domain.Notification{
		{ID: 1, Title: "Low stock", CreatedAt: "09:15, 3 tháng 11, 2024"},
		{ID: 2, Title: "Shift opened", CreatedAt: "08:00, 3 tháng 11, 2024", IsRead: true},
	}
	shifts = []domain.Shift{
		{ID: 5, UserName: "Bình", StartDate: "08:00, 1 tháng 1, 2025", Revenue: 300000},
		{ID: 4, StartDate: "08:00, 31 tháng 12, 2024", ClosedDate: &closedAt},
	}
	products = []domain.Product{
		{ID: 3, Name: "Trà đào", Code: "TD01", Category: "Đồ uống", Price: 25000, Units: []domain.ProductUnit{
			{ID: 1, ProductID: 3, Name: "ly", ConversionFactor: 1, Price: 25000},
			{ID: 2, ProductID: 3, Name: "thùng", ConversionFactor: 24, Price: 550000},
		}},
	}
	lines = []domain.OrderLine{
		{ID: 1, OrderID: 42, ProductName: "Trà đào", UnitName: "ly", Quantity: 2, UnitPrice: 22500},
	}
)

func TestParseFormatterType(t *testing.T) {
	tests := []struct {
		in      string
		want    FormatterType
		wantErr bool
	}{
		{in: "", want: FormatterTypeTable},
		{in: "table", want: FormatterTypeTable},
		{in: " JSON ", want: FormatterTypeJSON},
		{in: "simple", want: FormatterTypeSimple},
		{in: "legacy", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormatterType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatterFactory(t *testing.T) {
	assert.IsType(t, &SimpleFormatter{}, NewFormatter(FormatterTypeSimple))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatterTypeTable))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatterTypeJSON))
	assert.IsType(t, &TableFormatter{}, NewFormatter("unknown"))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "0₫", Price(0))
	assert.Equal(t, "999₫", Price(999))
	assert.Equal(t, "15.000₫", Price(15000))
	assert.Equal(t, "1.250.000₫", Price(1250000))
	assert.Equal(t, "-20.000₫", Price(-20000))
	assert.Equal(t, "10₫", Price(9.6))
}

func TestTableFormatter(t *testing.T) {
	f := NewTableFormatter()

	var buf bytes.Buffer
	require.NoError(t, f.FormatOrders(orders, &buf))
	out := buf.String()
	assert.Contains(t, out, "CUSTOMER")
	assert.Contains(t, out, "45.000₫")
	assert.Contains(t, out, "1.250.000₫")
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 4)

	buf.Reset()
	require.NoError(t, f.FormatShifts(shifts, &buf))
	assert.Contains(t, buf.String(), "open")
	assert.Contains(t, buf.String(), "closed "+closedAt)

	buf.Reset()
	require.NoError(t, f.FormatProducts(products, &buf))
	assert.Contains(t, buf.String(), "ly, thùng")

	buf.Reset()
	require.NoError(t, f.FormatNotifications(notifications, &buf))
	assert.Contains(t, buf.String(), "unread")

	buf.Reset()
	require.NoError(t, f.FormatOrderLines(lines, &buf))
	assert.Contains(t, buf.String(), "45.000₫")

	buf.Reset()
	require.NoError(t, f.FormatOrders(nil, &buf))
	assert.Empty(t, buf.String())
}

func TestSimpleFormatter(t *testing.T) {
	f := NewSimpleFormatter()
	var buf bytes.Buffer

	require.NoError(t, f.FormatNotifications(notifications, &buf))
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0], "* 1"))
	assert.True(t, strings.HasPrefix(got[1], "  2"))

	buf.Reset()
	require.NoError(t, f.FormatOrders(orders, &buf))
	assert.Contains(t, buf.String(), "#42  10:00, 1 tháng 1, 2025  paid  45.000₫")

	buf.Reset()
	require.NoError(t, f.FormatOrderLines(lines, &buf))
	assert.Equal(t, "2 x Trà đào  45.000₫\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSONFormatter()
	var buf bytes.Buffer

	require.NoError(t, f.FormatShifts(shifts, &buf))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(5), decoded[0]["shiftId"])
	assert.Nil(t, decoded[0]["closedDate"])
	assert.Equal(t, closedAt, decoded[1]["closedDate"])

	buf.Reset()
	require.NoError(t, f.FormatProducts(products, &buf))
	decoded = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	units, ok := decoded[0]["units"].([]any)
	require.True(t, ok)
	assert.Len(t, units, 2)

	buf.Reset()
	require.NoError(t, f.FormatNotifications(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "Thông...", truncateString("Thông báo mới", 8))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "any", truncateString("any", 0))
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ab  ", formatString("ab", 4, AlignLeft))
	assert.Equal(t, "  ab", formatString("ab", 4, AlignRight))
	assert.Equal(t, "đồ ", formatString("đồ", 3, AlignLeft))
	assert.Equal(t, "abcdef", formatString("abcdef", 4, AlignLeft))
}

func TestStatusSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatSummary(&buf, NewStatusData(false, "", 0, 0, nil)))
	assert.Equal(t, "Not signed in\n", buf.String())

	buf.Reset()
	open := shifts[0]
	d := NewStatusData(true, "Bình", 7, 3, &open)
	require.NoError(t, FormatSummary(&buf, d))
	assert.Contains(t, buf.String(), "Signed in as Bình (shop 7)")
	assert.Contains(t, buf.String(), "Unread notifications: 3")
	assert.Contains(t, buf.String(), "Open shift: #5 since 08:00, 1 tháng 1, 2025")

	buf.Reset()
	require.NoError(t, FormatJSON(&buf, NewStatusData(true, "Bình", 7, 0, nil)))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["signedIn"])
	assert.Nil(t, decoded["openShift"])
}
