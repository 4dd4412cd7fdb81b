package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

// Price formats an amount in dong with dot thousands separators.
func Price(v float64) string {
	n := int64(v + 0.5)
	if v < 0 {
		n = int64(v - 0.5)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "₫"
	if neg {
		return "-" + out
	}
	return out
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func shiftState(s domain.Shift) string {
	if s.IsOpen() {
		return "open"
	}
	return "closed " + *s.ClosedDate
}

func readState(n domain.Notification) string {
	if n.IsRead {
		return "read"
	}
	return "unread"
}

func unitNames(p domain.Product) string {
	names := make([]string, 0, len(p.Units))
	for _, u := range p.Units {
		names = append(names, u.Name)
	}
	return strings.Join(names, ", ")
}

var (
	orderColumns = []Column[domain.Order]{
		{Name: "ID", Width: 6, Align: AlignRight, Value: func(o domain.Order) string { return id(o.ID) }},
		{Name: "CREATED", Width: 24, Value: func(o domain.Order) string { return o.CreatedAt }},
		{Name: "STATUS", Width: 10, Value: func(o domain.Order) string { return o.Status }},
		{Name: "PAYMENT", Width: 10, Value: func(o domain.Order) string { return orDash(o.PaymentMethod) }},
		{Name: "TOTAL", Width: 12, Align: AlignRight, Value: func(o domain.Order) string { return Price(o.TotalPrice) }},
		{Name: "CUSTOMER", Width: 24, Value: func(o domain.Order) string { return orDash(o.CustomerName) }},
	}
	orderLineColumns = []Column[domain.OrderLine]{
		{Name: "PRODUCT", Width: 28, Value: func(l domain.OrderLine) string { return l.ProductName }},
		{Name: "UNIT", Width: 8, Value: func(l domain.OrderLine) string { return orDash(l.UnitName) }},
		{Name: "QTY", Width: 5, Align: AlignRight, Value: func(l domain.OrderLine) string { return strconv.Itoa(l.Quantity) }},
		{Name: "PRICE", Width: 12, Align: AlignRight, Value: func(l domain.OrderLine) string { return Price(l.UnitPrice) }},
		{Name: "SUBTOTAL", Width: 12, Align: AlignRight, Value: func(l domain.OrderLine) string { return Price(l.Subtotal()) }},
	}
	notificationColumns = []Column[domain.Notification]{
		{Name: "ID", Width: 6, Align: AlignRight, Value: func(n domain.Notification) string { return id(n.ID) }},
		{Name: "STATE", Width: 6, Value: readState},
		{Name: "CREATED", Width: 24, Value: func(n domain.Notification) string { return n.CreatedAt }},
		{Name: "TITLE", Width: 48, Value: func(n domain.Notification) string { return n.Title }},
	}
	shiftColumns = []Column[domain.Shift]{
		{Name: "ID", Width: 6, Align: AlignRight, Value: func(s domain.Shift) string { return id(s.ID) }},
		{Name: "CASHIER", Width: 16, Value: func(s domain.Shift) string { return orDash(s.UserName) }},
		{Name: "STARTED", Width: 24, Value: func(s domain.Shift) string { return s.StartDate }},
		{Name: "REVENUE", Width: 14, Align: AlignRight, Value: func(s domain.Shift) string { return Price(s.Revenue) }},
		{Name: "STATE", Width: 32, Value: shiftState},
	}
	productColumns = []Column[domain.Product]{
		{Name: "ID", Width: 6, Align: AlignRight, Value: func(p domain.Product) string { return id(p.ID) }},
		{Name: "CODE", Width: 10, Value: func(p domain.Product) string { return orDash(p.Code) }},
		{Name: "NAME", Width: 28, Value: func(p domain.Product) string { return p.Name }},
		{Name: "CATEGORY", Width: 14, Value: func(p domain.Product) string { return orDash(p.Category) }},
		{Name: "PRICE", Width: 12, Align: AlignRight, Value: func(p domain.Product) string { return Price(p.Price) }},
		{Name: "UNITS", Width: 24, Value: unitNames},
	}
)

// TableFormatter writes aligned columns under a header.
type TableFormatter struct{}

// NewTableFormatter creates a new TableFormatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) FormatOrders(orders []domain.Order, w io.Writer) error {
	return NewTable(orderColumns...).Write(w, orders)
}

func (f *TableFormatter) FormatOrderLines(lines []domain.OrderLine, w io.Writer) error {
	return NewTable(orderLineColumns...).Write(w, lines)
}

func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, w io.Writer) error {
	return NewTable(notificationColumns...).Write(w, notifications)
}

func (f *TableFormatter) FormatShifts(shifts []domain.Shift, w io.Writer) error {
	return NewTable(shiftColumns...).Write(w, shifts)
}

func (f *TableFormatter) FormatProducts(products []domain.Product, w io.Writer) error {
	return NewTable(productColumns...).Write(w, products)
}

// SimpleFormatter writes one line per item.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

func writeLines[T any](w io.Writer, items []T, line func(T) string) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(w, line(item)); err != nil {
			return err
		}
	}
	return nil
}

func (f *SimpleFormatter) FormatOrders(orders []domain.Order, w io.Writer) error {
	return writeLines(w, orders, func(o domain.Order) string {
		return fmt.Sprintf("#%d  %s  %s  %s", o.ID, o.CreatedAt, o.Status, Price(o.TotalPrice))
	})
}

func (f *SimpleFormatter) FormatOrderLines(lines []domain.OrderLine, w io.Writer) error {
	return writeLines(w, lines, func(l domain.OrderLine) string {
		return fmt.Sprintf("%d x %s  %s", l.Quantity, l.ProductName, Price(l.Subtotal()))
	})
}

func (f *SimpleFormatter) FormatNotifications(notifications []domain.Notification, w io.Writer) error {
	return writeLines(w, notifications, func(n domain.Notification) string {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		return fmt.Sprintf("%s %-4d  %s  - %s", mark, n.ID, n.CreatedAt, truncateString(n.Title, 50))
	})
}

func (f *SimpleFormatter) FormatShifts(shifts []domain.Shift, w io.Writer) error {
	return writeLines(w, shifts, func(s domain.Shift) string {
		return fmt.Sprintf("#%d  %s  %s", s.ID, s.StartDate, shiftState(s))
	})
}

func (f *SimpleFormatter) FormatProducts(products []domain.Product, w io.Writer) error {
	return writeLines(w, products, func(p domain.Product) string {
		return fmt.Sprintf("%d  %s  %s", p.ID, p.Name, Price(p.Price))
	})
}

// JSONFormatter writes indented JSON arrays.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type orderJSON struct {
	ID            int64   `json:"orderId"`
	ShiftID       int64   `json:"shiftId"`
	CustomerName  string  `json:"customerName,omitempty"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	Note          string  `json:"note,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

type orderLineJSON struct {
	ID          int64   `json:"orderDetailId"`
	OrderID     int64   `json:"orderId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	UnitName    string  `json:"unitName,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type notificationJSON struct {
	ID        int64  `json:"notificationId"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"createdAt"`
	IsRead    bool   `json:"isRead"`
}

type shiftJSON struct {
	ID          int64   `json:"shiftId"`
	UserID      int64   `json:"userId"`
	UserName    string  `json:"userName,omitempty"`
	StartDate   string  `json:"startDate"`
	ClosedDate  *string `json:"closedDate"`
	OpeningCash float64 `json:"openingCash"`
	Revenue     float64 `json:"revenue"`
}

type unitJSON struct {
	ID               int64   `json:"unitId"`
	Name             string  `json:"unitName"`
	ConversionFactor float64 `json:"conversionFactor"`
	Price            float64 `json:"price"`
}

type productJSON struct {
	ID       int64      `json:"productId"`
	Name     string     `json:"productName"`
	Code     string     `json:"barcode,omitempty"`
	Category string     `json:"categoryName,omitempty"`
	Price    float64    `json:"price"`
	Units    []unitJSON `json:"units,omitempty"`
}

func writeJSON[T, J any](w io.Writer, items []T, view func(T) J) error {
	out := make([]J, 0, len(items))
	for _, item := range items {
		out = append(out, view(item))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return nil
}

func (f *JSONFormatter) FormatOrders(orders []domain.Order, w io.Writer) error {
	return writeJSON(w, orders, func(o domain.Order) orderJSON { return orderJSON(o) })
}

func (f *JSONFormatter) FormatOrderLines(lines []domain.OrderLine, w io.Writer) error {
	return writeJSON(w, lines, func(l domain.OrderLine) orderLineJSON { return orderLineJSON(l) })
}

func (f *JSONFormatter) FormatNotifications(notifications []domain.Notification, w io.Writer) error {
	return writeJSON(w, notifications, func(n domain.Notification) notificationJSON { return notificationJSON(n) })
}

func (f *JSONFormatter) FormatShifts(shifts []domain.Shift, w io.Writer) error {
	return writeJSON(w, shifts, func(s domain.Shift) shiftJSON { return shiftJSON(s) })
}

func (f *JSONFormatter) FormatProducts(products []domain.Product, w io.Writer) error {
	return writeJSON(w, products, func(p domain.Product) productJSON {
		units := make([]unitJSON, 0, len(p.Units))
		for _, u := range p.Units {
			units = append(units, unitJSON{ID: u.ID, Name: u.Name, ConversionFactor: u.ConversionFactor, Price: u.Price})
		}
		return productJSON{ID: p.ID, Name: p.Name, Code: p.Code, Category: p.Category, Price: p.Price, Units: units}
	})
}
