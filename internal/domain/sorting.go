package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/datetime"
)

// SortOrder specifies the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid.
func (s SortOrder) IsValid() bool {
	switch s {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort order.
func (s SortOrder) String() string {
	return string(s)
}

// ParseSortOrder parses a string into a SortOrder.
func ParseSortOrder(order string) (SortOrder, error) {
	o := SortOrder(order)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}

// SortByDisplayTime sorts items by the instant re-parsed from their display
// time, never by the display string itself. Unparseable times sort as the
// epoch sentinel. Returns a new slice; ties keep their input order.
func SortByDisplayTime[T any](items []T, displayTime func(T) string, order SortOrder) []T {
	if len(items) == 0 {
		return items
	}
	if !order.IsValid() {
		order = SortOrderDesc
	}

	keys := make([]time.Time, len(items))
	idx := make([]int, len(items))
	for i, it := range items {
		keys[i] = datetime.Parse(displayTime(it))
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if order == SortOrderAsc {
			return ka.Before(kb)
		}
		return ka.After(kb)
	})

	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	return sorted
}

// SortOrders sorts orders by creation time.
func SortOrders(orders []Order, order SortOrder) []Order {
	return SortByDisplayTime(orders, func(o Order) string { return o.CreatedAt }, order)
}

// SortNotifications sorts notifications by creation time.
func SortNotifications(notifs []Notification, order SortOrder) []Notification {
	return SortByDisplayTime(notifs, func(n Notification) string { return n.CreatedAt }, order)
}
