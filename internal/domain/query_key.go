package domain

import (
	"fmt"
	"strings"
)

// Resource names one remote collection.
type Resource string

const (
	ResourceShifts        Resource = "shifts"
	ResourceOrders        Resource = "orders"
	ResourceOrderLines    Resource = "order-lines"
	ResourceNotifications Resource = "notifications"
	ResourceProducts      Resource = "products"
	ResourceProductUnits  Resource = "product-units"
)

// QueryKey identifies one independent accumulation stream. Any change to a
// field is a different stream. QueryKey is comparable and used as a map key.
type QueryKey struct {
	Resource  Resource
	ShopID    int64
	UserID    int64
	ShiftID   int64
	OrderID   int64
	ProductID int64
	Filter    string
}

// String renders the non-zero components, for logs.
func (k QueryKey) String() string {
	parts := []string{string(k.Resource)}
	add := func(name string, v int64) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", name, v))
		}
	}
	add("shop", k.ShopID)
	add("user", k.UserID)
	add("shift", k.ShiftID)
	add("order", k.OrderID)
	add("product", k.ProductID)
	if k.Filter != "" {
		parts = append(parts, fmt.Sprintf("filter=%q", k.Filter))
	}
	return strings.Join(parts, " ")
}

// WithShift returns a copy scoped to shiftID.
func (k QueryKey) WithShift(shiftID int64) QueryKey {
	k.ShiftID = shiftID
	return k
}

// WithOrder returns a copy scoped to a single order id (exact-id search).
func (k QueryKey) WithOrder(orderID int64) QueryKey {
	k.OrderID = orderID
	return k
}

// WithFilter returns a copy carrying a free-text filter.
func (k QueryKey) WithFilter(filter string) QueryKey {
	k.Filter = filter
	return k
}

// NotificationsKey is the feed of userID in shopID.
func NotificationsKey(shopID, userID int64) QueryKey {
	return QueryKey{Resource: ResourceNotifications, ShopID: shopID, UserID: userID}
}

// OrdersKey lists the orders of a shift.
func OrdersKey(shopID, shiftID int64) QueryKey {
	return QueryKey{Resource: ResourceOrders, ShopID: shopID, ShiftID: shiftID}
}

// OrderLinesKey lists the lines of one order.
func OrderLinesKey(shopID, orderID int64) QueryKey {
	return QueryKey{Resource: ResourceOrderLines, ShopID: shopID, OrderID: orderID}
}

// ShiftsKey lists the shop's shifts.
func ShiftsKey(shopID int64) QueryKey {
	return QueryKey{Resource: ResourceShifts, ShopID: shopID}
}

// ProductsKey lists the shop's products.
func ProductsKey(shopID int64) QueryKey {
	return QueryKey{Resource: ResourceProducts, ShopID: shopID}
}
