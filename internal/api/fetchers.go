package api

import (
	"context"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/query"
)

type shiftLister interface {
	ListShifts(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Shift], error)
}

type orderLister interface {
	ListOrders(ctx context.Context, shiftID int64, page, pageSize int) (pagecache.Page[domain.Order], error)
	FindOrder(ctx context.Context, orderID int64, page, pageSize int) (pagecache.Page[domain.Order], error)
}

type orderLineLister interface {
	ListOrderLines(ctx context.Context, orderID int64, page, pageSize int) (pagecache.Page[domain.OrderLine], error)
}

type notificationLister interface {
	ListNotifications(ctx context.Context, userID int64, page, pageSize int) (pagecache.Page[domain.Notification], error)
}

type productLister interface {
	ListProducts(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Product], error)
	ListProductsWithUnits(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Product], error)
}

// ShiftsFetcher pages the shop's shifts.
func ShiftsFetcher(src shiftLister) query.Fetcher[domain.Shift] {
	return func(ctx context.Context, _ domain.QueryKey, page, pageSize int) (pagecache.Page[domain.Shift], error) {
		return src.ListShifts(ctx, page, pageSize)
	}
}

// OrdersFetcher pages a shift's orders, or looks up a single order when the
// key carries an order id.
func OrdersFetcher(src orderLister) query.Fetcher[domain.Order] {
	return func(ctx context.Context, key domain.QueryKey, page, pageSize int) (pagecache.Page[domain.Order], error) {
		if key.OrderID != 0 {
			return src.FindOrder(ctx, key.OrderID, page, pageSize)
		}
		return src.ListOrders(ctx, key.ShiftID, page, pageSize)
	}
}

func OrderLinesFetcher(src orderLineLister) query.Fetcher[domain.OrderLine] {
	return func(ctx context.Context, key domain.QueryKey, page, pageSize int) (pagecache.Page[domain.OrderLine], error) {
		return src.ListOrderLines(ctx, key.OrderID, page, pageSize)
	}
}

// NotificationsFetcher pages the feed of the key's user.
func NotificationsFetcher(src notificationLister) query.Fetcher[domain.Notification] {
	return func(ctx context.Context, key domain.QueryKey, page, pageSize int) (pagecache.Page[domain.Notification], error) {
		return src.ListNotifications(ctx, key.UserID, page, pageSize)
	}
}

// ProductsFetcher pages the catalog. With withUnits every product of a page
// also carries its units.
func ProductsFetcher(src productLister, withUnits bool) query.Fetcher[domain.Product] {
	return func(ctx context.Context, _ domain.QueryKey, page, pageSize int) (pagecache.Page[domain.Product], error) {
		if withUnits {
			return src.ListProductsWithUnits(ctx, page, pageSize)
		}
		return src.ListProducts(ctx, page, pageSize)
	}
}
