// Package ports defines application boundary interfaces used by core services.
package ports

import (
	"context"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
)

// ShopAPI defines the remote operations used by core services.
type ShopAPI interface {
	ListShifts(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Shift], error)
	ListOrders(ctx context.Context, shiftID int64, page, pageSize int) (pagecache.Page[domain.Order], error)
	FindOrder(ctx context.Context, orderID int64, page, pageSize int) (pagecache.Page[domain.Order], error)
	ListOrderLines(ctx context.Context, orderID int64, page, pageSize int) (pagecache.Page[domain.OrderLine], error)
	ListNotifications(ctx context.Context, userID int64, page, pageSize int) (pagecache.Page[domain.Notification], error)
	ListProducts(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Product], error)
	ListProductsWithUnits(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Product], error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
	CloseShift(ctx context.Context, shiftID int64) error
}

// UnreadCounter is the read side of the unread badge.
type UnreadCounter interface {
	Get() int
	Subscribe(fn func(int)) (unsubscribe func())
}
