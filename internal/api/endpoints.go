package api

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
)

const (
	pathShifts        = "shifts"
	pathOrders        = "orders"
	pathOrderLines    = "order-details"
	pathNotifications = "notifications"
	pathProducts      = "products"
	pathProductUnits  = "product-units"
)

// ListShifts returns one page of the shop's shifts.
func (c *Client) ListShifts(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Shift], error) {
	return listPage(ctx, c, pathShifts, pageQuery(page, pageSize), page, c.decodeShift)
}

// ListOrders returns one page of the orders recorded during shiftID.
func (c *Client) ListOrders(ctx context.Context, shiftID int64, page, pageSize int) (pagecache.Page[domain.Order], error) {
	q := pageQuery(page, pageSize)
	q.Set("ShiftId", id(shiftID))
	return listPage(ctx, c, pathOrders, q, page, c.decodeOrder)
}

// FindOrder looks up an order by exact id. No match is an empty page.
func (c *Client) FindOrder(ctx context.Context, orderID int64, page, pageSize int) (pagecache.Page[domain.Order], error) {
	q := pageQuery(page, pageSize)
	q.Set("OrderId", id(orderID))
	return listPage(ctx, c, pathOrders, q, page, c.decodeOrder)
}

func (c *Client) ListOrderLines(ctx context.Context, orderID int64, page, pageSize int) (pagecache.Page[domain.OrderLine], error) {
	q := pageQuery(page, pageSize)
	q.Set("OrderId", id(orderID))
	return listPage(ctx, c, pathOrderLines, q, page, c.decodeOrderLine)
}

// ListNotifications returns one page of userID's feed.
func (c *Client) ListNotifications(ctx context.Context, userID int64, page, pageSize int) (pagecache.Page[domain.Notification], error) {
	q := pageQuery(page, pageSize)
	q.Set("UserId", id(userID))
	return listPage(ctx, c, pathNotifications, q, page, c.decodeNotification)
}

// MarkNotificationRead flags one notification as read on the server.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	_, err := c.do(ctx, http.MethodPut, pathNotifications+"/"+id(notificationID)+"/read", nil)
	return err
}

// MarkAllNotificationsRead flags every notification of userID as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, http.MethodPut, pathNotifications+"/read-all/"+id(userID), nil)
	return err
}

// CloseShift closes shiftID on the server.
func (c *Client) CloseShift(ctx context.Context, shiftID int64) error {
	_, err := c.do(ctx, http.MethodPut, pathShifts+"/"+id(shiftID)+"/close", nil)
	return err
}

func (c *Client) ListProducts(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Product], error) {
	return listPage(ctx, c, pathProducts, pageQuery(page, pageSize), page, c.decodeProduct)
}

func (c *Client) ListProductUnits(ctx context.Context, productID int64, page, pageSize int) (pagecache.Page[domain.ProductUnit], error) {
	q := pageQuery(page, pageSize)
	q.Set("ProductId", id(productID))
	return listPage(ctx, c, pathProductUnits, q, page, c.decodeProductUnit)
}

// ListProductsWithUnits lists one page of products and fills in the units of
// each with one request per product, at most fanout at a time. A product whose
// units payload is unusable keeps no units; a network failure fails the page.
func (c *Client) ListProductsWithUnits(ctx context.Context, page, pageSize int) (pagecache.Page[domain.Product], error) {
	products, err := c.ListProducts(ctx, page, pageSize)
	if err != nil {
		return products, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanout)
	for i := range products.Items {
		g.Go(func() error {
			p := &products.Items[i]
			units, err := c.ListProductUnits(gctx, p.ID, 1, unitsPageSize)
			if err != nil {
				if domain.IsAbsorbed(err) {
					c.logger.Debug("units skipped", "product", p.ID, "error", err)
					return nil
				}
				return err
			}
			for j := range units.Items {
				if units.Items[j].ProductID == 0 {
					units.Items[j].ProductID = p.ID
				}
			}
			p.Units = units.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pagecache.Page[domain.Product]{}, err
	}
	return products, nil
}
