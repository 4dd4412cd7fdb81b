package api

import (
	"github.com/tidwall/gjson"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/normalize"
)

// Field names differ between endpoints; each decoder lists the spellings seen
// in responses. A record without an id is dropped, any other missing field is
// left at its zero value.

func (c *Client) decodeShift(r gjson.Result) (domain.Shift, bool) {
	shiftID, ok := normalize.ID(r, "shiftId", "id")
	if !ok {
		return domain.Shift{}, false
	}
	s := domain.Shift{
		ID:          shiftID,
		UserName:    normalize.String(r, "userName", "fullName", "user.fullName"),
		StartDate:   c.codec.FromISO(normalize.String(r, "startDate")),
		OpeningCash: normalize.Float(r, "openingCash"),
		Revenue:     normalize.Float(r, "revenue"),
	}
	s.UserID, _ = normalize.ID(r, "userId", "user.userId")
	if closed := normalize.OptionalString(r, "closedDate"); closed != nil {
		display := c.codec.FromISO(*closed)
		s.ClosedDate = &display
	}
	return s, true
}

func (c *Client) decodeOrder(r gjson.Result) (domain.Order, bool) {
	orderID, ok := normalize.ID(r, "orderId", "id")
	if !ok {
		return domain.Order{}, false
	}
	o := domain.Order{
		ID:            orderID,
		CustomerName:  normalize.String(r, "customerName", "customer.fullName"),
		Status:        normalize.String(r, "status"),
		PaymentMethod: normalize.String(r, "paymentMethod"),
		TotalPrice:    normalize.Float(r, "totalPrice", "finalPrice"),
		Note:          normalize.String(r, "note"),
		CreatedAt:     c.codec.FromISO(normalize.String(r, "createdAt", "datetime")),
	}
	o.ShiftID, _ = normalize.ID(r, "shiftId")
	return o, true
}

func (c *Client) decodeOrderLine(r gjson.Result) (domain.OrderLine, bool) {
	lineID, ok := normalize.ID(r, "orderDetailId", "id")
	if !ok {
		return domain.OrderLine{}, false
	}
	l := domain.OrderLine{
		ID:          lineID,
		ProductName: normalize.String(r, "productName", "product.productName"),
		UnitName:    normalize.String(r, "unitName", "unit.name"),
		UnitPrice:   normalize.Float(r, "price", "unitPrice"),
	}
	l.OrderID, _ = normalize.ID(r, "orderId")
	l.ProductID, _ = normalize.ID(r, "productId")
	l.Quantity, _ = normalize.Int(r, "quantity")
	return l, true
}

func (c *Client) decodeNotification(r gjson.Result) (domain.Notification, bool) {
	notifID, ok := normalize.ID(r, "notificationId", "id")
	if !ok {
		return domain.Notification{}, false
	}
	return domain.Notification{
		ID:        notifID,
		Title:     normalize.String(r, "title"),
		Content:   normalize.String(r, "content", "message"),
		Type:      normalize.String(r, "type"),
		CreatedAt: c.codec.FromISO(normalize.String(r, "createdAt")),
		IsRead:    normalize.Bool(r, "isRead", "read"),
	}, true
}

func (c *Client) decodeProduct(r gjson.Result) (domain.Product, bool) {
	productID, ok := normalize.ID(r, "productId", "id")
	if !ok {
		return domain.Product{}, false
	}
	return domain.Product{
		ID:       productID,
		Name:     normalize.String(r, "productName", "name"),
		Code:     normalize.String(r, "barcode", "code"),
		Category: normalize.String(r, "categoryName", "category.categoryName"),
		Price:    normalize.Float(r, "price", "defaultPrice"),
	}, true
}

func (c *Client) decodeProductUnit(r gjson.Result) (domain.ProductUnit, bool) {
	unitID, ok := normalize.ID(r, "productUnitId", "unitId", "id")
	if !ok {
		return domain.ProductUnit{}, false
	}
	u := domain.ProductUnit{
		ID:               unitID,
		Name:             normalize.String(r, "unitName", "name"),
		ConversionFactor: normalize.Float(r, "conversionFactor"),
		Price:            normalize.Float(r, "price"),
	}
	u.ProductID, _ = normalize.ID(r, "productId")
	return u, true
}
