package domain

// Order status values reported by the server.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order is a sale recorded during a shift.
type Order struct {
	ID            int64
	ShiftID       int64
	CustomerName  string
	Status        string
	PaymentMethod string
	TotalPrice    float64
	Note          string
	CreatedAt     string // display string, see package datetime
}

// ItemID implements Item.
func (o Order) ItemID() int64 { return o.ID }

// OrderLine is one product line of an order.
type OrderLine struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitName    string
	Quantity    int
	UnitPrice   float64
}

// ItemID implements Item.
func (l OrderLine) ItemID() int64 { return l.ID }

// Subtotal is quantity times unit price.
func (l OrderLine) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}
