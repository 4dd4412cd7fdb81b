package domain

// Product is a sellable catalog entry.
type Product struct {
	ID       int64
	Name     string
	Code     string
	Category string
	Price    float64
	Units    []ProductUnit
}

// ItemID implements Item.
func (p Product) ItemID() int64 { return p.ID }

// ProductUnit is a sale unit of a product (e.g. box, piece).
type ProductUnit struct {
	ID               int64
	ProductID        int64
	Name             string
	ConversionFactor float64
	Price            float64
}

// ItemID implements Item.
func (u ProductUnit) ItemID() int64 { return u.ID }
