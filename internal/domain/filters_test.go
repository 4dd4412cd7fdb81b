package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterProducts(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Cà phê sữa", Code: "CF01", Category: "Đồ uống"},
		{ID: 2, Name: "Bánh mì", Code: "BM02", Category: "Đồ ăn"},
		{ID: 3, Name: "Trà đào", Code: "TD03", Category: "đồ uống"},
	}

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"empty returns all", "", []int64{1, 2, 3}},
		{"blank returns all", "   ", []int64{1, 2, 3}},
		{"name substring", "bánh", []int64{2}},
		{"code case-insensitive", "cf0", []int64{1}},
		{"category case-insensitive", "ĐỒ UỐNG", []int64{1, 3}},
		{"no match", "pizza", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IDs(FilterProducts(products, tt.query)))
		})
	}
}

func TestFilterOrdersByStatus(t *testing.T) {
	orders := []Order{
		{ID: 1, Status: OrderStatusPaid},
		{ID: 2, Status: OrderStatusPending},
		{ID: 3, Status: "PAID"},
	}

	assert.Equal(t, []int64{1, 3}, IDs(FilterOrdersByStatus(orders, "paid")))
	assert.Equal(t, []int64{1, 2, 3}, IDs(FilterOrdersByStatus(orders, "")))
}
