package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterProducts returns the products whose name, code, or category contains
// query, ignoring case. An empty query returns the input unchanged.
func FilterProducts(products []Product, query string) []Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return products
	}
	// A Caser is stateful; one per call.
	folder := cases.Fold()
	needle := folder.String(query)

	result := make([]Product, 0)
	for _, p := range products {
		for _, field := range []string{p.Name, p.Code, p.Category} {
			if field != "" && strings.Contains(folder.String(field), needle) {
				result = append(result, p)
				break
			}
		}
	}
	return result
}

// FilterOrdersByStatus returns orders with the given status. An empty status
// returns the input unchanged.
func FilterOrdersByStatus(orders []Order, status string) []Order {
	if status == "" {
		return orders
	}
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		if strings.EqualFold(o.Status, status) {
			result = append(result, o)
		}
	}
	return result
}
