// Package domain provides the item types kept in client-side caches, the
// query keys identifying each accumulation stream, and the error taxonomy of
// the synchronization layer.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Item is a cached record with a stable identifier.
type Item interface {
	ItemID() int64
}

// IDs returns the identifiers of items in order.
func IDs[T Item](items []T) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}

// FindByID returns the first item with the given id.
func FindByID[T Item](items []T, id int64) (T, bool) {
	for _, it := range items {
		if it.ItemID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// ParseID parses a positive decimal identifier, ignoring surrounding
// whitespace.
func ParseID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", text, ErrIdentifierUnparseable)
	}
	return id, nil
}
