package core

import (
	"context"
	"sync"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/query"
)

// OrdersView lists the orders of one shift, newest first, with exact-id
// search.
type OrdersView struct {
	core  *Core
	coord *query.Coordinator[domain.Order]

	mu   sync.RWMutex
	sort domain.SortOrder
}

// Coordinator returns the underlying coordinator.
func (v *OrdersView) Coordinator() *query.Coordinator[domain.Order] {
	return v.coord
}

// Load switches the listing to shiftID and fetches its first page.
func (v *OrdersView) Load(ctx context.Context, shiftID int64) error {
	return v.coord.SetBase(ctx, domain.OrdersKey(v.core.shopID(), shiftID))
}

// LoadOpenShift lists the orders of the shop's open shift. It reports false
// when no shift is open.
func (v *OrdersView) LoadOpenShift(ctx context.Context) (domain.Shift, bool, error) {
	open, ok, err := v.core.OpenShift(ctx)
	if err != nil || !ok {
		return open, ok, err
	}
	return open, true, v.Load(ctx, open.ID)
}

// Refresh reloads the displayed listing from its first page.
func (v *OrdersView) Refresh(ctx context.Context) error {
	return v.coord.Refetch(ctx, v.coord.Active())
}

// NextPage appends the next page of the displayed listing.
func (v *OrdersView) NextPage(ctx context.Context) (bool, error) {
	return v.coord.FetchNextPage(ctx, v.coord.Active())
}

// Search schedules a debounced exact-id search.
func (v *OrdersView) Search(text string) {
	v.coord.Search(text)
}

// SearchPending reports whether a debounced search has not fired yet.
func (v *OrdersView) SearchPending() bool {
	return v.coord.SearchPending()
}

// SearchNow runs an exact-id search immediately.
func (v *OrdersView) SearchNow(ctx context.Context, text string) error {
	return v.coord.SearchNow(ctx, text)
}

// SetSort changes the direction Snapshot sorts in. Invalid values are
// ignored.
func (v *OrdersView) SetSort(order domain.SortOrder) {
	if !order.IsValid() {
		return
	}
	v.mu.Lock()
	v.sort = order
	v.mu.Unlock()
}

// Sort returns the current sort direction.
func (v *OrdersView) Sort() domain.SortOrder {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sort
}

// Snapshot returns the displayed listing sorted by creation time.
func (v *OrdersView) Snapshot() pagecache.Snapshot[domain.Order] {
	snap := v.coord.Snapshot()
	snap.Items = domain.SortOrders(snap.Items, v.Sort())
	return snap
}

// Items returns the displayed orders, optionally only those with status.
func (v *OrdersView) Items(status string) []domain.Order {
	return domain.FilterOrdersByStatus(v.Snapshot().Items, status)
}

// ProductsView lists the whole catalog and filters it locally.
type ProductsView struct {
	core  *Core
	coord *query.Coordinator[domain.Product]
}

func (v *ProductsView) key() domain.QueryKey {
	return domain.ProductsKey(v.core.shopID())
}

// Coordinator returns the underlying coordinator.
func (v *ProductsView) Coordinator() *query.Coordinator[domain.Product] {
	return v.coord
}

// Load fetches every page of the catalog.
func (v *ProductsView) Load(ctx context.Context) error {
	return loadAll(ctx, v.coord, v.key())
}

// Items returns the loaded catalog.
func (v *ProductsView) Items() []domain.Product {
	return v.coord.Cache().Items(v.key())
}

// Filter returns the loaded products matching text in name, code or
// category, ignoring case.
func (v *ProductsView) Filter(text string) []domain.Product {
	return domain.FilterProducts(v.Items(), text)
}
