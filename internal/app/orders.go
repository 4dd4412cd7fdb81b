package app

import (
	"context"
	"fmt"
	"io"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

// OrdersClient defines dependencies for listing orders.
type OrdersClient interface {
	Load(ctx context.Context, shiftID int64) error
	LoadOpenShift(ctx context.Context) (domain.Shift, bool, error)
	SearchNow(ctx context.Context, text string) error
	NextPage(ctx context.Context) (bool, error)
	Items(status string) []domain.Order
}

// OrdersOptions selects what ListOrdersUseCase prints.
type OrdersOptions struct {
	// ShiftID lists that shift; zero means the open shift.
	ShiftID int64
	// Search is an exact order id.
	Search string
	Status string
	Pages  int
	Format format.FormatterType
}

// ListOrdersUseCase prints the orders of a shift, newest first.
type ListOrdersUseCase struct {
	client OrdersClient
}

// NewListOrdersUseCase creates an orders listing use-case.
func NewListOrdersUseCase(client OrdersClient) *ListOrdersUseCase {
	if client == nil {
		panic("NewListOrdersUseCase: client dependency cannot be nil")
	}
	return &ListOrdersUseCase{client: client}
}

// Execute runs the listing. Search text that is not an order id lists
// nothing.
func (u *ListOrdersUseCase) Execute(ctx context.Context, opts OrdersOptions, w io.Writer) error {
	if opts.ShiftID > 0 {
		if err := u.client.Load(ctx, opts.ShiftID); err != nil {
			return fmt.Errorf("orders: %w", err)
		}
	} else {
		_, open, err := u.client.LoadOpenShift(ctx)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		if !open {
			colors.Info("No open shift")
			return nil
		}
	}

	if opts.Search != "" {
		if err := u.client.SearchNow(ctx, opts.Search); err != nil {
			return fmt.Errorf("orders: search %q: %w", opts.Search, err)
		}
	}
	for i := 1; i < opts.Pages; i++ {
		more, err := u.client.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		if !more {
			break
		}
	}

	items := u.client.Items(opts.Status)
	if len(items) == 0 && opts.Format != format.FormatterTypeJSON {
		colors.Info("No orders")
		return nil
	}
	return format.NewFormatter(opts.Format).FormatOrders(items, w)
}

// OrderLinesClient defines dependencies for listing the lines of an order.
type OrderLinesClient interface {
	OrderLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error)
}

// OrderLinesUseCase prints the lines of one order.
type OrderLinesUseCase struct {
	client OrderLinesClient
}

// NewOrderLinesUseCase creates an order lines use-case.
func NewOrderLinesUseCase(client OrderLinesClient) *OrderLinesUseCase {
	if client == nil {
		panic("NewOrderLinesUseCase: client dependency cannot be nil")
	}
	return &OrderLinesUseCase{client: client}
}

// Execute parses idText and writes the order's lines and total.
func (u *OrderLinesUseCase) Execute(ctx context.Context, idText string, ft format.FormatterType, w io.Writer) error {
	id, err := domain.ParseID(idText)
	if err != nil {
		return fmt.Errorf("order-lines: %w", err)
	}
	lines, err := u.client.OrderLines(ctx, id)
	if err != nil {
		return fmt.Errorf("order-lines: %w", err)
	}
	if ft == format.FormatterTypeJSON {
		return format.NewJSONFormatter().FormatOrderLines(lines, w)
	}
	if len(lines) == 0 {
		colors.Info(fmt.Sprintf("Order %d has no lines", id))
		return nil
	}
	if err := format.NewFormatter(ft).FormatOrderLines(lines, w); err != nil {
		return err
	}
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	_, err = fmt.Fprintf(w, "Total: %s\n", format.Price(total))
	return err
}
