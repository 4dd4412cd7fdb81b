package app

import (
	"context"
	"fmt"
	"io"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

// ProductsClient defines dependencies for reading the catalog.
type ProductsClient interface {
	Load(ctx context.Context) error
	Filter(text string) []domain.Product
}

// ListProductsUseCase prints the catalog.
type ListProductsUseCase struct {
	client ProductsClient
}

// NewListProductsUseCase creates a products listing use-case.
func NewListProductsUseCase(client ProductsClient) *ListProductsUseCase {
	if client == nil {
		panic("NewListProductsUseCase: client dependency cannot be nil")
	}
	return &ListProductsUseCase{client: client}
}

// Execute loads the whole catalog and writes the products matching filter.
func (u *ListProductsUseCase) Execute(ctx context.Context, filter string, ft format.FormatterType, w io.Writer) error {
	if err := u.client.Load(ctx); err != nil {
		return fmt.Errorf("products: %w", err)
	}
	items := u.client.Filter(filter)
	if len(items) == 0 && ft != format.FormatterTypeJSON {
		colors.Info("No products")
		return nil
	}
	return format.NewFormatter(ft).FormatProducts(items, w)
}
