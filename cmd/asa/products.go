package main

import (
	"github.com/spf13/cobra"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/cmd"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/app"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

// NewProductsCmd creates the products command with explicit dependencies.
func NewProductsCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewProductsCmd: provider dependency cannot be nil")
	}

	var (
		filter     string
		withUnits  bool
		formatFlag string
	)
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewListProductsUseCase(c.Products()).Execute(cmd.Context(), filter, ft, cmd.OutOrStdout())
			}, core.WithProductUnits(withUnits))
		},
	}
	productsCmd.Flags().StringVar(&filter, "filter", "", "Match name, code or category")
	productsCmd.Flags().BoolVar(&withUnits, "units", false, "Also fetch each product's units")
	productsCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: simple, table, json")
	return productsCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewProductsCmd(appDeps))
}
