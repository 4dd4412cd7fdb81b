package main

import (
	"github.com/spf13/cobra"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/cmd"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/app"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

const ordersCommandLong = `List the orders of a shift, newest first.

USAGE:
    asa orders [OPTIONS]

OPTIONS:
    --shift ID       Shift to list (default: the open shift)
    --search ID      Show only the order with this id
    --status STATUS  Keep orders with this status: pending, paid, cancelled
    --pages N        Pages to load (default: 1)
    --format FORMAT  Output format: simple, table, json
    -h, --help       Show this help`

// NewOrdersCmd creates the orders command with explicit dependencies.
func NewOrdersCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewOrdersCmd: provider dependency cannot be nil")
	}

	var (
		opts       app.OrdersOptions
		formatFlag string
	)
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders of a shift",
		Long:  ordersCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}
			opts.Format = ft
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewListOrdersUseCase(c.Orders()).Execute(cmd.Context(), opts, cmd.OutOrStdout())
			})
		},
	}
	ordersCmd.Flags().Int64Var(&opts.ShiftID, "shift", 0, "Shift id (default: the open shift)")
	ordersCmd.Flags().StringVar(&opts.Search, "search", "", "Exact order id")
	ordersCmd.Flags().StringVar(&opts.Status, "status", "", "Order status")
	ordersCmd.Flags().IntVar(&opts.Pages, "pages", 1, "Pages to load")
	ordersCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: simple, table, json")
	return ordersCmd
}

// NewOrderLinesCmd creates the order-lines command with explicit dependencies.
func NewOrderLinesCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewOrderLinesCmd: provider dependency cannot be nil")
	}

	var formatFlag string
	linesCmd := &cobra.Command{
		Use:   "order-lines <id>",
		Short: "Show the lines of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewOrderLinesUseCase(c).Execute(cmd.Context(), args[0], ft, cmd.OutOrStdout())
			})
		},
	}
	linesCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: simple, table, json")
	return linesCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewOrdersCmd(appDeps), NewOrderLinesCmd(appDeps))
}
