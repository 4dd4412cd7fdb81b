package main

import (
	"github.com/spf13/cobra"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/cmd"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/app"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

// NewShiftsCmd creates the shifts command with explicit dependencies.
func NewShiftsCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewShiftsCmd: provider dependency cannot be nil")
	}

	var (
		openOnly   bool
		formatFlag string
	)
	shiftsCmd := &cobra.Command{
		Use:   "shifts",
		Short: "List the shop's shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewListShiftsUseCase(c).Execute(cmd.Context(), openOnly, ft, cmd.OutOrStdout())
			})
		},
	}
	shiftsCmd.Flags().BoolVar(&openOnly, "open", false, "Only open shifts")
	shiftsCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: simple, table, json")
	return shiftsCmd
}

// NewCloseShiftCmd creates the close-shift command with explicit dependencies.
func NewCloseShiftCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewCloseShiftCmd: provider dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "close-shift [id]",
		Short: "Close a shift, by default the open one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if len(args) == 1 {
				var err error
				if id, err = domain.ParseID(args[0]); err != nil {
					return err
				}
			}
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewCloseShiftUseCase(c).Execute(cmd.Context(), id)
			})
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewShiftsCmd(appDeps), NewCloseShiftCmd(appDeps))
}
