package main

import (
	"github.com/spf13/cobra"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/cmd"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	apperrors "github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/settings"
	tuiapp "github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/tui/app"
)

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiapp.Client) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive view of orders and notifications",
		Long: `Interactive view of the open shift's orders and the notification feed.

KEY BINDINGS:
    tab         Switch between orders and notifications
    j/k         Move up/down in the list
    /           Search orders by id
    ESC         Leave search
    Enter       Mark the selected notification read
    a           Mark every notification read
    s           Toggle order sort
    n           Load the next page
    r           Refresh
    q           Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := client.CreateModel(cmd.Context())
			if err != nil {
				return err
			}
			return client.RunProgram(model)
		},
	}
}

// buildTUICore builds a Core whose load failures go to the TUI's status line.
func buildTUICore(reporter apperrors.ErrorHandler) (*core.Core, error) {
	return appDeps.NewCore(core.WithReporter(reporter))
}

func openSettings() settings.Store {
	return settings.NewFileStore(settings.DefaultPath())
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(tuiapp.NewDefaultClient(buildTUICore, nil, tuiapp.WithSettings(openSettings))))
}
