package main

import (
	"github.com/spf13/cobra"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/cmd"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/app"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

// NewNotificationsCmd creates the notifications command with explicit dependencies.
func NewNotificationsCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewNotificationsCmd: provider dependency cannot be nil")
	}

	var (
		opts       app.NotificationsOptions
		formatFlag string
	)
	notificationsCmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}
			opts.Format = ft
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewListNotificationsUseCase(c).Execute(cmd.Context(), opts, cmd.OutOrStdout())
			})
		},
	}
	notificationsCmd.Flags().IntVar(&opts.Pages, "pages", 1, "Pages to load")
	notificationsCmd.Flags().BoolVar(&opts.UnreadOnly, "unread", false, "Only unread notifications")
	notificationsCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: simple, table, json")
	return notificationsCmd
}

// NewMarkReadCmd creates the mark-read command with explicit dependencies.
func NewMarkReadCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewMarkReadCmd: provider dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "mark-read <id>",
		Short: "Mark a notification as read",
		Long: `Mark a notification as read by ID.

USAGE:
    asa mark-read <id>

OPTIONS:
    -h, --help           Show this help`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return err
			}
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewMarkReadUseCase(c).Execute(cmd.Context(), id)
			})
		},
	}
}

// NewMarkAllReadCmd creates the mark-all-read command with explicit dependencies.
func NewMarkAllReadCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewMarkAllReadCmd: provider dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd.Context(), p, func(c *core.Core) error {
				return app.NewMarkReadUseCase(c).ExecuteAll(cmd.Context())
			})
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewNotificationsCmd(appDeps), NewMarkReadCmd(appDeps), NewMarkAllReadCmd(appDeps))
}
