package main

import (
	"github.com/spf13/cobra"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/cmd"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/app"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/session"
)

// NewLoginCmd creates the login command with explicit dependencies.
func NewLoginCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewLoginCmd: provider dependency cannot be nil")
	}

	var s session.Session
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Save the session used for API calls",
		Long: `Save the bearer token and shop scope used for every API call.

USAGE:
    asa login --token TOKEN --shop ID [--user ID] [--name NAME]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := p.Sessions()
			if err != nil {
				return err
			}
			return app.NewLoginUseCase(store).Execute(cmd.Context(), s)
		},
	}
	loginCmd.Flags().StringVar(&s.Token, "token", "", "Bearer token")
	loginCmd.Flags().Int64Var(&s.ShopID, "shop", 0, "Shop id")
	loginCmd.Flags().Int64Var(&s.UserID, "user", 0, "User id")
	loginCmd.Flags().StringVar(&s.UserName, "name", "", "Display name")
	_ = loginCmd.MarkFlagRequired("token")
	_ = loginCmd.MarkFlagRequired("shop")
	return loginCmd
}

// NewLogoutCmd creates the logout command with explicit dependencies.
func NewLogoutCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewLogoutCmd: provider dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := p.Sessions()
			if err != nil {
				return err
			}
			return app.NewLoginUseCase(store).ExecuteLogout(cmd.Context())
		},
	}
}

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(p provider) *cobra.Command {
	if p == nil {
		panic("NewStatusCmd: provider dependency cannot be nil")
	}

	var asJSON bool
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the session, unread count and open shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := p.NewCore()
			if err != nil {
				return err
			}
			defer c.Close()
			return app.NewStatusUseCase(c).Execute(cmd.Context(), asJSON, cmd.OutOrStdout())
		},
	}
	statusCmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return statusCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewLoginCmd(appDeps), NewLogoutCmd(appDeps), NewStatusCmd(appDeps))
}
