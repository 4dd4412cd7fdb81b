// Package cmd holds the root command shared by the asa binary.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/config"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/version"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "asa",
	Short: "Shop assistant for orders, shifts and notifications.",
	Long:  `Shop assistant for orders, shifts and notifications.`,
	// Errors are printed once by main.
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// setup loads configuration and the global logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		printHelpText(cmd.OutOrStdout(), cmd)
	})
}

// commandOrder is the order commands appear in the root help.
var commandOrder = []string{
	"login",
	"logout",
	"status",
	"shifts",
	"close-shift",
	"orders",
	"order-lines",
	"notifications",
	"mark-read",
	"mark-all-read",
	"products",
	"tui",
	"version",
}

func printHelpText(w io.Writer, root *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		for _, c := range root.Commands() {
			if c.Name() == name {
				cmdLines = append(cmdLines, fmt.Sprintf("    %-22s %s", c.Use, c.Short))
				break
			}
		}
	}

	fmt.Fprintf(w, `asa v%s

%s

USAGE:
    asa [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message

Configuration is read from %s and ASA_* environment variables.
`, version.String(), root.Short, strings.Join(cmdLines, "\n"), configHint())
}

func configHint() string {
	if p := config.Path(); p != "" {
		return p
	}
	return "$XDG_CONFIG_HOME/asa/config.toml"
}
