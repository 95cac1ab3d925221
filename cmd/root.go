package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "punchcard",
	Short: "Render punch card style business cards",
	Long: `Punchcard draws a business card that looks like a punch card: your email address
(or any short text) across the top, the 7-bit ASCII code of every character punched
in the column beneath it, and an optional line of text at the bottom.

The low bit of each character sits just under the letter. The font is as large as the
card allows, so keep the header to about 20 characters.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/punchcard/config.toml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
