package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/punchcard/internal/config"
	"github.com/arcanaland/punchcard/internal/page"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the punchcard config file",
	Long:  `Commands for creating and changing the config file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with default settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Startup already loaded the config, creating it if it was missing.
		fmt.Println("Config file initialized at:", configFilePath())
		fmt.Printf("Cards will print on %s paper as %s.\n",
			color.HiWhiteString(app.cfg.Page.Paper), color.HiWhiteString(app.cfg.Page.Format))
	},
}

// configPathCmd represents the config path command
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configFilePath())
	},
}

// configSetPaperCmd represents the config set-paper command
var configSetPaperCmd = &cobra.Command{
	Use:   "set-paper [paper]",
	Short: "Set the default paper size for printing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paper, err := page.LookupPaper(args[0])
		if err != nil {
			return err
		}

		if err := config.SetDefaultPaper(configPath, paper.Name); err != nil {
			return fmt.Errorf("error setting default paper: %w", err)
		}

		fmt.Printf("Default paper set to: %s (%.0f x %.0f pt)\n", color.HiWhiteString(paper.Name), paper.Width, paper.Height)
		return nil
	},
}

func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigFilePath()
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetPaperCmd)
}
