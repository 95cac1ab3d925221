package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/punchcard/internal/editor"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [header]",
	Short: "Edit a card interactively with a live preview",
	Long: `Edit opens a full-screen editor with a header field, a footer field and a
preview that redraws as you type. The header only accepts 7-bit characters.

Keys: tab switches field, ctrl+p prints a page with the current print
settings, esc or ctrl+c quits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cardFromArgs(cmd, args)
		if err != nil {
			return err
		}

		p, err := newSheetPrinter(cmd, app.cfg, app.renderer)
		if err != nil {
			return err
		}

		return editor.Run(editor.New(app.renderer, p, c))
	},
}

func init() {
	RootCmd.AddCommand(editCmd)

	addFooterFlag(editCmd)
	addPrintFlags(editCmd)
}
