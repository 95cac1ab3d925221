package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/punchcard/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Work with deck files of several cards",
	Long: `A deck is a deck.toml file describing several cards at once:

  [deck]
  name = "Team"

  [[cards]]
  id = "ada"
  header = "ada@example.com"
  footer = "Analytical Engines"

Deck commands take the path of the file or of a directory containing it.`,
}

// deckListCmd represents the deck ls command
var deckListCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List the cards of a deck with the size their text fits at",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.LoadDeck(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d cards)\n", color.HiWhiteString(d.Name), len(d.Cards))
		for _, e := range d.Cards {
			plan, err := app.renderer.Plan(e.Card)
			if err != nil {
				return fmt.Errorf("error laying out card %s: %w", e.ID, err)
			}
			fmt.Printf("  %-16s %-28s %s\n", e.ID, e.Card.Header, color.CyanString("%dpt", plan.PointSize))
		}
		return nil
	},
}

// deckRenderCmd represents the deck render command
var deckRenderCmd = &cobra.Command{
	Use:   "render [path]",
	Short: "Render every card of a deck to PNG",
	Long: `Render writes <id>.png for every card of the deck into the output
directory. With --sheets it also writes a print page <id>.pdf (or .png, per
the configured format) for every card.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.LoadDeck(args[0])
		if err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("output")
		sheets, _ := cmd.Flags().GetBool("sheets")
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}

		var p *sheetPrinter
		if sheets {
			if p, err = newSheetPrinter(cmd, app.cfg, app.renderer); err != nil {
				return err
			}
		}

		for _, e := range d.Cards {
			img, plan, err := app.renderer.Render(e.Card)
			if err != nil {
				return fmt.Errorf("error rendering card %s: %w", e.ID, err)
			}

			path := filepath.Join(outDir, e.ID+".png")
			if err := writePNG(path, img); err != nil {
				return err
			}
			slog.Debug("card written", "id", e.ID, "path", path, "point_size", plan.PointSize)
			fmt.Printf("  %s → %s\n", e.ID, path)

			if p != nil {
				sheet := filepath.Join(outDir, e.ID+"-sheet."+p.kind)
				if _, err := p.printTo(e.Card, sheet); err != nil {
					return fmt.Errorf("error printing card %s: %w", e.ID, err)
				}
				fmt.Printf("  %s → %s\n", e.ID, sheet)
			}
		}

		fmt.Printf("Rendered %s from %s\n", color.HiWhiteString("%d cards", len(d.Cards)), d.Name)
		return nil
	},
}

// deckValidateCmd represents the deck validate command
var deckValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate every card of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.LoadDeck(args[0])
		if err != nil {
			return err
		}

		failed := 0
		for i, e := range d.Cards {
			if i > 0 {
				fmt.Println()
			}
			if err := validateCard(e.ID, e.Card); err != nil {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d cards failed validation", failed, len(d.Cards))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckRenderCmd)
	deckCmd.AddCommand(deckValidateCmd)

	deckRenderCmd.Flags().StringP("output", "o", ".", "directory to write the cards to")
	deckRenderCmd.Flags().Bool("sheets", false, "also write a print page for every card")
}
