package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/config"
	"github.com/arcanaland/punchcard/internal/page"
	"github.com/arcanaland/punchcard/internal/render"
)

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print [header]",
	Short: "Tile copies of a card onto a printable page",
	Long: `Print fills one sheet of paper with as many copies of the card as fit
inside the page margins and writes it as a PDF or a PNG of the whole page.

The PDF places every card at its true size, so it can be sent straight to a
printer and cut out.

Examples:
  punchcard print ada@example.com
  punchcard print ada@example.com --paper a4 --landscape -o ada.pdf
  punchcard print ada@example.com --format png -o sheet.png`,
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
		grid, err := p.print(c)
		if err != nil {
			return err
		}

		fmt.Printf("Printed %s (%d x %d) on %s to %s\n",
			color.HiWhiteString("%d cards", grid.Count()), grid.Columns, grid.Rows,
			color.CyanString(p.format.Paper.Name), color.HiWhiteString(p.output))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(printCmd)

	addFooterFlag(printCmd)
	addPrintFlags(printCmd)
}

func addPrintFlags(cmd *cobra.Command) {
	cmd.Flags().String("paper", "", "paper size: "+strings.Join(page.PaperNames(), ", ")+" (default from config)")
	cmd.Flags().Bool("landscape", false, "turn the paper sideways")
	cmd.Flags().Float64("margin", 0, "unprintable page margin in inches (default from config)")
	cmd.Flags().Float64("spacing", 0, "gap between cards in inches (default from config)")
	cmd.Flags().String("format", "", "output format: pdf or png (default from config)")
	cmd.Flags().StringP("output", "o", "", "file to write (default from config)")
}

// sheetPrinter writes print jobs for single cards. It also serves as the
// editor's printer.
type sheetPrinter struct {
	renderer *render.Renderer
	format   page.Format
	spacing  int
	kind     string
	output   string
}

// newSheetPrinter takes the page settings from cfg, overridden by any print
// flags set on cmd.
func newSheetPrinter(cmd *cobra.Command, cfg *config.Config, r *render.Renderer) (*sheetPrinter, error) {
	pc := cfg.Page
	flags := cmd.Flags()
	if flags.Changed("paper") {
		pc.Paper, _ = flags.GetString("paper")
	}
	if flags.Changed("landscape") {
		pc.Landscape, _ = flags.GetBool("landscape")
	}
	if flags.Changed("margin") {
		pc.MarginIn, _ = flags.GetFloat64("margin")
	}
	if flags.Changed("spacing") {
		pc.SpacingIn, _ = flags.GetFloat64("spacing")
	}
	if flags.Changed("format") {
		pc.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		pc.Output, _ = flags.GetString("output")
	}

	paper, err := page.LookupPaper(pc.Paper)
	if err != nil {
		return nil, err
	}
	if pc.Landscape {
		paper = paper.Landscape()
	}

	kind := strings.ToLower(pc.Format)
	if kind != "pdf" && kind != "png" {
		return nil, fmt.Errorf("unknown output format %q, want pdf or png", pc.Format)
	}
	if pc.MarginIn < 0 || pc.SpacingIn < 0 {
		return nil, fmt.Errorf("page margin and spacing must not be negative")
	}

	return &sheetPrinter{
		renderer: r,
		format:   page.Format{Paper: paper, Margin: float64(card.InchesToUnits(pc.MarginIn))},
		spacing:  cfg.Units(pc.SpacingIn),
		kind:     kind,
		output:   pc.Output,
	}, nil
}

// Print satisfies editor.Printer.
func (p *sheetPrinter) Print(c card.Card) (string, error) {
	grid, err := p.print(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%d cards on %s)", p.output, grid.Count(), p.format.Paper.Name), nil
}

func (p *sheetPrinter) print(c card.Card) (page.Grid, error) {
	return p.printTo(c, p.output)
}

// printTo renders c, tiles it and writes the page to path.
func (p *sheetPrinter) printTo(c card.Card, path string) (page.Grid, error) {
	img, _, err := p.renderer.Render(c)
	if err != nil {
		return page.Grid{}, fmt.Errorf("error rendering card: %w", err)
	}

	job := &page.Job{Card: img, Format: p.format, Spacing: p.spacing}
	grid := job.Grid()
	if grid.Count() == 0 {
		slog.Warn("no card fits on the page, writing a blank page",
			"paper", p.format.Paper.Name, "margin", p.format.Margin)
	}

	err = writeFile(path, func(w io.Writer) error {
		if p.kind == "png" {
			return page.WritePNG(w, job)
		}
		return page.WritePDF(w, job, c.Header)
	})
	if err != nil {
		return grid, err
	}

	slog.Debug("page written", "path", path, "format", p.kind, "paper", p.format.Paper.Name,
		"columns", grid.Columns, "rows", grid.Rows)
	return grid, nil
}
