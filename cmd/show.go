package cmd

import (
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/preview"
	"github.com/arcanaland/punchcard/internal/validator"
)

var showCmd = &cobra.Command{
	Use:   "show [header]",
	Short: "Preview a card in the terminal",
	Long: `Show renders a card and displays it as ANSI art, together with the point
size the text fits at and any warnings about the text.

Examples:
  punchcard show ada@example.com
  punchcard show ada@example.com -f "Analytical Engines"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cardFromArgs(cmd, args)
		if err != nil {
			return err
		}

		img, plan, err := app.renderer.Render(c)
		if err != nil {
			return fmt.Errorf("error rendering card: %w", err)
		}

		results, err := validator.NewValidator(c, app.typeface, app.renderer.Geometry(), app.cfg.Card.MinLegiblePointSize).Validate()
		if err != nil {
			return err
		}

		width := terminalWidth()
		opts := preview.FitWidth(img, artWidth(width))
		opts.TrueColor = term.IsTerminal(int(os.Stdout.Fd()))

		displayCard(c, preview.ANSI(img, opts), plan.PointSize, results.Warnings, width)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	addFooterFlag(showCmd)
}

// terminalWidth returns the width of stdout, 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// artWidth leaves room for the info column next to the art
func artWidth(termWidth int) int {
	return min(max(termWidth-40, 20), 84)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// displayCard prints the ANSI art with the card details to its right
func displayCard(c card.Card, ansiArt string, pointSize int, warnings []string, width int) {
	ansiLines := strings.Split(strings.TrimSuffix(ansiArt, "\n"), "\n")
	maxAnsiWidth := 0
	for _, line := range ansiLines {
		maxAnsiWidth = max(maxAnsiWidth, len([]rune(preview.StripANSI(line))))
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Header: ")+colorize.HiWhiteString("%s", c.Header))
	if c.Footer != "" {
		infoLines = append(infoLines, colorize.CyanString("Footer: ")+colorize.HiWhiteString("%s", c.Footer))
	}
	infoLines = append(infoLines, colorize.CyanString("Font:   ")+colorize.HiWhiteString("%s", app.typeface.Name))
	infoLines = append(infoLines, colorize.CyanString("Size:   ")+colorize.HiWhiteString("%dpt", pointSize))

	spacing := 4
	infoStartCol := maxAnsiWidth + spacing

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	if len(warnings) > 0 {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.YellowString("Warnings:"))
		for _, w := range warnings {
			infoLines = append(infoLines, wrapText(w, infoWidth)...)
		}
	}

	fmt.Println()

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(ansiLines) {
			fmt.Print(ansiLines[i])
			visibleWidth := len([]rune(preview.StripANSI(ansiLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}

		fmt.Println()
	}

	fmt.Println()
}
