package cmd

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [header]",
	Short: "Render a card to a PNG image",
	Long: `Render draws one card at its natural size (252x144 for a standard
3.5x2 inch card) and writes it as a PNG.

Examples:
  punchcard render ada@example.com
  punchcard render ada@example.com -f "Analytical Engines" -o ada.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cardFromArgs(cmd, args)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		img, plan, err := app.renderer.Render(c)
		if err != nil {
			return fmt.Errorf("error rendering card: %w", err)
		}

		if err := writePNG(output, img); err != nil {
			return err
		}
		slog.Debug("card written", "path", output, "point_size", plan.PointSize)

		fmt.Printf("Card written to %s (%s)\n", color.HiWhiteString(output), color.CyanString("%dpt", plan.PointSize))
		return nil
	},
}

// writePNG writes img to path
func writePNG(path string, img image.Image) error {
	return writeFile(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

// writeFile creates path and fills it with write. Errors from flushing and
// closing the file are returned too, so a short write is never reported as
// success.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(renderCmd)

	addFooterFlag(renderCmd)
	renderCmd.Flags().StringP("output", "o", "card.png", "PNG file to write")
}
