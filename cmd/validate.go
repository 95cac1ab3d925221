package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [header]",
	Short: "Check that a card's text can be punched and read",
	Long: `Validate checks the header and footer of a card without rendering it.
Characters outside 7-bit ASCII in the header and control characters anywhere
are errors. A very long header or text that ends up too small to read are
warnings.

Validate exits non-zero when there are errors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var header string
		if len(args) > 0 {
			header = args[0]
		}
		footer, _ := cmd.Flags().GetString("footer")

		// Not card.New: the validator reports every bad character, not just the first.
		c := card.Card{Header: header, Footer: footer}
		return validateCard(fmt.Sprintf("%q", c.Header), c)
	},
}

func init() {
	addFooterFlag(validateCmd)
}

// validateCard prints the validation results for c under label and returns
// an error if c has validation errors.
func validateCard(label string, c card.Card) error {
	v := validator.NewValidator(c, app.typeface, app.renderer.Geometry(), app.cfg.Card.MinLegiblePointSize)
	results, err := v.Validate()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	fmt.Println("Validation Results:")
	fmt.Println("-------------------")

	if results.Valid() {
		fmt.Printf("✅ Card %s is valid, text fits at %s.\n", label, color.CyanString("%dpt", results.PointSize))
	} else {
		fmt.Printf("❌ Card %s has %d validation errors:\n", label, len(results.Errors))
		for i, e := range results.Errors {
			fmt.Printf("%d. %s\n", i+1, color.RedString(e))
		}
	}

	if len(results.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for i, warn := range results.Warnings {
			fmt.Printf("%d. %s\n", i+1, color.YellowString(warn))
		}
	}

	if !results.Valid() {
		return fmt.Errorf("validation failed")
	}
	return nil
}
