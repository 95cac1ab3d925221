package validator

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/layout"
)

// RecommendedHeaderLength is about the longest header that stays comfortably
// readable on a standard card.
const RecommendedHeaderLength = 20

type ValidationResults struct {
	Errors    []string
	Warnings  []string
	PointSize int
}

// Valid reports whether the card can be rendered as typed.
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	Card     card.Card
	Faces    layout.FaceSource
	Geometry layout.Geometry

	// MinLegiblePointSize triggers a warning, never an error.
	MinLegiblePointSize int

	Results ValidationResults
}

func NewValidator(c card.Card, faces layout.FaceSource, g layout.Geometry, minLegible int) *Validator {
	return &Validator{
		Card:                c,
		Faces:               faces,
		Geometry:            g,
		MinLegiblePointSize: minLegible,
		Results:             ValidationResults{},
	}
}

// Validate checks the header and footer text. The error return is reserved
// for failures measuring the font; problems with the text itself are
// reported in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	v.validateHeader()
	v.validateFooter()

	if err := v.validateSize(); err != nil {
		return v.Results, err
	}

	return v.Results, nil
}

func (v *Validator) validateHeader() {
	if v.Card.Header == "" {
		v.Results.Warnings = append(v.Results.Warnings, "header is empty, the card will have no punches")
		return
	}

	for i, r := range []rune(v.Card.Header) {
		switch {
		case r == utf8.RuneError:
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("header has invalid UTF-8 at position %d", i))
		case !card.Is7Bit(r):
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("header character %q (%d) at position %d: %s", r, r, i, card.Warning7Bit))
		case unicode.IsControl(r):
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("header has control character %U at position %d", r, i))
		}
	}

	if n := utf8.RuneCountInString(v.Card.Header); n > RecommendedHeaderLength {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("header is %d characters, more than about %d makes the text hard to read", n, RecommendedHeaderLength))
	}
}

func (v *Validator) validateFooter() {
	for i, r := range []rune(v.Card.Footer) {
		if unicode.IsControl(r) {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("footer has control character %U at position %d", r, i))
		}
	}
}

// validateSize runs the font-fit search and warns when the text gets too
// small to read.
func (v *Validator) validateSize() error {
	size, err := layout.FitPointSize(v.Faces, v.Geometry, len(v.Card.Header), utf8.RuneCountInString(v.Card.Footer))
	if err != nil {
		return fmt.Errorf("error measuring text: %w", err)
	}
	v.Results.PointSize = size

	if v.MinLegiblePointSize > 0 && size < v.MinLegiblePointSize {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("text will be set at %dpt, below the legible minimum of %dpt; shorten the header or footer", size, v.MinLegiblePointSize))
	}
	return nil
}
