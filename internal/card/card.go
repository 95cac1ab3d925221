package card

import (
	"errors"
	"fmt"
	"unicode"
)

// Card footprint: 3.5" x 2" at 72 units per inch.
const (
	UnitsPerInch = 72
	Width        = 252 // 3.5 * 72
	Height       = 144 // 2 * 72

	// BitRows is the number of punch rows under each header character.
	BitRows = 7
)

// Warning7Bit is shown to the user when a header character is rejected.
const Warning7Bit = "Only 7 bit characters allowed."

// ErrNot7Bit is returned for header text outside the ASCII range.
var ErrNot7Bit = errors.New("header must contain only 7 bit characters")

// Card represents a punch card business card
type Card struct {
	Header string // Punched line, typically an email address
	Footer string // Optional line at the bottom of the card
}

// CharError describes a rejected header character
type CharError struct {
	Rune     rune
	Position int
}

func (e *CharError) Error() string {
	return fmt.Sprintf("character %q (%d) at position %d: %v", e.Rune, e.Rune, e.Position, ErrNot7Bit)
}

func (e *CharError) Unwrap() error {
	return ErrNot7Bit
}

// New creates a card, rejecting headers that are not 7-bit clean
func New(header, footer string) (Card, error) {
	for i, r := range []rune(header) {
		if !Is7Bit(r) {
			return Card{}, &CharError{Rune: r, Position: i}
		}
	}
	return Card{Header: header, Footer: footer}, nil
}

// Is7Bit reports whether r fits in the seven punch rows.
func Is7Bit(r rune) bool {
	return r >= 0 && r <= 127
}

// AcceptHeaderRune decides what happens to a rune typed into the header.
// It returns whether the rune should be appended and the warning to display.
// Control characters are dropped without a warning.
func AcceptHeaderRune(r rune) (ok bool, warning string) {
	if unicode.IsControl(r) {
		return false, ""
	}
	if !Is7Bit(r) {
		return false, Warning7Bit
	}
	return true, ""
}

// AcceptFooterRune is the footer counterpart of AcceptHeaderRune. Any
// printable rune is allowed.
func AcceptFooterRune(r rune) bool {
	return !unicode.IsControl(r)
}

// FilterHeader keeps the runes AcceptHeaderRune allows. The returned warning
// is non-empty if at least one rune was rejected for being wider than 7 bits.
func FilterHeader(runes []rune) ([]rune, string) {
	var warning string
	kept := make([]rune, 0, len(runes))
	for _, r := range runes {
		ok, w := AcceptHeaderRune(r)
		if ok {
			kept = append(kept, r)
		} else if w != "" {
			warning = w
		}
	}
	return kept, warning
}

// FilterFooter drops control characters.
func FilterFooter(runes []rune) []rune {
	kept := make([]rune, 0, len(runes))
	for _, r := range runes {
		if AcceptFooterRune(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Bits returns the punch pattern for c. Element i is true iff bit i of c is
// set; element 0 is the row nearest the header text.
func Bits(c byte) [BitRows]bool {
	var bits [BitRows]bool
	for i := 0; i < BitRows; i++ {
		bits[i] = (c>>i)&1 == 1
	}
	return bits
}

// InchesToUnits converts inches to card units, truncating like the layout does.
func InchesToUnits(inches float64) int {
	return int(inches * UnitsPerInch)
}
