// Package layout computes where everything on a punch card goes: the largest
// point size that fits, the header glyph positions, the punch rectangles under
// each glyph and the footer position. It does no drawing.
package layout

import (
	"image"
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/typeface"
)

// Rows is the vertical budget in text lines: header, seven punch rows, footer.
const Rows = 1 + card.BitRows + 1

// FaceSource hands out faces by point size. *typeface.Typeface implements it.
type FaceSource interface {
	Face(size int) (font.Face, error)
}

// Geometry describes the card footprint and the fixed layout proportions.
type Geometry struct {
	Width  int // card units
	Height int

	CharSpacing    float64 // columns per header character
	CornerFraction float64 // share of the width taken by the corner cut
	Margin         float64 // blank border inside the card edge
	TickLength     int     // corner marker length
}

// DefaultGeometry is a 3.5" x 2" card with the classic proportions.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:          card.Width,
		Height:         card.Height,
		CharSpacing:    1.5,
		CornerFraction: 0.10,
		TickLength:     10,
	}
}

// CornerCut is the horizontal extent of the clipped corner.
func (g Geometry) CornerCut() float64 {
	return float64(g.Width) * g.CornerFraction
}

// UsableWidth is the width available to text right of the corner cut.
func (g Geometry) UsableWidth() float64 {
	return float64(g.Width) - g.CornerCut() - g.Margin
}

// UsableHeight is the height left after the top and bottom margins.
func (g Geometry) UsableHeight() float64 {
	return float64(g.Height) - 2*g.Margin
}

// Columns is the number of character cells the widest line needs.
func (g Geometry) Columns(headerLen, footerLen int) float64 {
	return math.Max(float64(headerLen)*g.CharSpacing, float64(footerLen))
}

// Fits reports whether text measured by m fits the card for the given line
// lengths.
func (g Geometry) Fits(m typeface.Metrics, headerLen, footerLen int) bool {
	if toFloat(m.LineHeight)*Rows > g.UsableHeight() {
		return false
	}
	return toFloat(m.Advance)*g.Columns(headerLen, footerLen) <= g.UsableWidth()
}

// FitPointSize finds the largest point size whose metrics fit the card, by
// counting up from 1 until the next size no longer fits. The result is never
// below 1, so very long text yields tiny but valid output. The search needs
// faces whose metrics grow with size; see typeface.Verify.
func FitPointSize(faces FaceSource, g Geometry, headerLen, footerLen int) (int, error) {
	size := 1
	for size < g.Height {
		m, err := measure(faces, size+1)
		if err != nil {
			return 0, err
		}
		if !g.Fits(m, headerLen, footerLen) {
			break
		}
		size++
	}
	return size, nil
}

// Punch is one of the seven bit positions under a header character.
type Punch struct {
	Bit  int
	Rect image.Rectangle
	Set  bool
}

// Glyph is a header character, its baseline origin and its punch column.
type Glyph struct {
	Char    byte
	Dot     image.Point
	Punches [card.BitRows]Punch
}

// Text is a line of text anchored at its baseline origin.
type Text struct {
	Text string
	Dot  image.Point
}

// Plan is the complete geometry of one card.
type Plan struct {
	Geometry    Geometry
	PointSize   int
	Metrics     typeface.Metrics
	CornerCut   int
	CharSpacing int
	Glyphs      []Glyph
	Footer      Text
}

// NewPlan lays out c on a card described by g.
func NewPlan(faces FaceSource, g Geometry, c card.Card) (*Plan, error) {
	footerLen := utf8.RuneCountInString(c.Footer)
	size, err := FitPointSize(faces, g, len(c.Header), footerLen)
	if err != nil {
		return nil, err
	}
	m, err := measure(faces, size)
	if err != nil {
		return nil, err
	}

	lineHeight := toFloat(m.LineHeight)
	charWidth := toFloat(m.Advance)

	spacing := max(int(math.Floor(charWidth*g.CharSpacing)), 1)
	cut := g.CornerCut()
	block := float64(len(c.Header) * spacing)
	colStart := int(math.Floor(cut + (float64(g.Width)-g.Margin-cut-block)/2))

	baseline := int(math.Floor(g.Margin + toFloat(m.Ascent)))
	rowStart := int(math.Floor(g.Margin + lineHeight*1.5))
	rowAdvance := int(math.Floor((g.UsableHeight() - 3*lineHeight) / card.BitRows))
	punchHeight := max(int(math.Floor(lineHeight*0.75)), 1)
	punchWidth := float64(spacing) * 0.25
	punchOffset := int(math.Floor(charWidth/2 - punchWidth/2))

	p := &Plan{
		Geometry:    g,
		PointSize:   size,
		Metrics:     m,
		CornerCut:   int(cut),
		CharSpacing: spacing,
		Glyphs:      make([]Glyph, len(c.Header)),
	}

	for i := 0; i < len(c.Header); i++ {
		ch := c.Header[i]
		col := colStart + i*spacing
		glyph := Glyph{
			Char: ch,
			Dot:  image.Pt(col, baseline),
		}

		x := col + punchOffset
		bits := card.Bits(ch)
		for bit := 0; bit < card.BitRows; bit++ {
			y := rowStart + bit*rowAdvance
			glyph.Punches[bit] = Punch{
				Bit:  bit,
				Rect: image.Rect(x, y, x+max(int(punchWidth), 1), y+punchHeight),
				Set:  bits[bit],
			}
		}
		p.Glyphs[i] = glyph
	}

	footerWidth := float64(footerLen) * charWidth
	p.Footer = Text{
		Text: c.Footer,
		Dot: image.Pt(
			int(math.Floor((float64(g.Width)-footerWidth)/2)),
			int(math.Floor(float64(g.Height)-g.Margin-toFloat(m.Descent))),
		),
	}

	return p, nil
}

// Face returns the face the plan was measured with.
func (p *Plan) Face(faces FaceSource) (font.Face, error) {
	return faces.Face(p.PointSize)
}

func measure(faces FaceSource, size int) (typeface.Metrics, error) {
	face, err := faces.Face(size)
	if err != nil {
		return typeface.Metrics{}, err
	}
	return typeface.Measure(face)
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
