// Package render draws punch cards.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/fogleman/gg"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/layout"
)

// Renderer draws cards with one typeface and geometry.
type Renderer struct {
	faces      layout.FaceSource
	geometry   layout.Geometry
	background color.Color
	ink        color.Color
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColors sets the card stock and ink colors.
func WithColors(background, ink color.Color) Option {
	return func(r *Renderer) {
		r.background = background
		r.ink = ink
	}
}

// New creates a Renderer. Cards are black on white unless WithColors is given.
func New(faces layout.FaceSource, g layout.Geometry, opts ...Option) *Renderer {
	r := &Renderer{
		faces:      faces,
		geometry:   g,
		background: color.White,
		ink:        color.Black,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Geometry returns the card geometry the renderer draws with.
func (r *Renderer) Geometry() layout.Geometry {
	return r.geometry
}

// Plan lays out c without drawing it.
func (r *Renderer) Plan(c card.Card) (*layout.Plan, error) {
	return layout.NewPlan(r.faces, r.geometry, c)
}

// Render draws c onto a new image the exact size of the card.
func (r *Renderer) Render(c card.Card) (*image.RGBA, *layout.Plan, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.geometry.Width, r.geometry.Height))
	p, err := r.Draw(gg.NewContextForRGBA(img), c)
	if err != nil {
		return nil, nil, err
	}
	return img, p, nil
}

// Draw paints c onto dc: background, corner markings, the header with its
// punches and the footer. The same card always produces the same pixels.
func (r *Renderer) Draw(dc *gg.Context, c card.Card) (*layout.Plan, error) {
	p, err := r.Plan(c)
	if err != nil {
		return nil, fmt.Errorf("error laying out card: %w", err)
	}
	face, err := p.Face(r.faces)
	if err != nil {
		return nil, err
	}

	dc.SetColor(r.background)
	dc.Clear()

	dc.SetColor(r.ink)
	r.drawCorners(dc, p.CornerCut)

	dc.SetFontFace(face)
	for _, g := range p.Glyphs {
		punchLetter(dc, g)
	}

	if p.Footer.Text != "" {
		dc.DrawString(p.Footer.Text, float64(p.Footer.Dot.X), float64(p.Footer.Dot.Y))
	}

	slog.Debug("card drawn", "header", c.Header, "footer", c.Footer, "point_size", p.PointSize)
	return p, nil
}

// drawCorners draws the clipped-corner diagonal and a tick pair at each of
// the four corners.
func (r *Renderer) drawCorners(dc *gg.Context, cut int) {
	w := float64(r.geometry.Width)
	h := float64(r.geometry.Height)
	t := float64(r.geometry.TickLength)

	dc.SetLineWidth(1)
	dc.DrawLine(0, float64(cut), float64(cut), 0)
	dc.Stroke()

	ticks := [][4]float64{
		{0, 0, t, 1}, {0, 0, 1, t}, // top left
		{w - t, 0, t, 1}, {w - 1, 0, 1, t}, // top right
		{0, h - 1, t, 1}, {0, h - t, 1, t}, // bottom left
		{w - t, h - 1, t, 1}, {w - 1, h - t, 1, t}, // bottom right
	}
	for _, tick := range ticks {
		dc.DrawRectangle(tick[0], tick[1], tick[2], tick[3])
	}
	dc.Fill()
}

// punchLetter draws one header character and a filled rectangle for each of
// its set bits, low bit first.
func punchLetter(dc *gg.Context, g layout.Glyph) {
	dc.DrawString(string(rune(g.Char)), float64(g.Dot.X), float64(g.Dot.Y))

	for _, punch := range g.Punches {
		if !punch.Set {
			continue
		}
		rect := punch.Rect
		dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	}
	dc.Fill()
}
