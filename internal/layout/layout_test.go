package layout

import (
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/typeface"
)

// linearFace is a stand-in face whose metrics scale exactly with size:
// line height 1.2em, ascent 1em, descent 0.2em, advance 0.6em.
type linearFace struct {
	*basicfont.Face
	size int
}

func (f linearFace) Metrics() font.Metrics {
	return font.Metrics{
		Height:  scaled(f.size, 12),
		Ascent:  scaled(f.size, 10),
		Descent: scaled(f.size, 2),
	}
}

func (f linearFace) GlyphAdvance(rune) (fixed.Int26_6, bool) {
	return scaled(f.size, 6), true
}

func scaled(size, tenths int) fixed.Int26_6 {
	return fixed.Int26_6(size * 64 * tenths / 10)
}

type linearSource struct{}

func (linearSource) Face(size int) (font.Face, error) {
	return linearFace{Face: basicfont.Face7x13, size: size}, nil
}

func TestFitPointSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		headerLen int
		footerLen int
		want      int
	}{
		{name: "empty card is height bound", want: 13},
		{name: "typical email is height bound", headerLen: 17, want: 13},
		{name: "long header is width bound", headerLen: 40, want: 6},
		{name: "long footer is width bound", footerLen: 60, want: 6},
		{name: "absurd header bottoms out at one", headerLen: 1000, want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FitPointSize(linearSource{}, DefaultGeometry(), tt.headerLen, tt.footerLen)
			if err != nil {
				t.Fatalf("FitPointSize returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("FitPointSize(%d, %d) = %d, want %d", tt.headerLen, tt.footerLen, got, tt.want)
			}
		})
	}
}

func TestFitPointSizeAlwaysPositive(t *testing.T) {
	tf, err := typeface.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	defer tf.Close()

	g := DefaultGeometry()
	for _, n := range []int{0, 1, 5, 20, 50, 200, 2000} {
		size, err := FitPointSize(tf, g, n, n/2)
		if err != nil {
			t.Fatalf("FitPointSize(%d) returned error: %v", n, err)
		}
		if size < 1 {
			t.Fatalf("FitPointSize(%d) = %d, want >= 1", n, size)
		}
	}
}

func TestNewPlanPunchesForA(t *testing.T) {
	t.Parallel()

	p, err := NewPlan(linearSource{}, DefaultGeometry(), card.Card{Header: "A"})
	if err != nil {
		t.Fatalf("NewPlan returned error: %v", err)
	}

	if p.PointSize != 13 || p.CharSpacing != 11 || p.CornerCut != 25 {
		t.Fatalf("plan size/spacing/cut = %d/%d/%d, want 13/11/25", p.PointSize, p.CharSpacing, p.CornerCut)
	}
	if len(p.Glyphs) != 1 {
		t.Fatalf("got %d glyphs, want 1", len(p.Glyphs))
	}

	g := p.Glyphs[0]
	if g.Dot != image.Pt(133, 13) {
		t.Fatalf("glyph dot = %v, want (133,13)", g.Dot)
	}

	var set []int
	for _, punch := range g.Punches {
		if punch.Set {
			set = append(set, punch.Bit)
		}
	}
	if diff := cmp.Diff([]int{0, 6}, set); diff != "" {
		t.Fatalf("set bits mismatch (-want +got):\n%s", diff)
	}

	if want := image.Rect(135, 23, 137, 34); g.Punches[0].Rect != want {
		t.Fatalf("bit 0 rect = %v, want %v", g.Punches[0].Rect, want)
	}
	if want := image.Rect(135, 101, 137, 112); g.Punches[6].Rect != want {
		t.Fatalf("bit 6 rect = %v, want %v", g.Punches[6].Rect, want)
	}

	if p.Footer.Dot != image.Pt(126, 141) {
		t.Fatalf("footer dot = %v, want (126,141)", p.Footer.Dot)
	}
}

func TestNewPlanBitOrder(t *testing.T) {
	t.Parallel()

	p, err := NewPlan(linearSource{}, DefaultGeometry(), card.Card{Header: "hi@x.io"})
	if err != nil {
		t.Fatalf("NewPlan returned error: %v", err)
	}

	for _, g := range p.Glyphs {
		for i, punch := range g.Punches {
			if want := (g.Char>>i)&1 == 1; punch.Set != want {
				t.Fatalf("%q bit %d set = %v, want %v", g.Char, i, punch.Set, want)
			}
			if i > 0 && punch.Rect.Min.Y <= g.Punches[i-1].Rect.Min.Y {
				t.Fatalf("%q bit %d is not below bit %d", g.Char, i, i-1)
			}
			if punch.Rect.Min.X != g.Punches[0].Rect.Min.X {
				t.Fatalf("%q bit %d is not in the glyph's punch column", g.Char, i)
			}
		}
	}
}

func TestNewPlanStaysOnCard(t *testing.T) {
	tf, err := typeface.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	defer tf.Close()

	g := DefaultGeometry()
	bounds := image.Rect(0, 0, g.Width, g.Height)
	cases := []card.Card{
		{Header: "a@b.c"},
		{Header: "someone@example.com", Footer: "Punch Card Enthusiast"},
		{Header: "x", Footer: strings.Repeat("f", 30)},
		{Header: strings.Repeat("~", 25)},
	}

	for _, c := range cases {
		p, err := NewPlan(tf, g, c)
		if err != nil {
			t.Fatalf("NewPlan(%q) returned error: %v", c.Header, err)
		}
		for _, glyph := range p.Glyphs {
			if glyph.Dot.X < p.CornerCut {
				t.Fatalf("%q: glyph %q starts at %d, inside the corner cut", c.Header, glyph.Char, glyph.Dot.X)
			}
			for _, punch := range glyph.Punches {
				if !punch.Rect.In(bounds) {
					t.Fatalf("%q: punch %v leaves the card", c.Header, punch.Rect)
				}
			}
		}
		if p.Footer.Dot.X < 0 || p.Footer.Dot.Y > g.Height {
			t.Fatalf("%q: footer at %v leaves the card", c.Footer, p.Footer.Dot)
		}
	}
}

func TestMarginShrinksText(t *testing.T) {
	t.Parallel()

	g := DefaultGeometry()
	g.Margin = 9
	got, err := FitPointSize(linearSource{}, g, 0, 0)
	if err != nil {
		t.Fatalf("FitPointSize returned error: %v", err)
	}
	// 9 * 1.2 * 11 = 118.8 <= 126, 9 * 1.2 * 12 = 129.6 > 126
	if got != 11 {
		t.Fatalf("FitPointSize with margin = %d, want 11", got)
	}
}
