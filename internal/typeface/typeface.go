package typeface

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DPI is fixed so that one point equals one card unit.
const DPI = 72

// DefaultName names the embedded face used when no font path is configured.
const DefaultName = "Go Mono"

const faceCacheSize = 64

var (
	// ErrNotMonospace means printable ASCII glyphs have differing advances.
	ErrNotMonospace = errors.New("font is not monospace")
	// ErrNonMonotonic means a metric shrank while the point size grew.
	ErrNonMonotonic = errors.New("font metrics do not grow with point size")
)

// Typeface is a parsed font plus a cache of faces by point size. It is built
// once at startup and handed to whatever needs to measure or draw text.
// A Typeface is not safe for concurrent use.
type Typeface struct {
	Name string

	font  *opentype.Font
	faces *lru.Cache[int, font.Face]
}

// Parse builds a Typeface from TrueType or OpenType data.
func Parse(name string, data []byte) (*Typeface, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing font %s: %w", name, err)
	}

	faces, err := lru.NewWithEvict[int, font.Face](faceCacheSize, func(_ int, face font.Face) {
		face.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("error creating face cache: %w", err)
	}

	return &Typeface{
		Name:  name,
		font:  f,
		faces: faces,
	}, nil
}

// Load reads a font file. An empty path selects the embedded Go Mono face.
func Load(path string) (*Typeface, error) {
	if path == "" {
		return Parse(DefaultName, gomono.TTF)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading font file: %w", err)
	}
	return Parse(filepath.Base(path), data)
}

// Face returns the face for size points, creating it on first use.
func (t *Typeface) Face(size int) (font.Face, error) {
	if face, ok := t.faces.Get(size); ok {
		return face, nil
	}

	face, err := opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating %s face at %dpt: %w", t.Name, size, err)
	}

	t.faces.Add(size, face)
	return face, nil
}

// Close releases every cached face.
func (t *Typeface) Close() {
	t.faces.Purge()
}

// Verify checks the preconditions of the font-fit search: all printable ASCII
// glyphs share one advance, and line height, ascent and advance never shrink
// as the point size grows from 1 to maxSize.
func (t *Typeface) Verify(maxSize int) error {
	var prev Metrics
	for size := 1; size <= maxSize; size++ {
		face, err := t.Face(size)
		if err != nil {
			return err
		}

		m, err := Measure(face)
		if err != nil {
			return fmt.Errorf("%s at %dpt: %w", t.Name, size, err)
		}

		if size > 1 && (m.LineHeight < prev.LineHeight || m.Ascent < prev.Ascent || m.Advance < prev.Advance) {
			return fmt.Errorf("%s at %dpt: %w", t.Name, size, ErrNonMonotonic)
		}
		prev = m
	}
	return nil
}

// Metrics are the measurements the layout needs from a face.
type Metrics struct {
	LineHeight fixed.Int26_6
	Ascent     fixed.Int26_6
	Descent    fixed.Int26_6
	Advance    fixed.Int26_6 // shared advance of every printable ASCII glyph
}

// Measure reads the metrics of face and checks that it is monospace over
// printable ASCII.
func Measure(face font.Face) (Metrics, error) {
	fm := face.Metrics()
	m := Metrics{
		LineHeight: fm.Height,
		Ascent:     fm.Ascent,
		Descent:    fm.Descent,
	}

	for r := rune(0x20); r < 0x7f; r++ {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		if m.Advance == 0 {
			m.Advance = adv
		} else if adv != m.Advance {
			return Metrics{}, fmt.Errorf("glyph %q advance %v differs from %v: %w", r, adv, m.Advance, ErrNotMonospace)
		}
	}
	return m, nil
}
