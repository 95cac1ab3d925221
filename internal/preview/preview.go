package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Options control the size of the terminal rendition.
type Options struct {
	Width     int  // terminal columns
	Height    int  // terminal rows; each row shows two pixel rows
	TrueColor bool // emit 24-bit color escapes, plain blocks otherwise
}

// FitWidth returns options that show img in at most cols columns while
// keeping its aspect ratio. Terminal cells are about twice as tall as wide.
func FitWidth(img image.Image, cols int) Options {
	b := img.Bounds()
	if cols > b.Dx() {
		cols = b.Dx()
	}
	rows := cols * b.Dy() / b.Dx() / 2
	return Options{Width: cols, Height: max(rows, 1), TrueColor: true}
}

// ANSI converts an image to half-block art: each cell is an upper half block
// whose foreground is the top pixel pair and background the bottom pair.
func ANSI(img image.Image, opts Options) string {
	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(opts.Width*2), uint(opts.Height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < opts.Height*2; y += 2 {
		for x := 0; x < opts.Width*2; x += 2 {
			c1 := colorAt(resized, x, y)
			c2 := colorAt(resized, x+1, y)
			c3 := colorAt(resized, x, y+1)
			c4 := colorAt(resized, x+1, y+1)

			upper := average(c1, c2)
			lower := average(c3, c4)

			buffer.WriteString(cell('▀', toColor(upper), toColor(lower), opts.TrueColor))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// colorAt returns the color at a specific coordinate, black outside the image
func colorAt(img image.Image, x, y int) colorful.Color {
	b := img.Bounds()
	if !(image.Point{X: x, Y: y}.In(b)) {
		return colorful.Color{}
	}
	c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
	return c
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

func toColor(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func cell(ch rune, fg, bg color.RGBA, trueColor bool) string {
	if trueColor {
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
			fg.R, fg.G, fg.B, bg.R, bg.G, bg.B, ch)
	}

	// Without color, pick a block by lightness so the punches still show.
	light := func(c color.RGBA) bool { return int(c.R)+int(c.G)+int(c.B) > 3*128 }
	switch {
	case light(fg) && light(bg):
		return " "
	case light(fg):
		return "▄"
	case light(bg):
		return "▀"
	default:
		return "█"
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
