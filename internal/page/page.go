// Package page tiles a rendered card across a printable page.
package page

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Status is the answer to a request for one page of a job.
type Status int

const (
	// Exists means the page was drawn.
	Exists Status = iota
	// NoSuchPage means the job has no page at that index.
	NoSuchPage
)

// Grid is the placement of card copies on a page.
type Grid struct {
	Columns int
	Rows    int
	Origins []image.Point // top-left of each card, row-major, relative to the printable origin
}

// Count is the number of cards the grid places.
func (g Grid) Count() int {
	return len(g.Origins)
}

// Tile fits as many cardW x cardH cards as possible into a pageW x pageH
// printable area, each card followed by spacing to its right and below. A
// page too small for a single card yields an empty grid.
func Tile(cardW, cardH, spacing int, pageW, pageH float64) Grid {
	stepX := cardW + spacing
	stepY := cardH + spacing
	if stepX <= 0 || stepY <= 0 {
		return Grid{}
	}

	g := Grid{
		Columns: int(math.Floor(pageW / float64(stepX))),
		Rows:    int(math.Floor(pageH / float64(stepY))),
	}
	if g.Columns <= 0 || g.Rows <= 0 {
		return Grid{}
	}

	g.Origins = make([]image.Point, 0, g.Columns*g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Columns; c++ {
			g.Origins = append(g.Origins, image.Pt(c*stepX, r*stepY))
		}
	}
	return g
}

// Job prints copies of one card on a single page.
type Job struct {
	Card    image.Image
	Format  Format
	Spacing int // units between neighbouring cards
}

// Grid computes the card placement for the job's format.
func (j *Job) Grid() Grid {
	b := j.Card.Bounds()
	return Tile(b.Dx(), b.Dy(), j.Spacing, j.Format.ImageableWidth(), j.Format.ImageableHeight())
}

// Pages is always one.
func (j *Job) Pages() int {
	return 1
}

// Print draws page index onto dst, which covers the whole sheet. Only page 0
// exists; any other index returns NoSuchPage without drawing.
func (j *Job) Print(dst draw.Image, index int) Status {
	if index != 0 {
		return NoSuchPage
	}

	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	grid := j.Grid()
	origin := dst.Bounds().Min.Add(image.Pt(int(j.Format.ImageableX()), int(j.Format.ImageableY())))
	src := j.Card.Bounds()
	for _, at := range grid.Origins {
		r := image.Rectangle{Min: origin.Add(at), Max: origin.Add(at).Add(src.Size())}
		draw.Draw(dst, r, j.Card, src.Min, draw.Src)
	}

	slog.Debug("page printed", "columns", grid.Columns, "rows", grid.Rows, "cards", grid.Count())
	return Exists
}

// Compose returns the job's single page as an image the size of the paper.
func (j *Job) Compose() *image.RGBA {
	p := j.Format.Paper
	img := image.NewRGBA(image.Rect(0, 0, int(math.Round(p.Width)), int(math.Round(p.Height))))
	j.Print(img, 0)
	return img
}
