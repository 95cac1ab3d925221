package page

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPaper is returned by LookupPaper for names it does not know.
var ErrUnknownPaper = errors.New("unknown paper size")

// Paper is a sheet size in points (1/72 inch), portrait orientation.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

var papers = map[string]Paper{
	"letter":  {Name: "letter", Width: 612, Height: 792},
	"legal":   {Name: "legal", Width: 612, Height: 1008},
	"tabloid": {Name: "tabloid", Width: 792, Height: 1224},
	"a4":      {Name: "a4", Width: 595, Height: 842},
	"a5":      {Name: "a5", Width: 420, Height: 595},
}

// LookupPaper finds a paper size by case-insensitive name.
func LookupPaper(name string) (Paper, error) {
	p, ok := papers[strings.ToLower(name)]
	if !ok {
		return Paper{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownPaper, name, strings.Join(PaperNames(), ", "))
	}
	return p, nil
}

// PaperNames lists the known paper names in sorted order.
func PaperNames() []string {
	names := make([]string, 0, len(papers))
	for name := range papers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Landscape returns the paper rotated a quarter turn.
func (p Paper) Landscape() Paper {
	return Paper{Name: p.Name, Width: p.Height, Height: p.Width}
}

// Format is a paper with a uniform unprintable margin, the way a print dialog
// reports it.
type Format struct {
	Paper  Paper
	Margin float64
}

// ImageableX is the left edge of the printable area.
func (f Format) ImageableX() float64 { return f.Margin }

// ImageableY is the top edge of the printable area.
func (f Format) ImageableY() float64 { return f.Margin }

// ImageableWidth is the printable width, never negative.
func (f Format) ImageableWidth() float64 {
	return max(f.Paper.Width-2*f.Margin, 0)
}

// ImageableHeight is the printable height, never negative.
func (f Format) ImageableHeight() float64 {
	return max(f.Paper.Height-2*f.Margin, 0)
}
