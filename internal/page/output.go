package page

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

const cardImageName = "card"

// WritePNG encodes the job's page as a PNG the size of the paper.
func WritePNG(w io.Writer, j *Job) error {
	if err := png.Encode(w, j.Compose()); err != nil {
		return fmt.Errorf("error encoding page: %w", err)
	}
	return nil
}

// WritePDF writes the job as a one-page PDF sized to the paper. The card
// image is embedded once and placed at every grid origin, so each copy prints
// at its true physical size.
func WritePDF(w io.Writer, j *Job, title string) error {
	var cardPNG bytes.Buffer
	if err := png.Encode(&cardPNG, j.Card); err != nil {
		return fmt.Errorf("error encoding card: %w", err)
	}

	paper := j.Format.Paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	pdf.SetCreator("punchcard", true)
	pdf.SetTitle(title, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(cardImageName, opts, &cardPNG)

	b := j.Card.Bounds()
	x0, y0 := j.Format.ImageableX(), j.Format.ImageableY()
	for _, at := range j.Grid().Origins {
		pdf.ImageOptions(cardImageName, x0+float64(at.X), y0+float64(at.Y), float64(b.Dx()), float64(b.Dy()), false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing pdf: %w", err)
	}
	return nil
}
