package badge

import (
	"bytes"
	"errors"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Card dimensions in millimeters: A6 landscape.
const (
	cardWidth  = 148.5
	cardHeight = 105.0
)

// RGB is a 0-255 color triple.
type RGB struct {
	R, G, B int
}

// Text alignment constants, matching gofpdf cell alignment strings.
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// ErrFinalized is returned when output is requested twice from one card.
var ErrFinalized = errors.New("card already finalized")

// Card is a single-page drawing surface for one badge. Paint operations
// apply in call order; later calls paint over earlier ones. Finalizing
// into Bytes or WriteTo is a one-way transition.
type Card struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	finalized bool
}

// NewCard creates a blank A6-landscape card with no margins.
func NewCard() *Card {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: cardWidth, Ht: cardHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	// Core fonts are cp1252; translate UTF-8 so French labels render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return &Card{pdf: pdf, translate: tr}
}

// Width returns the card width in mm.
func (c *Card) Width() float64 { return cardWidth }

// Height returns the card height in mm.
func (c *Card) Height() float64 { return cardHeight }

// SetAlpha sets the opacity for subsequent paint calls. Used only for
// decorative overlays; reset to 1 afterwards.
func (c *Card) SetAlpha(alpha float64) {
	c.pdf.SetAlpha(alpha, "Normal")
}

// FillRect paints a solid rectangle.
func (c *Card) FillRect(x, y, w, h float64, col RGB) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
	c.pdf.Rect(x, y, w, h, "F")
}

// StrokeRect paints a rectangle outline.
func (c *Card) StrokeRect(x, y, w, h float64, col RGB, lineWidth float64) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Rect(x, y, w, h, "D")
}

// FillCircle paints a solid circle centered at (x, y).
func (c *Card) FillCircle(x, y, r float64, col RGB) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
	c.pdf.Circle(x, y, r, "F")
}

// Text paints a single line of Helvetica text inside a cell of width w
// and height h, aligned per align.
func (c *Card) Text(x, y, w, h float64, align string, size float64, bold bool, col RGB, text string) {
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont("Helvetica", style, size)
	c.pdf.SetTextColor(col.R, col.G, col.B)
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.translate(text), "", 0, align, false, 0, "")
}

// ImagePNG places PNG bytes at (x, y) scaled to width w, preserving the
// aspect ratio. A nil/empty image is tolerated and leaves the region
// blank; every other paint call failure surfaces at finalize.
func (c *Card) ImagePNG(name string, png []byte, x, y, w float64) {
	if len(png) == 0 {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	c.pdf.ImageOptions(name, x, y, w, 0, false, opts, 0, "")
}

// Bytes finalizes the card into an in-memory PDF blob.
func (c *Card) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo finalizes the card and streams the PDF to w. Any error
// accumulated by earlier paint calls is surfaced here; no partial
// artifact is produced.
func (c *Card) WriteTo(w io.Writer) error {
	if c.finalized {
		return ErrFinalized
	}
	c.finalized = true
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return c.pdf.Output(w)
}
