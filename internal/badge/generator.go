package badge

import (
	"io"
	"log"
	"strings"

	"festreg/internal/registration"
)

// Fixed badge palette.
var (
	white      = RGB{255, 255, 255}
	ink        = RGB{0, 0, 0}
	deepGreen  = RGB{22, 101, 52} // header, footer fallback accent
	slate      = RGB{55, 65, 81}
	slateMuted = RGB{107, 114, 128}
	refGray    = RGB{156, 163, 175}
	hairline   = RGB{229, 231, 235}
)

// Event constants printed on every badge.
const (
	eventBrand   = "FIAA 2026"
	eventCaption = "15 - 20 Avril • Lomé, Togo"
	eventDates   = "15 - 20 Avril 2026"
	eventSite    = "www.fiaa-togo.com"
)

// accentColor resolves the badge theme from the profile. Unknown or
// missing profiles map to the deep green default.
func accentColor(p registration.Profile) RGB {
	switch p {
	case registration.ProfileFarmer:
		return RGB{5, 150, 105}
	case registration.ProfileStartup:
		return RGB{37, 99, 235}
	case registration.ProfilePartner:
		return RGB{217, 119, 6}
	case registration.ProfileVisitor:
		return RGB{147, 51, 234}
	case registration.ProfileMedia:
		return RGB{234, 179, 8}
	default:
		return deepGreen
	}
}

// Generator renders registrant badges. Safe for concurrent use: each
// render creates its own card.
type Generator struct {
	qr QREncoder
}

// NewGenerator creates a generator using the default QR encoder.
func NewGenerator() *Generator {
	return &Generator{qr: encodeQRPNG}
}

// NewGeneratorWithQR creates a generator with a custom QR encoder.
func NewGeneratorWithQR(qr QREncoder) *Generator {
	return &Generator{qr: qr}
}

// Render produces the badge PDF as an in-memory blob, for downloads and
// email attachments.
func (g *Generator) Render(reg registration.Registrant) ([]byte, error) {
	card := NewCard()
	g.compose(card, reg)
	return card.Bytes()
}

// RenderTo streams the badge PDF directly to w, for HTTP responses.
func (g *Generator) RenderTo(w io.Writer, reg registration.Registrant) error {
	card := NewCard()
	g.compose(card, reg)
	return card.WriteTo(w)
}

// compose issues the paint sequence, back to front.
func (g *Generator) compose(card *Card, reg registration.Registrant) {
	accent := accentColor(reg.Profile)
	w, h := card.Width(), card.Height()

	// Background and decorative shapes. The overlays are cosmetic and
	// sit behind everything that matters.
	card.FillRect(0, 0, w, h, white)
	card.SetAlpha(0.06)
	card.FillCircle(w-20, h-8, 30, accent)
	card.FillCircle(38, -8, 22, deepGreen)
	card.SetAlpha(1)

	// Accent strip and hairline separator.
	card.FillRect(0, 0, 10, h, accent)
	card.FillRect(10, 0, 1.2, h, hairline)

	// Header band.
	card.FillRect(11.2, 0, w-11.2, 14, deepGreen)
	card.Text(15, 4, 60, 6, AlignLeft, 14, true, white, eventBrand)
	card.Text(w-73, 5, 66, 4, AlignRight, 8, false, white, eventCaption)

	// Profile chip.
	card.FillRect(16, 21, 42, 8, accent)
	card.Text(16, 23, 42, 4, AlignCenter, 9, true, white, reg.Profile.Label())

	// Name block, the dominant element.
	card.Text(16, 34, 92, 8, AlignLeft, 19, true, ink, reg.GivenName)
	card.Text(16, 43, 92, 8, AlignLeft, 19, true, ink, strings.ToUpper(reg.FamilyName))

	// Optional detail lines, fixed line height.
	y := 56.0
	for _, line := range detailLines(reg) {
		card.Text(16, y, 92, 5, AlignLeft, line.size, line.bold, line.color, line.text)
		y += 5.5
	}

	// QR region, top right, with a thin border and the short reference
	// below. An encode failure leaves the image area blank; the badge
	// still finalizes with every other region intact.
	const qrSize = 26.0
	qrX, qrY := w-qrSize-8, 18.0
	card.StrokeRect(qrX-1, qrY-1, qrSize+2, qrSize+2, hairline, 0.3)
	if payload, err := NewPayload(reg).Encode(); err != nil {
		log.Printf("badge: qr payload for %s failed: %v", reg.ID, err)
	} else if png, err := g.qr(string(payload), 256); err != nil {
		log.Printf("badge: qr encode for %s failed: %v", reg.ID, err)
	} else {
		card.ImagePNG("qr", png, qrX, qrY, qrSize)
	}
	card.Text(qrX-1, qrY+qrSize+2, qrSize+2, 4, AlignCenter, 7, false, refGray, "ID: "+reg.BadgeRef())

	// Footer band.
	card.FillRect(0, h-9, w, 9, accent)
	card.Text(16, h-6.5, 60, 4, AlignLeft, 8, false, white, eventDates)
	card.Text(w-70, h-6.5, 62, 4, AlignRight, 8, false, white, eventSite)
}

type detailLine struct {
	text  string
	size  float64
	bold  bool
	color RGB
}

// detailLines collects the optional organisation/role/region lines,
// skipping empty fields. Each line is independently present; omitting
// one never shifts the others out of the stack order.
func detailLines(reg registration.Registrant) []detailLine {
	var lines []detailLine
	if reg.Organisation != "" {
		lines = append(lines, detailLine{reg.Organisation, 10, true, slate})
	}
	if reg.Role != "" {
		lines = append(lines, detailLine{reg.Role, 9, false, slateMuted})
	}
	if reg.Region != "" {
		lines = append(lines, detailLine{strings.ToUpper(reg.Region), 9, false, slateMuted})
	}
	return lines
}
