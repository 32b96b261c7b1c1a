package badge

import (
	"encoding/json"
	"errors"

	qrcode "github.com/skip2/go-qrcode"

	"festreg/internal/registration"
)

// Payload is the canonical QR content embedded in a badge. Keys are
// abbreviated to keep QR density low; the validity flag is derived from
// the registration status, never set independently.
type Payload struct {
	ID    string `json:"id"`
	Badge string `json:"b"`
	Valid bool   `json:"v"`
}

// NewPayload derives the QR payload from a registrant.
func NewPayload(reg registration.Registrant) Payload {
	return Payload{
		ID:    reg.ID,
		Badge: reg.BadgeID,
		Valid: reg.Status.Valid(),
	}
}

// Encode returns the minified JSON form. Deterministic: identical
// registrant data yields byte-identical output.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// ParsePayload decodes scanned QR content. Badges printed before the
// schema was abbreviated used verbose keys (badge_id, valid); both
// shapes are accepted as equivalent.
func ParsePayload(raw []byte) (Payload, error) {
	var wire struct {
		ID      string `json:"id"`
		Badge   string `json:"b"`
		BadgeID string `json:"badge_id"`
		Valid   *bool  `json:"v"`
		ValidL  *bool  `json:"valid"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Payload{}, err
	}
	if wire.ID == "" {
		return Payload{}, errors.New("qr payload missing id")
	}
	p := Payload{ID: wire.ID, Badge: wire.Badge}
	if p.Badge == "" {
		p.Badge = wire.BadgeID
	}
	switch {
	case wire.Valid != nil:
		p.Valid = *wire.Valid
	case wire.ValidL != nil:
		p.Valid = *wire.ValidL
	}
	return p, nil
}

// QREncoder renders text content into a PNG of the given pixel size.
// Injectable so encode failures can be exercised in tests.
type QREncoder func(content string, size int) ([]byte, error)

func encodeQRPNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
