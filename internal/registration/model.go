package registration

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the review state of a registration. Values are uppercase on
// the wire and in the database.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether a badge carrying this status grants entry.
// Derived, never stored: only an approved registration is valid.
func (s Status) Valid() bool {
	return s == StatusApproved
}

// Decided reports whether an admin has already ruled on the registration.
func (s Status) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseDecision validates an admin decision value. Only the two terminal
// states are acceptable decisions.
func ParseDecision(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("invalid decision %q", raw)
	}
}

// Profile classifies a registrant and drives the badge visual theme.
type Profile string

const (
	ProfileFarmer  Profile = "agriculteur"
	ProfileStartup Profile = "startup"
	ProfilePartner Profile = "partenaire"
	ProfileVisitor Profile = "visiteur"
	ProfileMedia   Profile = "media"
)

// Label is the chip text printed on the badge. An absent profile falls
// back to the visitor label.
func (p Profile) Label() string {
	if p == "" {
		return strings.ToUpper(string(ProfileVisitor))
	}
	return strings.ToUpper(string(p))
}

// Registrant is a festival registration record. JSON field names match
// the public form payload.
type Registrant struct {
	ID           string          `json:"id"`
	FamilyName   string          `json:"nom"`
	GivenName    string          `json:"prenom"`
	Email        string          `json:"email"`
	Phone        string          `json:"telephone"`
	Profile      Profile         `json:"profile"`
	Organisation string          `json:"organisation,omitempty"`
	Role         string          `json:"fonction,omitempty"`
	Region       string          `json:"region,omitempty"`
	Needs        string          `json:"besoins,omitempty"`
	SpecificData json.RawMessage `json:"specific_data,omitempty"`
	Status       Status          `json:"status"`
	BadgeID      string          `json:"badge_id"`
	EmailSent    bool            `json:"email_sent"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FullName returns "Prénom Nom" for emails and scanner confirmations.
func (r Registrant) FullName() string {
	return strings.TrimSpace(r.GivenName + " " + r.FamilyName)
}

// BadgeFilename is the download/attachment name for the badge PDF.
func (r Registrant) BadgeFilename() string {
	return fmt.Sprintf("badge-%s-%s.pdf", r.GivenName, r.FamilyName)
}

// BadgeRef is the short human-readable reference printed under the QR
// code: the first segment of the badge token. A registration without a
// token renders the literal placeholder instead of failing.
func (r Registrant) BadgeRef() string {
	if r.BadgeID == "" {
		return "N/A"
	}
	if i := strings.IndexByte(r.BadgeID, '-'); i > 0 {
		return r.BadgeID[:i]
	}
	return r.BadgeID
}
