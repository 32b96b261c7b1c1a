package registration

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrAlreadyDecided is returned when a decision targets a registration
// that has already been approved or rejected.
var ErrAlreadyDecided = errors.New("registration already decided")

// Store is the persistence surface the service needs. *Repository
// implements it; tests use an in-memory fake.
type Store interface {
	Insert(ctx context.Context, reg Registrant) (Registrant, error)
	GetByID(ctx context.Context, id string) (Registrant, error)
	GetByBadgeID(ctx context.Context, badgeID string) (Registrant, error)
	FindByEmail(ctx context.Context, email string) (Registrant, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Registrant, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	SetEmailSent(ctx context.Context, id string, sent bool) error
}

// Service coordinates registration intake and admin decisions.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register validates a submission, assigns the badge token, and persists
// the registration as pending.
func (s *Service) Register(ctx context.Context, reg Registrant) (Registrant, error) {
	reg.FamilyName = strings.TrimSpace(reg.FamilyName)
	reg.GivenName = strings.TrimSpace(reg.GivenName)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Phone = strings.TrimSpace(reg.Phone)
	if reg.FamilyName == "" || reg.GivenName == "" {
		return Registrant{}, errors.New("nom and prenom required")
	}
	if reg.Email == "" || !strings.Contains(reg.Email, "@") {
		return Registrant{}, errors.New("valid email required")
	}
	if reg.Phone == "" {
		return Registrant{}, errors.New("telephone required")
	}

	reg.ID = uuid.NewString()
	reg.BadgeID = uuid.NewString()
	reg.Status = StatusPending
	reg.EmailSent = false
	return s.store.Insert(ctx, reg)
}

// Decide applies an admin decision. Decisions are terminal: once a
// registration is approved or rejected it cannot be re-decided.
func (s *Service) Decide(ctx context.Context, id string, decision Status) (Registrant, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return Registrant{}, errors.New("decision must be APPROVED or REJECTED")
	}
	reg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Registrant{}, err
	}
	if reg.Status.Decided() {
		return Registrant{}, ErrAlreadyDecided
	}
	if err := s.store.UpdateStatus(ctx, id, decision); err != nil {
		return Registrant{}, err
	}
	reg.Status = decision
	reg.EmailSent = false
	return reg, nil
}

// CheckStatus looks up the most recent registration for an email address.
func (s *Service) CheckStatus(ctx context.Context, email string) (Registrant, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Registrant{}, errors.New("email required")
	}
	return s.store.FindByEmail(ctx, email)
}

// MarkNotified records a successful decision notification.
func (s *Service) MarkNotified(ctx context.Context, id string) error {
	return s.store.SetEmailSent(ctx, id, true)
}
