package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no registration matches the lookup.
var ErrNotFound = errors.New("registration not found")

// Repository persists registrations in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const registrantColumns = `id, nom, prenom, email, telephone, profile, organisation, fonction, region, besoins, specific_data, status, badge_id, email_sent, created_at, updated_at`

// Insert writes a new registration.
func (r *Repository) Insert(ctx context.Context, reg Registrant) (Registrant, error) {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.BadgeID == "" {
		reg.BadgeID = uuid.NewString()
	}
	if reg.Status == "" {
		reg.Status = StatusPending
	}
	if len(reg.SpecificData) == 0 {
		reg.SpecificData = []byte("{}")
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO inscriptions (id, nom, prenom, email, telephone, profile, organisation, fonction, region, besoins, specific_data, status, badge_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at
	`, reg.ID, reg.FamilyName, reg.GivenName, reg.Email, reg.Phone, string(reg.Profile),
		reg.Organisation, reg.Role, reg.Region, reg.Needs, string(reg.SpecificData),
		string(reg.Status), reg.BadgeID)
	if err := row.Scan(&reg.CreatedAt, &reg.UpdatedAt); err != nil {
		return Registrant{}, err
	}
	return reg, nil
}

// GetByID returns a single registration by record id.
func (r *Repository) GetByID(ctx context.Context, id string) (Registrant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+registrantColumns+` FROM inscriptions WHERE id = $1
	`, id)
	return scanRegistrant(row)
}

// GetByBadgeID returns a single registration by its badge token.
func (r *Repository) GetByBadgeID(ctx context.Context, badgeID string) (Registrant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+registrantColumns+` FROM inscriptions WHERE badge_id = $1
	`, badgeID)
	return scanRegistrant(row)
}

// FindByEmail returns the most recent registration for an email address.
func (r *Repository) FindByEmail(ctx context.Context, email string) (Registrant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+registrantColumns+` FROM inscriptions
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, email)
	return scanRegistrant(row)
}

// List returns registrations, newest first, with an optional status filter.
func (r *Repository) List(ctx context.Context, status Status, limit, offset int) ([]Registrant, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + registrantColumns + ` FROM inscriptions`
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, string(status))
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Registrant
	for rows.Next() {
		reg, err := scanRegistrant(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, reg)
	}
	return res, rows.Err()
}

// UpdateStatus records an admin decision and resets the notification flag.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inscriptions
		SET status = $2, email_sent = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id, string(status))
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetEmailSent marks whether the decision notification was delivered.
func (r *Repository) SetEmailSent(ctx context.Context, id string, sent bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inscriptions SET email_sent = $2, updated_at = NOW() WHERE id = $1
	`, id, sent)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistrant(row rowScanner) (Registrant, error) {
	var (
		reg          Registrant
		profile      string
		status       string
		specificData []byte
	)
	err := row.Scan(&reg.ID, &reg.FamilyName, &reg.GivenName, &reg.Email, &reg.Phone,
		&profile, &reg.Organisation, &reg.Role, &reg.Region, &reg.Needs, &specificData,
		&status, &reg.BadgeID, &reg.EmailSent, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Registrant{}, ErrNotFound
		}
		return Registrant{}, err
	}
	reg.Profile = Profile(profile)
	reg.Status = Status(status)
	reg.SpecificData = specificData
	return reg, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
