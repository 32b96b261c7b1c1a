package contact

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a public contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"nom"`
	Email     string    `json:"email"`
	Subject   string    `json:"sujet"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists contact messages in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new message.
func (r *Repository) Insert(ctx context.Context, msg Message) (Message, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Body = strings.TrimSpace(msg.Body)
	if msg.Name == "" || msg.Email == "" || msg.Body == "" {
		return Message{}, errors.New("nom, email and message required")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (id, nom, email, sujet, message)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Body)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// List returns messages, newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nom, email, sujet, message, created_at
		FROM messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, msg)
	}
	return res, rows.Err()
}
