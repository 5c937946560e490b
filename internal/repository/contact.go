package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/portfolio/internal/models"
)

// ErrReadRegression is returned when a message that was already read is set back to unread.
var ErrReadRegression = errors.New("message already read")

const contactColumns = `id, name, email, subject, message, is_read, status, created_at, updated_at`

// PostgresContactRepository persists contact form submissions.
type PostgresContactRepository struct {
	DB *sql.DB
}

// NewPostgresContactRepository creates a new PostgresContactRepository.
func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{DB: db}
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns messages newest first.
func (r *PostgresContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contact: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		messages = append(messages, *c)
	}
	return messages, rows.Err()
}

// GetByID returns message id or ErrNotFound.
func (r *PostgresContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// Create stores a new unread message.
func (r *PostgresContactRepository) Create(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx, `
		INSERT INTO contact (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING `+contactColumns,
		name, email, subject, message))
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return c, nil
}

// UpdateStatus sets the status of message id and derives is_read from it.
// is_read never goes from true back to false: such a request yields ErrReadRegression.
func (r *PostgresContactRepository) UpdateStatus(ctx context.Context, id int64, status models.MessageStatus) (*models.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx, `
		UPDATE contact SET status = $1, is_read = $2, updated_at = now()
		WHERE id = $3 AND (is_read = false OR $2 = true)
		RETURNING `+contactColumns,
		status, status.IsRead(), id))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update contact status: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrReadRegression
}

// MarkRead flags message id as read. A replied message stays replied.
func (r *PostgresContactRepository) MarkRead(ctx context.Context, id int64) (*models.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx, `
		UPDATE contact
		SET is_read = true,
		    status = CASE WHEN status = 'unread' THEN 'read' ELSE status END,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+contactColumns, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// Delete removes message id.
func (r *PostgresContactRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "contact", id)
}

// Stats counts messages by state. Read counts every message with is_read set, replied included.
func (r *PostgresContactRepository) Stats(ctx context.Context) (*models.ContactStats, error) {
	var s models.ContactStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_read = false),
		       COUNT(*) FILTER (WHERE is_read = true),
		       COUNT(*) FILTER (WHERE status = 'replied')
		FROM contact`).Scan(&s.Total, &s.Unread, &s.Read, &s.Replied)
	if err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	return &s, nil
}
