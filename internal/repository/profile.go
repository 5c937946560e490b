package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/portfolio/internal/models"
)

const profileColumns = `id, name, title, bio, email, phone, location, linkedin_url, github_url,
	resume_url, profile_image_url, updated_at`

// PostgresProfileRepository stores the single personal_info row.
type PostgresProfileRepository struct {
	DB *sql.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

func scanProfile(row rowScanner) (*models.PersonalInfo, error) {
	var p models.PersonalInfo
	err := row.Scan(&p.ID, &p.Name, &p.Title, &p.Bio, &p.Email, &p.Phone, &p.Location,
		&p.LinkedinURL, &p.GithubURL, &p.ResumeURL, &p.ProfileImageURL, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the profile, or nil when none has been saved yet.
func (r *PostgresProfileRepository) Get(ctx context.Context) (*models.PersonalInfo, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM personal_info ORDER BY id LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Upsert updates the existing profile row or inserts the first one.
// The lookup and the write share a transaction that locks the table.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p models.PersonalInfo) (*models.PersonalInfo, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE personal_info IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return nil, fmt.Errorf("lock personal_info: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM personal_info ORDER BY id LIMIT 1`).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = 0
	case err != nil:
		return nil, fmt.Errorf("find profile: %w", err)
	}

	args := []any{p.Name, p.Title, p.Bio, p.Email, p.Phone, p.Location,
		p.LinkedinURL, p.GithubURL, p.ResumeURL, p.ProfileImageURL}

	var row *sql.Row
	if id == 0 {
		row = tx.QueryRowContext(ctx, `
			INSERT INTO personal_info (name, title, bio, email, phone, location,
				linkedin_url, github_url, resume_url, profile_image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING `+profileColumns, args...)
	} else {
		row = tx.QueryRowContext(ctx, `
			UPDATE personal_info SET name = $1, title = $2, bio = $3, email = $4, phone = $5,
				location = $6, linkedin_url = $7, github_url = $8, resume_url = $9,
				profile_image_url = $10, updated_at = now()
			WHERE id = $11
			RETURNING `+profileColumns, append(args, id)...)
	}

	saved, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}
