package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/portfolio/internal/models"
)

const experienceColumns = `id, title, company, location, start_date, end_date, is_current, description,
	responsibilities, technologies, display_order, created_at, updated_at`

// PostgresExperienceRepository persists work history entries.
type PostgresExperienceRepository struct {
	DB *sql.DB
}

// NewPostgresExperienceRepository creates a new PostgresExperienceRepository.
func NewPostgresExperienceRepository(db *sql.DB) *PostgresExperienceRepository {
	return &PostgresExperienceRepository{DB: db}
}

func scanExperience(row rowScanner) (*models.Experience, error) {
	var (
		e   models.Experience
		end models.Date
		has sql.NullTime
	)
	err := row.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate, &has, &e.IsCurrent,
		&e.Description, &e.Responsibilities, &e.Technologies, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if has.Valid {
		end = models.NewDate(has.Time)
		e.EndDate = &end
	}
	e.Normalize()
	return &e, nil
}

// List returns entries ordered by display_order, most recent start first.
func (r *PostgresExperienceRepository) List(ctx context.Context) ([]models.Experience, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+experienceColumns+` FROM experience ORDER BY display_order, start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	defer rows.Close()

	items := make([]models.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// GetByID returns entry id or ErrNotFound.
func (r *PostgresExperienceRepository) GetByID(ctx context.Context, id int64) (*models.Experience, error) {
	e, err := scanExperience(r.DB.QueryRowContext(ctx,
		`SELECT `+experienceColumns+` FROM experience WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// Create inserts an entry. A current position never keeps an end date.
func (r *PostgresExperienceRepository) Create(ctx context.Context, e models.Experience) (*models.Experience, error) {
	e.Normalize()
	var end any
	if e.EndDate != nil {
		end = *e.EndDate
	}
	created, err := scanExperience(r.DB.QueryRowContext(ctx, `
		INSERT INTO experience (title, company, location, start_date, end_date, is_current,
			description, responsibilities, technologies, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+experienceColumns,
		e.Title, e.Company, e.Location, e.StartDate, end, e.IsCurrent,
		e.Description, e.Responsibilities, e.Technologies, e.DisplayOrder))
	if err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return created, nil
}

// Update applies p to entry id. Setting is_current clears end_date.
func (r *PostgresExperienceRepository) Update(ctx context.Context, id int64, p models.ExperiencePatch) (*models.Experience, error) {
	p.Normalize()

	var set assignments
	if p.Title != nil {
		set.add("title", *p.Title)
	}
	if p.Company != nil {
		set.add("company", *p.Company)
	}
	if p.Location != nil {
		set.add("location", *p.Location)
	}
	if p.StartDate != nil {
		set.add("start_date", *p.StartDate)
	}
	switch {
	case p.ClearEndDate:
		set.add("end_date", nil)
	case p.EndDate != nil:
		set.add("end_date", *p.EndDate)
	}
	if p.IsCurrent != nil {
		set.add("is_current", *p.IsCurrent)
	}
	if p.Description != nil {
		set.add("description", *p.Description)
	}
	if p.Responsibilities != nil {
		set.add("responsibilities", *p.Responsibilities)
	}
	if p.Technologies != nil {
		set.add("technologies", *p.Technologies)
	}
	if p.DisplayOrder != nil {
		set.add("display_order", *p.DisplayOrder)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := set.updateQuery("experience", id, experienceColumns, true)
	if err != nil {
		return nil, err
	}
	e, err := scanExperience(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// Delete removes entry id.
func (r *PostgresExperienceRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "experience", id)
}
