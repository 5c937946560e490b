package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/portfolio/internal/models"
)

const projectColumns = `id, title, description, long_description, technologies, image_url, demo_url,
	github_url, is_featured, display_order, status, created_at, updated_at`

// PostgresProjectRepository persists portfolio projects.
type PostgresProjectRepository struct {
	DB *sql.DB
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository.
func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.LongDescription, &p.Technologies,
		&p.ImageURL, &p.DemoURL, &p.GithubURL, &p.IsFeatured, &p.DisplayOrder, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns projects ordered by display_order, newest first.
func (r *PostgresProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if filter.FeaturedOnly {
		query += ` WHERE is_featured = true`
	}
	query += ` ORDER BY display_order, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// GetByID returns project id or ErrNotFound.
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	p, err := scanProject(r.DB.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// Create inserts a project. An empty status defaults to planned.
func (r *PostgresProjectRepository) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	if p.Status == "" {
		p.Status = models.StatusPlanned
	}
	created, err := scanProject(r.DB.QueryRowContext(ctx, `
		INSERT INTO projects (title, description, long_description, technologies, image_url,
			demo_url, github_url, is_featured, display_order, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+projectColumns,
		p.Title, p.Description, p.LongDescription, p.Technologies, p.ImageURL,
		p.DemoURL, p.GithubURL, p.IsFeatured, p.DisplayOrder, p.Status))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of patch to project id.
func (r *PostgresProjectRepository) Update(ctx context.Context, id int64, patch models.ProjectPatch) (*models.Project, error) {
	var set assignments
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.LongDescription != nil {
		set.add("long_description", *patch.LongDescription)
	}
	if patch.Technologies != nil {
		set.add("technologies", *patch.Technologies)
	}
	if patch.ImageURL != nil {
		set.add("image_url", *patch.ImageURL)
	}
	if patch.DemoURL != nil {
		set.add("demo_url", *patch.DemoURL)
	}
	if patch.GithubURL != nil {
		set.add("github_url", *patch.GithubURL)
	}
	if patch.IsFeatured != nil {
		set.add("is_featured", *patch.IsFeatured)
	}
	if patch.DisplayOrder != nil {
		set.add("display_order", *patch.DisplayOrder)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := set.updateQuery("projects", id, projectColumns, true)
	if err != nil {
		return nil, err
	}
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// Delete removes project id.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "projects", id)
}
