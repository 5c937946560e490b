package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/atinyakov/portfolio/internal/models"
)

const skillColumns = `id, name, category, proficiency, icon, display_order, is_featured, created_at, updated_at`

// PostgresSkillRepository implements skill persistence against PostgreSQL.
type PostgresSkillRepository struct {
	DB *sql.DB
}

// NewPostgresSkillRepository creates a new PostgresSkillRepository.
func NewPostgresSkillRepository(db *sql.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{DB: db}
}

func scanSkill(row rowScanner) (*models.Skill, error) {
	var s models.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Proficiency, &s.Icon,
		&s.DisplayOrder, &s.IsFeatured, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns skills ordered by display_order, then name.
func (r *PostgresSkillRepository) List(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills`
	var (
		args  []any
		conds []string
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, `category = $1`)
	}
	if filter.FeaturedOnly {
		conds = append(conds, `is_featured = true`)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]models.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		skills = append(skills, *s)
	}
	return skills, rows.Err()
}

// GetByID returns a single skill or ErrNotFound.
func (r *PostgresSkillRepository) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	s, err := scanSkill(r.DB.QueryRowContext(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// Create inserts a skill and returns the stored row.
func (r *PostgresSkillRepository) Create(ctx context.Context, s models.Skill) (*models.Skill, error) {
	created, err := scanSkill(r.DB.QueryRowContext(ctx, `
		INSERT INTO skills (name, category, proficiency, icon, display_order, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+skillColumns,
		s.Name, s.Category, s.Proficiency, s.Icon, s.DisplayOrder, s.IsFeatured))
	if err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of p to skill id.
func (r *PostgresSkillRepository) Update(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error) {
	var set assignments
	if p.Name != nil {
		set.add("name", *p.Name)
	}
	if p.Category != nil {
		set.add("category", *p.Category)
	}
	if p.Proficiency != nil {
		set.add("proficiency", *p.Proficiency)
	}
	if p.Icon != nil {
		set.add("icon", *p.Icon)
	}
	if p.DisplayOrder != nil {
		set.add("display_order", *p.DisplayOrder)
	}
	if p.IsFeatured != nil {
		set.add("is_featured", *p.IsFeatured)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := set.updateQuery("skills", id, skillColumns, true)
	if err != nil {
		return nil, err
	}
	s, err := scanSkill(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// Delete removes skill id.
func (r *PostgresSkillRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "skills", id)
}
