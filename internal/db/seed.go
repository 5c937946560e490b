package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type seedStatement struct {
	query string
	args  []any
}

var sampleData = map[string][]seedStatement{
	"skills": {
		{`INSERT INTO skills (name, category, proficiency, display_order, is_featured) VALUES ($1, $2, $3, $4, $5)`,
			[]any{"Go", "backend", 90, 1, true}},
		{`INSERT INTO skills (name, category, proficiency, display_order, is_featured) VALUES ($1, $2, $3, $4, $5)`,
			[]any{"PostgreSQL", "backend", 80, 2, true}},
		{`INSERT INTO skills (name, category, proficiency, display_order, is_featured) VALUES ($1, $2, $3, $4, $5)`,
			[]any{"React", "frontend", 75, 3, false}},
		{`INSERT INTO skills (name, category, proficiency, display_order, is_featured) VALUES ($1, $2, $3, $4, $5)`,
			[]any{"Docker", "tools", 70, 4, false}},
	},
	"experience": {
		{`INSERT INTO experience (title, company, location, start_date, end_date, is_current, description, responsibilities, technologies, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			[]any{"Backend Engineer", "Acme Corp", "Remote", "2022-03-01", nil, true,
				"Builds and operates the public API.",
				pq.StringArray{"Designed REST endpoints", "Owned the Postgres schema"},
				pq.StringArray{"Go", "PostgreSQL", "Docker"}, 1}},
		{`INSERT INTO experience (title, company, location, start_date, end_date, is_current, description, responsibilities, technologies, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			[]any{"Web Developer", "Studio Nine", "Berlin", "2019-06-01", "2022-02-28", false,
				"Delivered client websites.",
				pq.StringArray{"Built marketing sites", "Maintained CI pipelines"},
				pq.StringArray{"TypeScript", "React"}, 2}},
	},
	"projects": {
		{`INSERT INTO projects (title, description, technologies, github_url, is_featured, display_order, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			[]any{"Portfolio API", "The backend serving this site.", pq.StringArray{"Go", "chi", "PostgreSQL"},
				"https://github.com/example/portfolio", true, 1, "completed"}},
		{`INSERT INTO projects (title, description, technologies, is_featured, display_order, status)
VALUES ($1, $2, $3, $4, $5, $6)`,
			[]any{"Home Dashboard", "Self-hosted metrics for the flat.", pq.StringArray{"Go", "SQLite"}, false, 2, "in-progress"}},
	},
	"personal_info": {
		{`INSERT INTO personal_info (name, title, bio, email, location) VALUES ($1, $2, $3, $4, $5)`,
			[]any{"Jane Doe", "Software Engineer", "I build reliable backends.", "jane@example.com", "Remote"}},
	},
}

// seedOrder keeps inserts deterministic.
var seedOrder = []string{"skills", "experience", "projects", "personal_info"}

// Seed inserts sample rows into every content table that is still empty.
// It returns the names of the tables it filled.
func Seed(ctx context.Context, db *sql.DB) ([]string, error) {
	var filled []string
	for _, table := range seedOrder {
		var count int64
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
			return filled, fmt.Errorf("count %s: %w", table, err)
		}
		if count > 0 {
			continue
		}
		for _, st := range sampleData[table] {
			if _, err := db.ExecContext(ctx, st.query, st.args...); err != nil {
				return filled, fmt.Errorf("seed %s: %w", table, err)
			}
		}
		filled = append(filled, table)
	}
	return filled, nil
}
