package models

import "time"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	StatusCompleted  ProjectStatus = "completed"
	StatusInProgress ProjectStatus = "in-progress"
	StatusPlanned    ProjectStatus = "planned"
)

// Project is a showcased piece of work.
type Project struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	LongDescription *string       `json:"long_description"`
	Technologies    StringList    `json:"technologies"`
	ImageURL        *string       `json:"image_url"`
	DemoURL         *string       `json:"demo_url"`
	GithubURL       *string       `json:"github_url"`
	IsFeatured      bool          `json:"is_featured"`
	DisplayOrder    int           `json:"display_order"`
	Status          ProjectStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	FeaturedOnly bool
}

// ProjectPatch carries the fields of a partial project update.
type ProjectPatch struct {
	Title           *string
	Description     *string
	LongDescription *string
	Technologies    *StringList
	ImageURL        *string
	DemoURL         *string
	GithubURL       *string
	IsFeatured      *bool
	DisplayOrder    *int
	Status          *ProjectStatus
}
