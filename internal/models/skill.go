package models

import "time"

// SkillCategory groups skills on the public page.
type SkillCategory string

const (
	CategoryFrontend SkillCategory = "frontend"
	CategoryBackend  SkillCategory = "backend"
	CategoryTools    SkillCategory = "tools"
	CategoryOther    SkillCategory = "other"
)

// Skill is a single entry of the skills section.
type Skill struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
	// Proficiency is a percentage in [0, 100].
	Proficiency  int       `json:"proficiency"`
	Icon         *string   `json:"icon"`
	DisplayOrder int       `json:"display_order"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SkillFilter narrows a skill listing. Set fields combine; the zero value lists everything.
type SkillFilter struct {
	Category     SkillCategory
	FeaturedOnly bool
}

// SkillPatch carries the fields of a partial skill update; nil fields are left untouched.
type SkillPatch struct {
	Name         *string
	Category     *SkillCategory
	Proficiency  *int
	Icon         *string
	DisplayOrder *int
	IsFeatured   *bool
}
