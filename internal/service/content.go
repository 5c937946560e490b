package service

import (
	"context"

	"github.com/atinyakov/portfolio/internal/models"
)

// SkillRepository defines the persistence operations required by SkillService.
type SkillRepository interface {
	List(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error)
	GetByID(ctx context.Context, id int64) (*models.Skill, error)
	Create(ctx context.Context, s models.Skill) (*models.Skill, error)
	Update(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error)
	Delete(ctx context.Context, id int64) error
}

// SkillService manages the skills section.
type SkillService struct {
	repo SkillRepository
}

// NewSkillService constructs a SkillService.
func NewSkillService(repo SkillRepository) *SkillService {
	return &SkillService{repo: repo}
}

func (s *SkillService) List(ctx context.Context) ([]models.Skill, error) {
	return s.repo.List(ctx, models.SkillFilter{})
}

func (s *SkillService) Featured(ctx context.Context) ([]models.Skill, error) {
	return s.repo.List(ctx, models.SkillFilter{FeaturedOnly: true})
}

func (s *SkillService) ByCategory(ctx context.Context, category models.SkillCategory) ([]models.Skill, error) {
	return s.repo.List(ctx, models.SkillFilter{Category: category})
}

func (s *SkillService) Get(ctx context.Context, id int64) (*models.Skill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SkillService) Create(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	return s.repo.Create(ctx, skill)
}

func (s *SkillService) Update(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *SkillService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ExperienceRepository defines the persistence operations required by ExperienceService.
type ExperienceRepository interface {
	List(ctx context.Context) ([]models.Experience, error)
	GetByID(ctx context.Context, id int64) (*models.Experience, error)
	Create(ctx context.Context, e models.Experience) (*models.Experience, error)
	Update(ctx context.Context, id int64, p models.ExperiencePatch) (*models.Experience, error)
	Delete(ctx context.Context, id int64) error
}

// ExperienceService manages work history. A current position never carries an end date.
type ExperienceService struct {
	repo ExperienceRepository
}

// NewExperienceService constructs an ExperienceService.
func NewExperienceService(repo ExperienceRepository) *ExperienceService {
	return &ExperienceService{repo: repo}
}

func (s *ExperienceService) List(ctx context.Context) ([]models.Experience, error) {
	return s.repo.List(ctx)
}

func (s *ExperienceService) Get(ctx context.Context, id int64) (*models.Experience, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ExperienceService) Create(ctx context.Context, e models.Experience) (*models.Experience, error) {
	e.Normalize()
	return s.repo.Create(ctx, e)
}

func (s *ExperienceService) Update(ctx context.Context, id int64, p models.ExperiencePatch) (*models.Experience, error) {
	p.Normalize()
	return s.repo.Update(ctx, id, p)
}

func (s *ExperienceService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ProjectRepository defines the persistence operations required by ProjectService.
type ProjectRepository interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, p models.Project) (*models.Project, error)
	Update(ctx context.Context, id int64, p models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectService manages portfolio projects.
type ProjectService struct {
	repo ProjectRepository
}

// NewProjectService constructs a ProjectService.
func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.repo.List(ctx, models.ProjectFilter{})
}

func (s *ProjectService) Featured(ctx context.Context) ([]models.Project, error) {
	return s.repo.List(ctx, models.ProjectFilter{FeaturedOnly: true})
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores p, defaulting an empty status to planned.
func (s *ProjectService) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	if p.Status == "" {
		p.Status = models.StatusPlanned
	}
	return s.repo.Create(ctx, p)
}

func (s *ProjectService) Update(ctx context.Context, id int64, p models.ProjectPatch) (*models.Project, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
