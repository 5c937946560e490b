package service

import (
	"context"

	"github.com/atinyakov/portfolio/internal/models"
)

// ProfileRepository defines the persistence operations required by ProfileService.
type ProfileRepository interface {
	Get(ctx context.Context) (*models.PersonalInfo, error)
	Upsert(ctx context.Context, p models.PersonalInfo) (*models.PersonalInfo, error)
}

// ProfileService reads and writes the single personal info record.
type ProfileService struct {
	repo ProfileRepository
}

// NewProfileService constructs a ProfileService.
func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the profile or nil when it has not been created yet.
func (s *ProfileService) Get(ctx context.Context) (*models.PersonalInfo, error) {
	return s.repo.Get(ctx)
}

// Save creates the profile on first use and overwrites it afterwards.
func (s *ProfileService) Save(ctx context.Context, p models.PersonalInfo) (*models.PersonalInfo, error) {
	return s.repo.Upsert(ctx, p)
}
