package service

import (
	"context"
	"errors"
	"strings"

	"github.com/atinyakov/portfolio/internal/models"
	"github.com/atinyakov/portfolio/internal/repository"
)

// ErrInvalidStatus is returned for an unknown message status or for moving a read message back to unread.
var ErrInvalidStatus = errors.New("invalid message status")

// ContactRepository defines the persistence operations required by ContactService.
type ContactRepository interface {
	List(ctx context.Context) ([]models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	Create(ctx context.Context, name, email, subject, message string) (*models.Contact, error)
	UpdateStatus(ctx context.Context, id int64, status models.MessageStatus) (*models.Contact, error)
	MarkRead(ctx context.Context, id int64) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.ContactStats, error)
}

// ContactService handles contact form submissions and their triage.
type ContactService struct {
	repo ContactRepository
}

// NewContactService constructs a ContactService.
func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Submit stores a new message with surrounding whitespace trimmed.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
	return s.repo.Create(ctx,
		strings.TrimSpace(name),
		strings.TrimSpace(email),
		strings.TrimSpace(subject),
		strings.TrimSpace(message))
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus moves message id to status. Read and replied messages cannot become unread again.
func (s *ContactService) SetStatus(ctx context.Context, id int64, status models.MessageStatus) (*models.Contact, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	c, err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrReadRegression) {
		return nil, ErrInvalidStatus
	}
	return c, err
}

func (s *ContactService) MarkRead(ctx context.Context, id int64) (*models.Contact, error) {
	return s.repo.MarkRead(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ContactService) Stats(ctx context.Context) (*models.ContactStats, error) {
	return s.repo.Stats(ctx)
}
