// Package service holds the business rules of the portfolio API. Each service
// depends on a small repository interface declared next to it.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/portfolio/internal/auth"
	"github.com/atinyakov/portfolio/internal/models"
	"github.com/atinyakov/portfolio/internal/repository"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned by Register when the email is taken.
	ErrUserExists = errors.New("user already exists")
)

// UserRepository defines the persistence operations required by AuthService.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID int64, email string, role models.Role) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// AuthService authenticates dashboard users.
type AuthService struct {
	repo     UserRepository
	tokens   TokenIssuer
	hashCost int
}

// NewAuthService constructs an AuthService. A hashCost of 0 selects auth.DefaultCost.
func NewAuthService(repo UserRepository, tokens TokenIssuer, hashCost int) *AuthService {
	if hashCost == 0 {
		hashCost = auth.DefaultCost
	}
	return &AuthService{repo: repo, tokens: tokens, hashCost: hashCost}
}

// Login checks the credentials and returns a signed token with the user it was issued for.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Register creates a user with a hashed password.
func (s *AuthService) Register(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := auth.HashPasswordCost(password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, email, hash, role)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Verify returns the claims of a valid token.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}
