package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/atinyakov/portfolio/internal/models"
)

var userRowColumns = []string{"id", "email", "password", "role", "created_at", "updated_at"}

func TestFindByEmail_Found(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("admin@portfolio.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "admin@portfolio.com", "hash", "admin", testTime, testTime))

	u, err := repo.FindByEmail(context.Background(), "admin@portfolio.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 1 || u.Role != models.RoleAdmin || u.PasswordHash != "hash" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestFindByEmail_Missing(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(5, "u@example.com", "hash", "user", testTime, testTime))

	u, err := repo.FindByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "u@example.com" || u.Role != models.RoleUser {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestCreateUser(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password, role) VALUES ($1, $2, $3)`)).
		WithArgs("new@example.com", "hash", "user").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(2, "new@example.com", "hash", "user", testTime, testTime))

	u, err := repo.Create(context.Background(), "new@example.com", "hash", models.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 2 {
		t.Errorf("expected id 2, got %d", u.ID)
	}
}

func TestCreateUser_Error(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	if _, err := repo.Create(context.Background(), "dup@example.com", "hash", models.RoleUser); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), "dup@example.com", "hash", models.RoleAdmin)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
