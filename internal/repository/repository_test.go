package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setupMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	}
	return db, mock, cleanup
}

func TestDeleteByID_NotFound(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM skills WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := deleteByID(context.Background(), db, "skills", 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByID_ExecError(t *testing.T) {
	db, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM projects WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	err := deleteByID(context.Background(), db, "projects", 1)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
}

func TestUpdateQuery(t *testing.T) {
	var set assignments
	set.add("name", "Go")
	set.add("proficiency", 90)

	query, args, err := set.updateQuery("skills", 7, "id, name", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "UPDATE skills SET name = $1, proficiency = $2, updated_at = now() WHERE id = $3 RETURNING id, name"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if len(args) != 3 || args[0] != "Go" || args[1] != 90 || args[2] != int64(7) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestNotFound(t *testing.T) {
	if !errors.Is(notFound(sql.ErrNoRows), ErrNotFound) {
		t.Error("sql.ErrNoRows should map to ErrNotFound")
	}
	other := errors.New("boom")
	if notFound(other) != other {
		t.Error("other errors should pass through")
	}
}
