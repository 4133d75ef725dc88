package feedback

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var createQuery = `(?s)INSERT\s+INTO\s+user_feedback\s*\(user_id,\s*feedback_type,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at`

func TestCreate_WithUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("f-1", time.Now())
	mock.ExpectQuery(createQuery).
		WithArgs(sql.NullString{String: "u-1", Valid: true}, "bug", "it crashes").
		WillReturnRows(rows)

	fb := &models.Feedback{UserID: "u-1", Type: models.FeedbackTypeBug, Content: "it crashes"}
	got, err := repo.Create(context.Background(), fb)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "f-1" {
		t.Fatalf("unexpected feedback: %+v", got)
	}
}

func TestCreate_AnonymousStoresNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("f-1", time.Now())
	mock.ExpectQuery(createQuery).
		WithArgs(sql.NullString{}, "general", "nice app").
		WillReturnRows(rows)

	fb := &models.Feedback{Type: models.FeedbackTypeGeneral, Content: "nice app"}
	if _, err := repo.Create(context.Background(), fb); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQuery).
		WithArgs(sql.NullString{String: "u-1", Valid: true}, "bug", "x").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Feedback{UserID: "u-1", Type: "bug", Content: "x"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
