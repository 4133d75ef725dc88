package alerts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/udsonbraga/app-lia-2025/internal/common"
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

var createQuery = `(?s)INSERT\s+INTO\s+emergency_alerts\s*\(user_id,\s*message,\s*location,\s*contacts_notified\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*status,\s*created_at,\s*updated_at`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
		AddRow("a-1", "pending", now, now)
	mock.ExpectQuery(createQuery).
		WithArgs("u-1", "help", "somewhere", []byte(`["c-1","c-2"]`)).
		WillReturnRows(rows)

	alert := &models.EmergencyAlert{
		UserID:           "u-1",
		Message:          "help",
		Location:         "somewhere",
		ContactsNotified: []string{"c-1", "c-2"},
	}
	got, err := repo.Create(context.Background(), alert)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "a-1" || got.Status != models.AlertStatusPending {
		t.Fatalf("unexpected alert: %+v", got)
	}
}

func TestCreate_NilContactsStoredAsEmptyList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
		AddRow("a-1", "pending", now, now)
	mock.ExpectQuery(createQuery).
		WithArgs("u-1", "help", "", []byte(`[]`)).
		WillReturnRows(rows)

	_, err := repo.Create(context.Background(), &models.EmergencyAlert{UserID: "u-1", Message: "help"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+emergency_alerts\s+SET\s+status\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1`

	mock.ExpectExec(q).
		WithArgs("a-1", "sent").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), "a-1", models.AlertStatusSent); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
}

func TestUpdateStatus_NoRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+emergency_alerts`

	mock.ExpectExec(q).
		WithArgs("a-1", "sent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "a-1", models.AlertStatusSent)
	if err == nil || !regexp.MustCompile(`unexpected rows affected: 0`).MatchString(err.Error()) {
		t.Fatalf("expected rows-affected error, got %v", err)
	}
}

func TestListByUser_ParsesContacts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+.*FROM\s+emergency_alerts\s+WHERE\s+user_id\s*=\s*\$1.*ORDER\s+BY\s+created_at\s+DESC`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "message", "location", "status", "contacts_notified", "created_at", "updated_at"}).
		AddRow("a-2", "u-1", "second", "", "sent", []byte(`["c-1"]`), now, now).
		AddRow("a-1", "u-1", "first", "", "sent", []byte(`[]`), now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(q).
		WithArgs("u-1", "").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1", "")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected count: %d", len(got))
	}
	if got[0].ID != "a-2" || len(got[0].ContactsNotified) != 1 || got[0].ContactsNotified[0] != "c-1" {
		t.Fatalf("unexpected first alert: %+v", got[0])
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+.*FROM\s+emergency_alerts\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`

	mock.ExpectQuery(q).
		WithArgs("a-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "intruder", "a-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+.*FROM\s+emergency_alerts\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`

	mock.ExpectQuery(q).
		WithArgs("a-1", "u-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "u-1", "a-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
