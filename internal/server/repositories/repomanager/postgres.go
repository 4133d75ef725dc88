// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/migrations"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/alerts"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/attachments"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/contacts"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/diary"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/feedback"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/profiles"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/sessions"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

// Profiles returns a profiles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

// Feedback returns a feedback.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Feedback(db dbx.DBTX) feedback.Repository {
	return feedback.NewPostgresRepository(db)
}

// Contacts returns a contacts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Contacts(db dbx.DBTX) contacts.Repository {
	return contacts.NewPostgresRepository(db)
}

// DiaryEntries returns a diary.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) DiaryEntries(db dbx.DBTX) diary.Repository {
	return diary.NewPostgresRepository(db)
}

// DiaryAttachments returns an attachments.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) DiaryAttachments(db dbx.DBTX) attachments.Repository {
	return attachments.NewPostgresRepository(db)
}

// Alerts returns an alerts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Alerts(db dbx.DBTX) alerts.Repository {
	return alerts.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
