package repomanager

import (
	"context"
	"database/sql"

	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/alerts"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/attachments"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/contacts"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/diary"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/feedback"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/profiles"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/sessions"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// the same repository code inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Feedback(db dbx.DBTX) feedback.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	DiaryEntries(db dbx.DBTX) diary.Repository
	DiaryAttachments(db dbx.DBTX) attachments.Repository
	Alerts(db dbx.DBTX) alerts.Repository
}
