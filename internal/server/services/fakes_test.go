package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/logging"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
	"github.com/udsonbraga/app-lia-2025/internal/server/queue"
	alertsrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/alerts"
	attachmentsrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/attachments"
	contactsrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/contacts"
	diaryrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/diary"
	feedbackrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/feedback"
	profilesrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/profiles"
	sessionsrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/sessions"
	usersrepo "github.com/udsonbraga/app-lia-2025/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail    *models.User
	byEmailErr error

	byID    *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

type fakeSessionsRepo struct {
	createErr error
	lastToken string

	findOut *models.Session
	findErr error

	delErr     error
	lastDelete string
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	f.lastToken = token
	return f.createErr
}
func (f *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	f.lastDelete = token
	return f.delErr
}

type fakeProfilesRepo struct {
	createOut *models.Profile
	createErr error

	getOut *models.Profile
	getErr error

	updateOut *models.Profile
	updateErr error
}

func (f *fakeProfilesRepo) Create(ctx context.Context, userID string) (*models.Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeProfilesRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeProfilesRepo) Update(ctx context.Context, userID, avatarURL string) (*models.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

type fakeFeedbackRepo struct {
	createErr error
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	fb.ID = "f-1"
	fb.CreatedAt = time.Now()
	return fb, nil
}

type fakeContactsRepo struct {
	createErr error

	listOut []*models.Contact
	listErr error

	getOut *models.Contact
	getErr error

	updateErr error
	delErr    error
}

func (f *fakeContactsRepo) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = "c-1"
	return c, nil
}
func (f *fakeContactsRepo) ListByUser(ctx context.Context, userID, kind string) ([]*models.Contact, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeContactsRepo) Get(ctx context.Context, userID, kind, id string) (*models.Contact, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeContactsRepo) Update(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return c, nil
}
func (f *fakeContactsRepo) Delete(ctx context.Context, userID, kind, id string) error {
	return f.delErr
}

type fakeDiaryRepo struct {
	createErr error

	listOut []*models.DiaryEntry
	listErr error

	getOut *models.DiaryEntry
	getErr error

	updateErr   error
	lastUpdated *models.DiaryEntry

	delErr error
}

func (f *fakeDiaryRepo) Create(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	e.ID = "e-1"
	return e, nil
}
func (f *fakeDiaryRepo) ListByUser(ctx context.Context, userID string, filter diaryrepo.Filter) ([]*models.DiaryEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeDiaryRepo) Get(ctx context.Context, userID, id string) (*models.DiaryEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeDiaryRepo) Update(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.lastUpdated = e
	return e, nil
}
func (f *fakeDiaryRepo) Delete(ctx context.Context, userID, id string) error {
	return f.delErr
}

type fakeAttachmentsRepo struct {
	createErr error
	created   []*models.DiaryAttachment

	listOut []*models.DiaryAttachment
	listErr error
}

func (f *fakeAttachmentsRepo) Create(ctx context.Context, a *models.DiaryAttachment) (*models.DiaryAttachment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = "att-1"
	f.created = append(f.created, a)
	return a, nil
}
func (f *fakeAttachmentsRepo) ListByEntry(ctx context.Context, entryID string) ([]*models.DiaryAttachment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeAlertsRepo struct {
	createErr error

	statusErr  error
	lastStatus string

	listOut []*models.EmergencyAlert
	listErr error

	getOut *models.EmergencyAlert
	getErr error
}

func (f *fakeAlertsRepo) Create(ctx context.Context, a *models.EmergencyAlert) (*models.EmergencyAlert, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = "a-1"
	a.Status = models.AlertStatusPending
	return a, nil
}
func (f *fakeAlertsRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.lastStatus = status
	return nil
}
func (f *fakeAlertsRepo) ListByUser(ctx context.Context, userID, status string) ([]*models.EmergencyAlert, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeAlertsRepo) Get(ctx context.Context, userID, id string) (*models.EmergencyAlert, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	s  *fakeSessionsRepo
	p  *fakeProfilesRepo
	fb *fakeFeedbackRepo
	c  *fakeContactsRepo
	d  *fakeDiaryRepo
	at *fakeAttachmentsRepo
	a  *fakeAlertsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository {
	return m.s
}
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository {
	return m.p
}
func (m *fakeRepoManager) Feedback(db dbx.DBTX) feedbackrepo.Repository {
	return m.fb
}
func (m *fakeRepoManager) Contacts(db dbx.DBTX) contactsrepo.Repository {
	return m.c
}
func (m *fakeRepoManager) DiaryEntries(db dbx.DBTX) diaryrepo.Repository {
	return m.d
}
func (m *fakeRepoManager) DiaryAttachments(db dbx.DBTX) attachmentsrepo.Repository {
	return m.at
}
func (m *fakeRepoManager) Alerts(db dbx.DBTX) alertsrepo.Repository { return m.a }

type stubPresigner struct {
	putErr error
	getErr error
}

func (p *stubPresigner) PresignPut(ctx context.Context, key string) (string, error) {
	if p.putErr != nil {
		return "", p.putErr
	}
	return "https://s3.local/put/" + key, nil
}
func (p *stubPresigner) PresignGet(ctx context.Context, key string) (string, error) {
	if p.getErr != nil {
		return "", p.getErr
	}
	return "https://s3.local/get/" + key, nil
}

type fakePublisher struct {
	err   error
	tasks []*queue.AlertTask
}

func (p *fakePublisher) PublishAlertTask(ctx context.Context, task *queue.AlertTask) error {
	if p.err != nil {
		return p.err
	}
	p.tasks = append(p.tasks, task)
	return nil
}
