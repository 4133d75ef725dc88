package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/logging"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
	"github.com/udsonbraga/app-lia-2025/internal/server/queue"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/repomanager"
)

// AlertPublisher hands alert delivery tasks to the external worker queue.
type AlertPublisher interface {
	PublishAlertTask(ctx context.Context, task *queue.AlertTask) error
}

// AlertService implements the emergency alert lifecycle: record the alert,
// snapshot the notified-contact set, enqueue the delivery task, and flip
// the status to sent. Actual delivery (and the delivered/failed
// transitions) belongs to the worker consuming the queue.
type AlertService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   AlertPublisher
	logger      logging.Logger
}

// NewAlertService constructs an AlertService. publisher may be nil when no
// delivery queue is configured.
func NewAlertService(db *sql.DB, m repomanager.RepositoryManager, publisher AlertPublisher, logger logging.Logger) *AlertService {
	return &AlertService{
		db:          db,
		repomanager: m,
		publisher:   publisher,
		logger:      logger.With("module", "alert_service"),
	}
}

// CreateAlert records an alert for the user and returns it together with
// the notified-contact count. The row is created pending and transitioned
// to sent inside the same transaction; the contact identifiers are stored
// in canonical string form exactly as supplied, without re-validation
// against the contact directory. Queue publish failures are logged and
// never fail the request.
func (s *AlertService) CreateAlert(ctx context.Context, userID, message, location string, contactIDs []uuid.UUID) (*models.EmergencyAlert, int, error) {
	contacts := make([]string, 0, len(contactIDs))
	for _, id := range contactIDs {
		contacts = append(contacts, id.String())
	}

	alert := &models.EmergencyAlert{
		UserID:           userID,
		Message:          message,
		Location:         location,
		ContactsNotified: contacts,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Alerts(tx)
		var err error
		alert, err = repo.Create(ctx, alert)
		if err != nil {
			return err
		}
		if err := repo.UpdateStatus(ctx, alert.ID, models.AlertStatusSent); err != nil {
			return err
		}
		alert.Status = models.AlertStatusSent
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("error creating alert: %w", err)
	}

	if s.publisher != nil {
		task := &queue.AlertTask{
			AlertID:  alert.ID,
			UserID:   userID,
			Message:  message,
			Location: location,
			Contacts: contacts,
		}
		if err := s.publisher.PublishAlertTask(ctx, task); err != nil {
			s.logger.Error(ctx, "failed to enqueue alert delivery task",
				"alert_id", alert.ID, "error", err.Error())
		}
	}

	return alert, len(contacts), nil
}

// ListAlerts returns the user's alerts, newest first, optionally narrowed
// by status.
func (s *AlertService) ListAlerts(ctx context.Context, userID, status string) ([]*models.EmergencyAlert, error) {
	result, err := s.repomanager.Alerts(s.db).ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}
	return result, nil
}

// GetAlert returns an owned alert or ErrorNotFound. An alert owned by
// another user is indistinguishable from a missing one.
func (s *AlertService) GetAlert(ctx context.Context, userID, id string) (*models.EmergencyAlert, error) {
	return s.repomanager.Alerts(s.db).Get(ctx, userID, id)
}
