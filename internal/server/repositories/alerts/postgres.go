// Package alerts provides a PostgreSQL-backed repository for emergency
// alert records. The notified-contact snapshot is stored as a jsonb list
// of identifier strings.
package alerts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

// PostgresRepository implements alert storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an alert with status pending and the supplied contact
// identifier snapshot.
func (r *PostgresRepository) Create(ctx context.Context, alert *models.EmergencyAlert) (*models.EmergencyAlert, error) {
	contacts := alert.ContactsNotified
	if contacts == nil {
		contacts = []string{}
	}
	raw, err := json.Marshal(contacts)
	if err != nil {
		return nil, fmt.Errorf("marshal contacts_notified: %w", err)
	}
	query := `
		INSERT INTO emergency_alerts (user_id, message, location, contacts_notified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		alert.UserID, alert.Message, alert.Location, raw).
		Scan(&alert.ID, &alert.Status, &alert.CreatedAt, &alert.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return alert, nil
}

// UpdateStatus sets the status of an alert by id. Exactly one row must
// be affected.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE emergency_alerts
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// ListByUser returns alerts owned by userID, newest first, optionally
// narrowed by status.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID, status string) ([]*models.EmergencyAlert, error) {
	query := `
		SELECT id, user_id, message, location, status, contacts_notified, created_at, updated_at
		FROM emergency_alerts
		WHERE user_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.EmergencyAlert
	for rows.Next() {
		var item models.EmergencyAlert
		var contacts []byte
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Message, &item.Location,
			&item.Status, &contacts, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(contacts, &item.ContactsNotified); err != nil {
			return nil, fmt.Errorf("unmarshal contacts_notified: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the owned alert with the given id or ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.EmergencyAlert, error) {
	query := `
		SELECT id, user_id, message, location, status, contacts_notified, created_at, updated_at
		FROM emergency_alerts
		WHERE id = $1 AND user_id = $2
	`
	alert := &models.EmergencyAlert{}
	var contacts []byte
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&alert.ID, &alert.UserID, &alert.Message, &alert.Location,
		&alert.Status, &contacts, &alert.CreatedAt, &alert.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(contacts, &alert.ContactsNotified); err != nil {
		return nil, fmt.Errorf("unmarshal contacts_notified: %w", err)
	}
	return alert, nil
}
