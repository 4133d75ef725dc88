// Package contacts provides a PostgreSQL-backed repository for safe and
// emergency contacts. Every query is scoped by the owning user, so an
// unowned id behaves exactly like a missing one.
package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

// PostgresRepository implements contact storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a contact for its owning user.
func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (user_id, kind, name, phone, email, telegram_id, relationship)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		contact.UserID, contact.Kind, contact.Name, contact.Phone,
		contact.Email, contact.TelegramID, contact.Relationship).
		Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contact, nil
}

// ListByUser returns all contacts of the given kind owned by userID,
// ordered by name.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID, kind string) ([]*models.Contact, error) {
	query := `
		SELECT id, user_id, kind, name, phone, email, telegram_id, relationship, created_at, updated_at
		FROM contacts
		WHERE user_id = $1 AND kind = $2
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Contact
	for rows.Next() {
		var item models.Contact
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Kind, &item.Name, &item.Phone,
			&item.Email, &item.TelegramID, &item.Relationship,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the contact with the given id when it is owned by userID
// and matches kind; otherwise ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID, kind, id string) (*models.Contact, error) {
	query := `
		SELECT id, user_id, kind, name, phone, email, telegram_id, relationship, created_at, updated_at
		FROM contacts
		WHERE id = $1 AND user_id = $2 AND kind = $3
	`
	contact := &models.Contact{}
	err := r.db.QueryRowContext(ctx, query, id, userID, kind).Scan(
		&contact.ID, &contact.UserID, &contact.Kind, &contact.Name,
		&contact.Phone, &contact.Email, &contact.TelegramID,
		&contact.Relationship, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contact, nil
}

// Update rewrites the mutable fields of an owned contact and returns the
// updated row, or ErrorNotFound when the id is unowned or missing.
func (r *PostgresRepository) Update(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query := `
		UPDATE contacts
		SET name = $4, phone = $5, email = $6, telegram_id = $7, relationship = $8, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND kind = $3
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		contact.ID, contact.UserID, contact.Kind, contact.Name,
		contact.Phone, contact.Email, contact.TelegramID, contact.Relationship).
		Scan(&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contact, nil
}

// Delete removes an owned contact. Exactly one row must be affected;
// zero rows means the id is unowned or missing.
func (r *PostgresRepository) Delete(ctx context.Context, userID, kind, id string) error {
	query := `
		DELETE FROM contacts
		WHERE id = $1 AND user_id = $2 AND kind = $3
	`
	res, err := r.db.ExecContext(ctx, query, id, userID, kind)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
