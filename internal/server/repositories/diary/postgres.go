// Package diary provides a PostgreSQL-backed repository for diary entries.
// The inline attachments metadata is stored as a jsonb list.
package diary

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

// PostgresRepository implements diary entry storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func marshalAttachments(attachments []string) ([]byte, error) {
	if attachments == nil {
		attachments = []string{}
	}
	b, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("marshal attachments: %w", err)
	}
	return b, nil
}

func unmarshalAttachments(raw []byte, into *[]string) error {
	if len(raw) == 0 {
		*into = []string{}
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("unmarshal attachments: %w", err)
	}
	return nil
}

// Create inserts a diary entry for its owning user.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error) {
	attachments, err := marshalAttachments(entry.Attachments)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO diary_entries (user_id, title, content, mood, location, attachments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, entry_date, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Title, entry.Content, entry.Mood, entry.Location, attachments).
		Scan(&entry.ID, &entry.Date, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// ListByUser returns entries owned by userID, newest first, optionally
// narrowed by mood and entry date.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, filter Filter) ([]*models.DiaryEntry, error) {
	query := `
		SELECT id, user_id, title, content, entry_date, mood, location, attachments, created_at, updated_at
		FROM diary_entries
		WHERE user_id = $1
		  AND ($2 = '' OR mood = $2)
		  AND ($3 = '' OR entry_date = $3::date)
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, filter.Mood, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.DiaryEntry
	for rows.Next() {
		var item models.DiaryEntry
		var attachments []byte
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Content, &item.Date,
			&item.Mood, &item.Location, &attachments,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalAttachments(attachments, &item.Attachments); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the owned entry with the given id or ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.DiaryEntry, error) {
	query := `
		SELECT id, user_id, title, content, entry_date, mood, location, attachments, created_at, updated_at
		FROM diary_entries
		WHERE id = $1 AND user_id = $2
	`
	entry := &models.DiaryEntry{}
	var attachments []byte
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Content, &entry.Date,
		&entry.Mood, &entry.Location, &attachments,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := unmarshalAttachments(attachments, &entry.Attachments); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update rewrites the mutable fields of an owned entry and returns the
// updated row, or ErrorNotFound when the id is unowned or missing.
func (r *PostgresRepository) Update(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error) {
	attachments, err := marshalAttachments(entry.Attachments)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE diary_entries
		SET title = $3, content = $4, mood = $5, location = $6, attachments = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING entry_date, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Title, entry.Content,
		entry.Mood, entry.Location, attachments).
		Scan(&entry.Date, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// Delete removes an owned entry; attachments cascade in the schema.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM diary_entries
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
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
