// Package attachments provides a PostgreSQL-backed repository for diary
// attachment file objects. The file bytes themselves live in object
// storage under each row's storage key.
package attachments

import (
	"context"
	"fmt"

	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

// PostgresRepository implements attachment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an attachment row for a diary entry.
func (r *PostgresRepository) Create(ctx context.Context, attachment *models.DiaryAttachment) (*models.DiaryAttachment, error) {
	query := `
		INSERT INTO diary_attachments (entry_id, name, storage_key, file_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		attachment.EntryID, attachment.Name, attachment.StorageKey, attachment.FileType).
		Scan(&attachment.ID, &attachment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return attachment, nil
}

// ListByEntry returns the attachment rows for an entry, oldest first.
func (r *PostgresRepository) ListByEntry(ctx context.Context, entryID string) ([]*models.DiaryAttachment, error) {
	query := `
		SELECT id, entry_id, name, storage_key, file_type, created_at
		FROM diary_attachments
		WHERE entry_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.DiaryAttachment
	for rows.Next() {
		var item models.DiaryAttachment
		if err := rows.Scan(
			&item.ID, &item.EntryID, &item.Name, &item.StorageKey,
			&item.FileType, &item.CreatedAt,
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
