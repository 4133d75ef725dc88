// Package feedback provides a PostgreSQL-backed repository for user
// feedback submissions.
package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

// PostgresRepository implements feedback storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a feedback row. An empty UserID is stored as NULL for
// anonymous submissions.
func (r *PostgresRepository) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	query := `
		INSERT INTO user_feedback (user_id, feedback_type, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	userID := sql.NullString{String: fb.UserID, Valid: fb.UserID != ""}
	err := r.db.QueryRowContext(ctx, query, userID, fb.Type, fb.Content).
		Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fb, nil
}
