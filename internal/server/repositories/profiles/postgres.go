// Package profiles provides a PostgreSQL-backed repository for the 1:1
// user profile rows.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

// PostgresRepository implements profile storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an empty profile row for userID.
func (r *PostgresRepository) Create(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		INSERT INTO user_profiles (user_id)
		VALUES ($1)
		RETURNING id, user_id, avatar_url, created_at, updated_at
	`
	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.AvatarURL,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return profile, nil
}

// GetByUserID returns the profile owned by userID or ErrorNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, avatar_url, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.AvatarURL,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return profile, nil
}

// Update sets the avatar URL on the profile owned by userID and returns
// the updated row, or ErrorNotFound when no profile exists.
func (r *PostgresRepository) Update(ctx context.Context, userID string, avatarURL string) (*models.Profile, error) {
	query := `
		UPDATE user_profiles
		SET avatar_url = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING id, user_id, avatar_url, created_at, updated_at
	`
	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID, avatarURL).Scan(
		&profile.ID, &profile.UserID, &profile.AvatarURL,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return profile, nil
}
