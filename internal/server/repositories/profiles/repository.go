package profiles

import (
	"context"

	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, avatarURL string) (*models.Profile, error)
}
