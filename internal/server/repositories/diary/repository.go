package diary

import (
	"context"

	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

// Filter narrows ListByUser results. Zero values mean no filtering.
type Filter struct {
	Mood string
	Date string // YYYY-MM-DD
}

type Repository interface {
	Create(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	ListByUser(ctx context.Context, userID string, filter Filter) ([]*models.DiaryEntry, error)
	Get(ctx context.Context, userID, id string) (*models.DiaryEntry, error)
	Update(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	Delete(ctx context.Context, userID, id string) error
}
