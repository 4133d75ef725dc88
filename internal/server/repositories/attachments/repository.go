package attachments

import (
	"context"

	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, attachment *models.DiaryAttachment) (*models.DiaryAttachment, error)
	ListByEntry(ctx context.Context, entryID string) ([]*models.DiaryAttachment, error)
}
