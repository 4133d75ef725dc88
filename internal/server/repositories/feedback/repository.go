package feedback

import (
	"context"

	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
}
