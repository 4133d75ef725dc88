package alerts

import (
	"context"

	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, alert *models.EmergencyAlert) (*models.EmergencyAlert, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByUser(ctx context.Context, userID, status string) ([]*models.EmergencyAlert, error)
	Get(ctx context.Context, userID, id string) (*models.EmergencyAlert, error)
}
