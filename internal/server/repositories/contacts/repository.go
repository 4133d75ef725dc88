package contacts

import (
	"context"

	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	ListByUser(ctx context.Context, userID, kind string) ([]*models.Contact, error)
	Get(ctx context.Context, userID, kind, id string) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Delete(ctx context.Context, userID, kind, id string) error
}
