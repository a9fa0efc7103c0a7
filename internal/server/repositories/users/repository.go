package users

import (
	"context"

	"github.com/dmitrijs2005/evote/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetVerified(ctx context.Context, id string, verified bool) error
}
