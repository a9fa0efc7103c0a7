// Package receipts keeps the voter's verification codes in the CLI's local
// database.
package receipts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/evote/internal/client/models"
)

type Repository interface {
	Save(ctx context.Context, r *models.Receipt) error
	Get(ctx context.Context, code string) (*models.Receipt, error)
	List(ctx context.Context) ([]*models.Receipt, error)
	MarkVerified(ctx context.Context, code string, at time.Time) error
}
