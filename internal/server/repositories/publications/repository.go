package publications

import (
	"context"

	"github.com/dmitrijs2005/evote/internal/server/models"
)

type Repository interface {
	CreateOrUpdate(ctx context.Context, p *models.Publication) error
	GetByElectionID(ctx context.Context, electionID string) (*models.Publication, error)
}
