package elections

import (
	"context"

	"github.com/dmitrijs2005/evote/internal/server/models"
)

// Repository persists elections together with their positions and candidates.
type Repository interface {
	// Create stores e with all nested positions and candidates. Missing IDs
	// are assigned. Run it inside a transaction.
	Create(ctx context.Context, e *models.Election) error
	Get(ctx context.Context, id string) (*models.Election, error)
	List(ctx context.Context) ([]*models.Election, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	UpdateDetails(ctx context.Context, e *models.Election) error
	Delete(ctx context.Context, id string) error
	// IncrementCounters bumps the cast-time counters of one candidate and
	// of the election.
	IncrementCounters(ctx context.Context, electionID, candidateID string) error
}
