package votes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/models"
)

// ErrDuplicateCode signals that the verification code is already taken.
// Callers regenerate the code and retry.
var ErrDuplicateCode = fmt.Errorf("%w: verification code", common.ErrConstraintViolation)

// Repository is the append-only vote store. There is deliberately no
// update or delete method.
type Repository interface {
	// Create inserts v. A second vote for the same (election, voter,
	// position) fails with common.ErrAlreadyVoted; a taken verification code
	// fails with ErrDuplicateCode.
	Create(ctx context.Context, v *models.Vote) error
	Exists(ctx context.Context, electionID, voterID, positionID string) (bool, error)
	ListByElection(ctx context.Context, electionID string) ([]*models.Vote, error)
	FindByCode(ctx context.Context, code string) (*models.Vote, error)
}
