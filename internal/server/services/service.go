// Package services contains server-side business logic: election
// management, vote casting, tallying and results publishing.
package services

import (
	"context"
	"crypto/rand"
	"io"
	"time"

	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/logging"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/repositories/elections"
	"github.com/dmitrijs2005/evote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/evote/internal/timex"
)

// Deps bundles the collaborators shared by all services.
type Deps struct {
	Tx          dbx.Transactor
	RepoManager repomanager.RepositoryManager
	Clock       timex.Clock
	// Random feeds key generation, OAEP padding and verification codes.
	Random io.Reader
	Log    logging.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Tx == nil {
		d.Tx = dbx.NoTx{}
	}
	if d.Clock == nil {
		d.Clock = timex.SystemClock{}
	}
	if d.Random == nil {
		d.Random = rand.Reader
	}
	if d.Log == nil {
		d.Log = logging.Nop{}
	}
	return d
}

// refreshStatus re-resolves e.Status at now and persists it when it
// changed. The stored status is only a cache, so a failed write is logged
// and otherwise ignored. Call it on a non-transactional handle only.
func refreshStatus(ctx context.Context, repo elections.Repository, log logging.Logger, e *models.Election, now time.Time) {
	status := models.ResolveStatus(e.Window(), now)
	if status == e.Status {
		return
	}
	if err := repo.UpdateStatus(ctx, e.ID, status); err != nil {
		log.Warn(ctx, "failed to persist election status", "election_id", e.ID, "status", status, "error", err)
	}
	e.Status = status
}
