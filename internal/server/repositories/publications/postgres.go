// Package publications stores the location of published result snapshots.
package publications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/models"
)

// PostgresRepository implements publication storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateOrUpdate upserts a publication by election_id. Republishing
// replaces the previous snapshot record.
func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, p *models.Publication) error {
	query := `
		INSERT INTO publications (election_id, storage_key, total_votes, published_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (election_id)
		DO UPDATE SET
			storage_key = EXCLUDED.storage_key,
			total_votes = EXCLUDED.total_votes,
			published_at = EXCLUDED.published_at;
	`
	res, err := r.db.ExecContext(ctx, query, p.ElectionID, p.StorageKey, p.TotalVotes, p.PublishedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// GetByElectionID returns the latest publication of the election.
func (r *PostgresRepository) GetByElectionID(ctx context.Context, electionID string) (*models.Publication, error) {
	query := ` SELECT election_id, storage_key, total_votes, published_at FROM publications
		WHERE election_id=$1
		`

	result := &models.Publication{}
	if err := r.db.QueryRowContext(ctx, query, electionID).
		Scan(&result.ElectionID, &result.StorageKey, &result.TotalVotes, &result.PublishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select publication: %w", err)
	}
	return result, nil
}

// MemoryRepository keeps publications in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Publication
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Publication)}
}

func (r *MemoryRepository) CreateOrUpdate(ctx context.Context, p *models.Publication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ElectionID] = *p
	return nil
}

func (r *MemoryRepository) GetByElectionID(ctx context.Context, electionID string) (*models.Publication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[electionID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}
