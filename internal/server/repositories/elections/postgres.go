// Package elections provides PostgreSQL and in-memory repositories for
// elections, their positions and candidates.
package elections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements election storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Election) error {
	assignIDs(e)

	query := `
		INSERT INTO elections (id, title, description, start_at, end_at, status, total_votes, creator_id, public_key, private_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if _, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.StartAt, e.EndAt, e.Status, e.TotalVotes,
		e.CreatorID, e.PublicKey, e.PrivateKey, e.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	for i, p := range e.Positions {
		query := `
			INSERT INTO positions (id, election_id, position_key, title, description, ord)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := r.db.ExecContext(ctx, query, p.ID, e.ID, p.PositionKey, p.Title, p.Description, i); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		for j, c := range p.Candidates {
			campaign, err := json.Marshal(c.Campaign)
			if err != nil {
				return err
			}
			query := `
				INSERT INTO candidates (id, election_id, position_id, candidate_key, user_id, name, bio, symbol, agenda, campaign, photo, votes, ord)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			`
			if _, err := r.db.ExecContext(ctx, query,
				c.ID, e.ID, p.ID, c.CandidateKey, c.UserID, c.Name, c.Bio, c.Symbol, c.Agenda,
				campaign, c.Photo, c.Votes, j); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
	}

	return nil
}

// Get returns the election with positions and candidates in their
// original order, or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Election, error) {
	query := `
		SELECT id, title, description, start_at, end_at, status, total_votes, creator_id, public_key, private_key, created_at
		FROM elections
		WHERE id = $1
	`
	e, err := scanElection(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadPositions(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all elections, newest start first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Election, error) {
	query := `
		SELECT id, title, description, start_at, end_at, status, total_votes, creator_id, public_key, private_key, created_at
		FROM elections
		ORDER BY start_at DESC, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select elections: %w", err)
	}
	defer rows.Close()

	var result []*models.Election
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range result {
		if err := r.loadPositions(ctx, e); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	query := `UPDATE elections SET status = $2 WHERE id = $1`
	return r.execOne(ctx, query, id, status)
}

// UpdateDetails rewrites title, description and voting window.
func (r *PostgresRepository) UpdateDetails(ctx context.Context, e *models.Election) error {
	query := `
		UPDATE elections SET title = $2, description = $3, start_at = $4, end_at = $5, status = $6
		WHERE id = $1
	`
	return r.execOne(ctx, query, e.ID, e.Title, e.Description, e.StartAt, e.EndAt, e.Status)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM elections WHERE id = $1`, id)
}

func (r *PostgresRepository) IncrementCounters(ctx context.Context, electionID, candidateID string) error {
	if err := r.execOne(ctx,
		`UPDATE candidates SET votes = votes + 1 WHERE id = $1 AND election_id = $2`,
		candidateID, electionID); err != nil {
		return err
	}
	return r.execOne(ctx, `UPDATE elections SET total_votes = total_votes + 1 WHERE id = $1`, electionID)
}

// execOne runs a statement that must touch exactly one row; zero rows
// means common.ErrorNotFound.
func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) loadPositions(ctx context.Context, e *models.Election) error {
	query := `
		SELECT id, position_key, title, description
		FROM positions
		WHERE election_id = $1
		ORDER BY ord
	`
	rows, err := r.db.QueryContext(ctx, query, e.ID)
	if err != nil {
		return fmt.Errorf("failed to select positions: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*models.Position)
	e.Positions = nil
	for rows.Next() {
		p := &models.Position{}
		if err := rows.Scan(&p.ID, &p.PositionKey, &p.Title, &p.Description); err != nil {
			return err
		}
		e.Positions = append(e.Positions, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `
		SELECT id, position_id, candidate_key, user_id, name, bio, symbol, agenda, campaign, photo, votes
		FROM candidates
		WHERE election_id = $1
		ORDER BY ord
	`
	crows, err := r.db.QueryContext(ctx, query, e.ID)
	if err != nil {
		return fmt.Errorf("failed to select candidates: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var (
			c          models.Candidate
			positionID string
			campaign   []byte
		)
		if err := crows.Scan(&c.ID, &positionID, &c.CandidateKey, &c.UserID, &c.Name, &c.Bio,
			&c.Symbol, &c.Agenda, &campaign, &c.Photo, &c.Votes); err != nil {
			return err
		}
		if len(campaign) > 0 {
			if err := json.Unmarshal(campaign, &c.Campaign); err != nil {
				return fmt.Errorf("decode campaign of candidate %s: %w", c.ID, err)
			}
		}
		p, ok := byID[positionID]
		if !ok {
			return fmt.Errorf("candidate %s references unknown position %s", c.ID, positionID)
		}
		p.Candidates = append(p.Candidates, &c)
	}
	return crows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElection(row rowScanner) (*models.Election, error) {
	e := &models.Election{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartAt, &e.EndAt, &e.Status,
		&e.TotalVotes, &e.CreatorID, &e.PublicKey, &e.PrivateKey, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func assignIDs(e *models.Election) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	for _, p := range e.Positions {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		for _, c := range p.Candidates {
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
		}
	}
}
