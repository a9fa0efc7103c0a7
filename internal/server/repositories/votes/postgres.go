// Package votes provides PostgreSQL and in-memory stores for cast ballots.
package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/google/uuid"
)

// Constraint names from the votes table migration.
const (
	voterPositionConstraint = "votes_voter_position_key"
	codeConstraint          = "votes_verification_code_key"
)

// PostgresRepository implements vote storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, v *models.Vote) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	query := `
		INSERT INTO votes (id, election_id, voter_id, position_id, encrypted_ballot, verification_code, cast_at, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.ElectionID, v.VoterID, v.PositionID, v.EncryptedBallot, v.VerificationCode, v.CastAt, v.IP, v.UserAgent)
	if err == nil {
		return nil
	}

	if constraint, ok := dbx.UniqueViolation(err); ok {
		switch constraint {
		case voterPositionConstraint:
			return common.ErrAlreadyVoted
		case codeConstraint:
			return ErrDuplicateCode
		default:
			return fmt.Errorf("%w: %s", common.ErrConstraintViolation, constraint)
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Exists(ctx context.Context, electionID, voterID, positionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM votes WHERE election_id = $1 AND voter_id = $2 AND position_id = $3
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, electionID, voterID, positionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// ListByElection returns every vote of the election in casting order.
func (r *PostgresRepository) ListByElection(ctx context.Context, electionID string) ([]*models.Vote, error) {
	query := `
		SELECT id, election_id, voter_id, position_id, encrypted_ballot, verification_code, cast_at, ip, user_agent
		FROM votes
		WHERE election_id = $1
		ORDER BY cast_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to select votes: %w", err)
	}
	defer rows.Close()

	var result []*models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.ElectionID, &v.VoterID, &v.PositionID, &v.EncryptedBallot,
			&v.VerificationCode, &v.CastAt, &v.IP, &v.UserAgent); err != nil {
			return nil, err
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByCode returns the vote carrying code or common.ErrorNotFound. The
// ballot is left out: lookups by code never need it.
func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*models.Vote, error) {
	query := `
		SELECT id, election_id, verification_code, cast_at
		FROM votes
		WHERE verification_code = $1
	`
	v := &models.Vote{}
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&v.ID, &v.ElectionID, &v.VerificationCode, &v.CastAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}
