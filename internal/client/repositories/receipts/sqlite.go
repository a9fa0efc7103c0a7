package receipts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/evote/internal/client/models"
	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save stores r; saving the same code twice keeps the first record.
func (r *SQLiteRepository) Save(ctx context.Context, rc *models.Receipt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO receipts (code, election_id, election_title, position_id, cast_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(code) DO NOTHING
	`, rc.Code, rc.ElectionID, rc.ElectionTitle, rc.PositionID, rc.CastAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}
	return nil
}

const selectReceipt = `SELECT code, election_id, election_title, position_id, cast_at, verified_at FROM receipts`

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(s scanner) (*models.Receipt, error) {
	var (
		rc       models.Receipt
		verified sql.NullTime
	)
	if err := s.Scan(&rc.Code, &rc.ElectionID, &rc.ElectionTitle, &rc.PositionID, &rc.CastAt, &verified); err != nil {
		return nil, err
	}
	if verified.Valid {
		t := verified.Time
		rc.VerifiedAt = &t
	}
	return &rc, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, code string) (*models.Receipt, error) {
	rc, err := scanReceipt(r.db.QueryRowContext(ctx, selectReceipt+` WHERE code = ?`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return rc, nil
}

// List returns all receipts, newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, selectReceipt+` ORDER BY cast_at DESC, code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var result []*models.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		result = append(result, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipt rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) MarkVerified(ctx context.Context, code string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE receipts SET verified_at = ? WHERE code = ?`, at.UTC(), code)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
