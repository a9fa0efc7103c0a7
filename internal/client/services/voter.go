package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/client/client"
	"github.com/dmitrijs2005/evote/internal/client/models"
	"github.com/dmitrijs2005/evote/internal/client/repositories/receipts"
	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/timex"
)

type VoterService interface {
	Elections(ctx context.Context) ([]*api.Election, error)
	Election(ctx context.Context, id string) (*api.Election, error)
	Cast(ctx context.Context, electionID, positionID, candidateID string) (*models.Receipt, error)
	Verify(ctx context.Context, code string) (*api.VerifyVoteResponse, error)
	Results(ctx context.Context, electionID string) (*api.Results, error)
	Receipts(ctx context.Context) ([]*models.Receipt, error)
}

type voterService struct {
	client      client.Client
	receiptRepo receipts.Repository
	clock       timex.Clock
}

func NewVoterService(c client.Client, receiptRepo receipts.Repository, clock timex.Clock) VoterService {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &voterService{client: c, receiptRepo: receiptRepo, clock: clock}
}

func (s *voterService) Elections(ctx context.Context) ([]*api.Election, error) {
	return s.client.ListElections(ctx)
}

func (s *voterService) Election(ctx context.Context, id string) (*api.Election, error) {
	return s.client.GetElection(ctx, id)
}

// Cast submits the vote and keeps its verification code locally. When the
// vote is accepted but the receipt cannot be saved, the receipt is still
// returned together with the error so the code is not lost.
func (s *voterService) Cast(ctx context.Context, electionID, positionID, candidateID string) (*models.Receipt, error) {
	e, err := s.client.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	code, err := s.client.CastVote(ctx, electionID, positionID, candidateID)
	if err != nil {
		return nil, err
	}

	rc := &models.Receipt{
		Code:          code,
		ElectionID:    electionID,
		ElectionTitle: e.Title,
		PositionID:    positionID,
		CastAt:        s.clock.Now(),
	}
	if err := s.receiptRepo.Save(ctx, rc); err != nil {
		return rc, fmt.Errorf("receipt saving error: %w", err)
	}
	return rc, nil
}

// Verify checks code with the server and, for a known local receipt,
// records when it was confirmed.
func (s *voterService) Verify(ctx context.Context, code string) (*api.VerifyVoteResponse, error) {
	v, err := s.client.VerifyVote(ctx, code)
	if err != nil {
		return nil, err
	}
	if !v.Verified {
		return v, nil
	}

	err = s.receiptRepo.MarkVerified(ctx, code, s.clock.Now())
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return v, fmt.Errorf("receipt update error: %w", err)
	}
	return v, nil
}

func (s *voterService) Results(ctx context.Context, electionID string) (*api.Results, error) {
	return s.client.GetResults(ctx, electionID)
}

func (s *voterService) Receipts(ctx context.Context) ([]*models.Receipt, error) {
	return s.receiptRepo.List(ctx)
}
