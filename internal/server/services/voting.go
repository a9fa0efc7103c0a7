package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/cryptox"
	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/repositories/votes"
)

// maxCastAttempts bounds retries after a verification code collision.
const maxCastAttempts = 5

// CastRequest is one voter's choice. PositionID is the position key and may
// be empty: single-position elections use their only position, others the
// position holding CandidateID.
type CastRequest struct {
	ElectionID  string
	VoterID     string
	PositionID  string
	CandidateID string
	Meta        models.ClientMeta
}

// VotingService casts encrypted ballots.
type VotingService struct {
	deps Deps
}

func NewVotingService(deps Deps) *VotingService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("module", "voting")
	return &VotingService{deps: deps}
}

// Cast records the voter's encrypted ballot and returns its verification
// code. Checks run in this order: the election exists (ErrorNotFound), it
// is active (ErrVotingClosed), the voter has not voted for the position
// (ErrAlreadyVoted), the candidate stands for it (ErrInvalidCandidate).
//
// The storage unique constraint on (election, voter, position) is the
// authoritative duplicate guard; the precheck only gives an early answer.
// A verification code collision aborts the transaction, so the whole unit
// of work is retried with a fresh code.
func (s *VotingService) Cast(ctx context.Context, req CastRequest) (string, error) {
	for attempt := 1; ; attempt++ {
		var code string
		err := s.deps.Tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			var err error
			code, err = s.cast(ctx, tx, req)
			return err
		})
		if err == nil {
			s.deps.Log.Info(ctx, "vote cast", "election_id", req.ElectionID, "attempt", attempt)
			return code, nil
		}
		if errors.Is(err, votes.ErrDuplicateCode) && attempt < maxCastAttempts {
			s.deps.Log.Warn(ctx, "verification code collision, retrying", "election_id", req.ElectionID, "attempt", attempt)
			continue
		}
		return "", err
	}
}

func (s *VotingService) cast(ctx context.Context, tx dbx.DBTX, req CastRequest) (string, error) {
	electionRepo := s.deps.RepoManager.Elections(tx)
	voteRepo := s.deps.RepoManager.Votes(tx)

	e, err := electionRepo.Get(ctx, req.ElectionID)
	if err != nil {
		return "", err
	}

	// Status is resolved only; it is never written inside the cast tx.
	now := s.deps.Clock.Now()
	if models.ResolveStatus(e.Window(), now) != models.StatusActive {
		return "", common.ErrVotingClosed
	}

	pos, err := resolvePosition(e, req)
	if err != nil {
		return "", err
	}

	voted, err := voteRepo.Exists(ctx, e.ID, req.VoterID, pos.ID)
	if err != nil {
		return "", err
	}
	if voted {
		return "", common.ErrAlreadyVoted
	}

	candidate, ok := pos.Candidate(req.CandidateID)
	if !ok {
		return "", fmt.Errorf("%w: %q does not stand for %q", common.ErrInvalidCandidate, req.CandidateID, pos.PositionKey)
	}

	ciphertext, err := cryptox.EncryptBallot(s.deps.Random, cryptox.Ballot{CandidateID: candidate.CandidateKey}, e.PublicKey)
	if err != nil {
		return "", err
	}

	code, err := cryptox.NewVerificationCode(s.deps.Random)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	vote := &models.Vote{
		ElectionID:       e.ID,
		VoterID:          req.VoterID,
		PositionID:       pos.ID,
		EncryptedBallot:  ciphertext,
		VerificationCode: code,
		CastAt:           now,
		IP:               req.Meta.IP,
		UserAgent:        req.Meta.UserAgent,
	}
	if err := voteRepo.Create(ctx, vote); err != nil {
		return "", err
	}

	// Counters are a display badge; results always come from the ballots.
	if err := electionRepo.IncrementCounters(ctx, e.ID, candidate.ID); err != nil {
		s.deps.Log.Warn(ctx, "failed to increment vote counters", "election_id", e.ID, "error", err)
	}

	return code, nil
}

func resolvePosition(e *models.Election, req CastRequest) (*models.Position, error) {
	if req.PositionID != "" {
		pos, ok := e.Position(req.PositionID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown position %q", common.ErrInvalidCandidate, req.PositionID)
		}
		return pos, nil
	}
	if len(e.Positions) == 1 {
		return e.Positions[0], nil
	}
	pos, _, ok := e.FindCandidate(req.CandidateID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown candidate %q", common.ErrInvalidCandidate, req.CandidateID)
	}
	return pos, nil
}
