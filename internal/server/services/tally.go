package services

import (
	"context"
	"math"
	"sort"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/cryptox"
	"github.com/dmitrijs2005/evote/internal/server/models"
)

// TallyService decrypts ballots and computes results. Results may be
// computed in any election status.
type TallyService struct {
	deps   Deps
	sealer *cryptox.KeySealer
}

func NewTallyService(deps Deps, sealer *cryptox.KeySealer) *TallyService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("module", "tally")
	if sealer == nil {
		sealer = cryptox.NewKeySealer("", deps.Random)
	}
	return &TallyService{deps: deps, sealer: sealer}
}

// ComputeResults recounts the election from its stored ballots. Ballots
// that fail to decrypt or name an unknown candidate are logged and
// skipped. Candidates of a position are ordered by votes, descending, with
// ties kept in input order; the first of them is the winner.
func (s *TallyService) ComputeResults(ctx context.Context, electionID string) (*models.Results, error) {
	conn := s.deps.Tx.Conn()
	electionRepo := s.deps.RepoManager.Elections(conn)

	e, err := electionRepo.Get(ctx, electionID)
	if err != nil {
		return nil, err
	}
	refreshStatus(ctx, electionRepo, s.deps.Log, e, s.deps.Clock.Now())

	privatePEM, err := s.sealer.Open(e.PrivateKey)
	if err != nil {
		s.deps.Log.Error(ctx, "private key unavailable", "election_id", e.ID, "error", err)
		return nil, err
	}
	opener, err := cryptox.NewBallotOpener(privatePEM)
	if err != nil {
		s.deps.Log.Error(ctx, "private key unusable", "election_id", e.ID, "error", err)
		return nil, err
	}

	ballots, err := s.deps.RepoManager.Votes(conn).ListByElection(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]map[string]int64, len(e.Positions))
	for _, p := range e.Positions {
		counts[p.ID] = make(map[string]int64, len(p.Candidates))
		for _, c := range p.Candidates {
			counts[p.ID][c.CandidateKey] = 0
		}
	}

	codes := make([]string, 0, len(ballots))
	var skipped int
	for _, v := range ballots {
		codes = append(codes, v.VerificationCode)

		perCandidate, ok := counts[v.PositionID]
		if !ok {
			skipped++
			s.deps.Log.Warn(ctx, "ballot for unknown position skipped", "election_id", e.ID, "vote_id", v.ID)
			continue
		}
		ballot, err := opener.Open(v.EncryptedBallot)
		if err != nil {
			skipped++
			s.deps.Log.Warn(ctx, "undecryptable ballot skipped", "election_id", e.ID, "vote_id", v.ID, "error", err)
			continue
		}
		if _, ok := perCandidate[ballot.CandidateID]; !ok {
			skipped++
			s.deps.Log.Warn(ctx, "ballot for unknown candidate skipped", "election_id", e.ID, "vote_id", v.ID)
			continue
		}
		perCandidate[ballot.CandidateID]++
	}

	res := &models.Results{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		StartDate:     e.StartAt,
		EndDate:       e.EndAt,
		Status:        e.Status,
		TotalVotes:    int64(len(ballots)),
		VerifiedVotes: codes,
		Positions:     make([]*models.PositionResult, 0, len(e.Positions)),
	}
	for _, p := range e.Positions {
		res.Positions = append(res.Positions, positionResult(p, counts[p.ID]))
	}

	s.deps.Log.Info(ctx, "results computed", "election_id", e.ID, "ballots", len(ballots), "skipped", skipped)
	return res, nil
}

func positionResult(p *models.Position, counts map[string]int64) *models.PositionResult {
	pr := &models.PositionResult{
		PositionID:  p.PositionKey,
		Title:       p.Title,
		Description: p.Description,
		Candidates:  make([]*models.CandidateResult, 0, len(p.Candidates)),
	}
	for _, c := range p.Candidates {
		pr.TotalVotes += counts[c.CandidateKey]
	}
	for _, c := range p.Candidates {
		votes := counts[c.CandidateKey]
		pr.Candidates = append(pr.Candidates, &models.CandidateResult{
			ID:          c.ID,
			CandidateID: c.CandidateKey,
			Name:        c.Name,
			Votes:       votes,
			Percentage:  percentage(votes, pr.TotalVotes),
			Photo:       c.Photo,
			Symbol:      c.Symbol,
		})
	}
	sort.SliceStable(pr.Candidates, func(i, j int) bool {
		return pr.Candidates[i].Votes > pr.Candidates[j].Votes
	})
	if len(pr.Candidates) > 0 {
		pr.Winner = pr.Candidates[0]
	}
	return pr
}

// percentage returns votes/total*100 rounded to 2 decimals, or 0 for an
// empty position.
func percentage(votes, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(total)*100*100) / 100
}

// Verify confirms that a ballot with the given code exists. The answer
// never carries the ballot or the voter.
func (s *TallyService) Verify(ctx context.Context, code string) (*models.Verification, error) {
	if !cryptox.IsVerificationCode(code) {
		return nil, common.ErrorNotFound
	}
	v, err := s.deps.RepoManager.Votes(s.deps.Tx.Conn()).FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &models.Verification{Verified: true, ElectionID: v.ElectionID, Timestamp: v.CastAt}, nil
}
