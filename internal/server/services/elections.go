package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/cryptox"
	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/repositories/elections"
)

// Minimum lengths of candidate texts, in characters.
const (
	MinBioLength    = 50
	MinAgendaLength = 100
)

type CandidateInput struct {
	Key      string
	UserID   string
	Name     string
	Bio      string
	Symbol   string
	Agenda   string
	Campaign models.Campaign
	Photo    string
}

type PositionInput struct {
	Key         string
	Title       string
	Description string
	Candidates  []CandidateInput
}

// CreateElectionInput describes a new election. Position and candidate
// keys are chosen by the admin and must be unique within the election.
type CreateElectionInput struct {
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatorID   string
	Positions   []PositionInput
}

type UpdateElectionInput struct {
	ID          string
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
}

// ElectionService manages the election lifecycle. Elections can be edited
// or deleted only while upcoming.
type ElectionService struct {
	deps   Deps
	sealer *cryptox.KeySealer
}

func NewElectionService(deps Deps, sealer *cryptox.KeySealer) *ElectionService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("module", "elections")
	if sealer == nil {
		sealer = cryptox.NewKeySealer("", deps.Random)
	}
	return &ElectionService{deps: deps, sealer: sealer}
}

// Create validates in, generates the election key pair and stores the
// election with its positions and candidates in one transaction. The
// returned election carries no private key.
func (s *ElectionService) Create(ctx context.Context, in CreateElectionInput) (*models.Election, error) {
	if err := validateElection(in); err != nil {
		return nil, err
	}

	publicPEM, privatePEM, err := cryptox.GenerateKeyPair(s.deps.Random)
	if err != nil {
		s.deps.Log.Error(ctx, "key generation failed", "error", err)
		return nil, err
	}

	storedKey := privatePEM
	if s.sealer.Enabled() {
		storedKey, err = s.sealer.Seal(privatePEM)
		if err != nil {
			s.deps.Log.Error(ctx, "private key sealing failed", "error", err)
			return nil, fmt.Errorf("%w: %v", common.ErrCryptoSetup, err)
		}
	}

	now := s.deps.Clock.Now()
	e := &models.Election{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartAt:     in.StartAt,
		EndAt:       in.EndAt,
		Status:      models.ResolveStatus(models.Window{Start: in.StartAt, End: in.EndAt}, now),
		CreatorID:   in.CreatorID,
		PublicKey:   publicPEM,
		PrivateKey:  storedKey,
		CreatedAt:   now,
	}
	for _, p := range in.Positions {
		pos := &models.Position{PositionKey: p.Key, Title: p.Title, Description: p.Description}
		for _, c := range p.Candidates {
			pos.Candidates = append(pos.Candidates, &models.Candidate{
				CandidateKey: c.Key,
				UserID:       c.UserID,
				Name:         c.Name,
				Bio:          c.Bio,
				Symbol:       c.Symbol,
				Agenda:       c.Agenda,
				Campaign:     c.Campaign,
				Photo:        c.Photo,
			})
		}
		e.Positions = append(e.Positions, pos)
	}

	err = s.deps.Tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.deps.RepoManager.Elections(tx).Create(ctx, e)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating election: %w", err)
	}

	s.deps.Log.Info(ctx, "election created", "election_id", e.ID, "positions", len(e.Positions), "status", e.Status)
	return e.Public(), nil
}

// Get returns the election with a freshly resolved status.
func (s *ElectionService) Get(ctx context.Context, id string) (*models.Election, error) {
	repo := s.deps.RepoManager.Elections(s.deps.Tx.Conn())
	e, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	refreshStatus(ctx, repo, s.deps.Log, e, s.deps.Clock.Now())
	return e.Public(), nil
}

func (s *ElectionService) List(ctx context.Context) ([]*models.Election, error) {
	repo := s.deps.RepoManager.Elections(s.deps.Tx.Conn())
	items, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.deps.Clock.Now()
	result := make([]*models.Election, 0, len(items))
	for _, e := range items {
		refreshStatus(ctx, repo, s.deps.Log, e, now)
		result = append(result, e.Public())
	}
	return result, nil
}

// UpdateDetails rewrites title, description and voting window of an
// upcoming election.
func (s *ElectionService) UpdateDetails(ctx context.Context, in UpdateElectionInput) (*models.Election, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if !in.StartAt.Before(in.EndAt) {
		return nil, fmt.Errorf("%w: start must be before end", common.ErrorValidation)
	}

	var updated *models.Election
	err := s.deps.Tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.deps.RepoManager.Elections(tx)
		e, err := s.lockedCheck(ctx, repo, in.ID)
		if err != nil {
			return err
		}

		e.Title = strings.TrimSpace(in.Title)
		e.Description = in.Description
		e.StartAt = in.StartAt
		e.EndAt = in.EndAt
		e.Status = models.ResolveStatus(e.Window(), s.deps.Clock.Now())
		if err := repo.UpdateDetails(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated.Public(), nil
}

// Delete removes an upcoming election.
func (s *ElectionService) Delete(ctx context.Context, id string) error {
	return s.deps.Tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.deps.RepoManager.Elections(tx)
		if _, err := s.lockedCheck(ctx, repo, id); err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		s.deps.Log.Info(ctx, "election deleted", "election_id", id)
		return nil
	})
}

// lockedCheck loads the election and fails with ErrElectionLocked unless
// it is still upcoming.
func (s *ElectionService) lockedCheck(ctx context.Context, repo elections.Repository, id string) (*models.Election, error) {
	e, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if models.ResolveStatus(e.Window(), s.deps.Clock.Now()) != models.StatusUpcoming {
		return nil, common.ErrElectionLocked
	}
	return e, nil
}

func validateElection(in CreateElectionInput) error {
	var errs []error

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if in.StartAt.IsZero() || in.EndAt.IsZero() || !in.StartAt.Before(in.EndAt) {
		errs = append(errs, errors.New("start must be before end"))
	}
	if len(in.Positions) == 0 {
		errs = append(errs, errors.New("at least one position is required"))
	}

	positionKeys := make(map[string]struct{})
	candidateKeys := make(map[string]struct{})
	for i, p := range in.Positions {
		switch {
		case p.Key == "":
			errs = append(errs, fmt.Errorf("position %d: key is required", i+1))
		case has(positionKeys, p.Key):
			errs = append(errs, fmt.Errorf("position %q: duplicate key", p.Key))
		}
		positionKeys[p.Key] = struct{}{}
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("position %q: title is required", p.Key))
		}

		for j, c := range p.Candidates {
			switch {
			case c.Key == "":
				errs = append(errs, fmt.Errorf("position %q candidate %d: key is required", p.Key, j+1))
			case has(candidateKeys, c.Key):
				errs = append(errs, fmt.Errorf("candidate %q: duplicate key", c.Key))
			}
			candidateKeys[c.Key] = struct{}{}
			if err := cryptox.CheckBallotSize(cryptox.Ballot{CandidateID: c.Key}); err != nil {
				errs = append(errs, fmt.Errorf("candidate %q: key too long for a ballot (%d bytes max encoded)", shorten(c.Key), cryptox.MaxBallotSize))
			}
			if strings.TrimSpace(c.Name) == "" {
				errs = append(errs, fmt.Errorf("candidate %q: name is required", c.Key))
			}
			if utf8.RuneCountInString(c.Bio) < MinBioLength {
				errs = append(errs, fmt.Errorf("candidate %q: bio must be at least %d characters", c.Key, MinBioLength))
			}
			if utf8.RuneCountInString(c.Agenda) < MinAgendaLength {
				errs = append(errs, fmt.Errorf("candidate %q: agenda must be at least %d characters", c.Key, MinAgendaLength))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrorValidation, errors.Join(errs...))
	}
	return nil
}

func shorten(s string) string {
	if len(s) <= 32 {
		return s
	}
	return s[:32] + "..."
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
