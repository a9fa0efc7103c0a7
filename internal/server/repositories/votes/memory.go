package votes

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/google/uuid"
)

type voterKey struct {
	electionID string
	voterID    string
	positionID string
}

// MemoryRepository mirrors the Postgres unique constraints: the voter key
// and code checks and the insert happen under one lock, so concurrent
// casts for the same voter cannot both succeed.
type MemoryRepository struct {
	mu      sync.RWMutex
	votes   []*models.Vote
	byVoter map[voterKey]struct{}
	byCode  map[string]*models.Vote
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byVoter: make(map[voterKey]struct{}),
		byCode:  make(map[string]*models.Vote),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, v *models.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := voterKey{electionID: v.ElectionID, voterID: v.VoterID, positionID: v.PositionID}
	if _, ok := r.byVoter[key]; ok {
		return common.ErrAlreadyVoted
	}
	if _, ok := r.byCode[v.VerificationCode]; ok {
		return ErrDuplicateCode
	}

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	cp := *v
	r.votes = append(r.votes, &cp)
	r.byVoter[key] = struct{}{}
	r.byCode[cp.VerificationCode] = &cp
	return nil
}

func (r *MemoryRepository) Exists(ctx context.Context, electionID, voterID, positionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byVoter[voterKey{electionID: electionID, voterID: voterID, positionID: positionID}]
	return ok, nil
}

func (r *MemoryRepository) ListByElection(ctx context.Context, electionID string) ([]*models.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Vote
	for _, v := range r.votes {
		if v.ElectionID == electionID {
			cp := *v
			result = append(result, &cp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CastAt.Before(result[j].CastAt) })
	return result, nil
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code string) (*models.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byCode[code]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Vote{ID: v.ID, ElectionID: v.ElectionID, VerificationCode: v.VerificationCode, CastAt: v.CastAt}, nil
}

// ReplaceBallot overwrites the stored ciphertext of a vote. It exists only
// so tests can simulate storage corruption; it is not part of Repository.
func (r *MemoryRepository) ReplaceBallot(code, ciphertext string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byCode[code]
	if ok {
		v.EncryptedBallot = ciphertext
	}
	return ok
}
