package elections

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/models"
)

// MemoryRepository keeps elections in process memory. Values are copied on
// the way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu        sync.RWMutex
	elections map[string]*models.Election
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{elections: make(map[string]*models.Election)}
}

func (r *MemoryRepository) Create(ctx context.Context, e *models.Election) error {
	assignIDs(e)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.elections[e.ID]; ok {
		return common.ErrConstraintViolation
	}
	r.elections[e.ID] = cloneElection(e)
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Election, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.elections[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneElection(e), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Election, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Election, 0, len(r.elections))
	for _, e := range r.elections {
		result = append(result, cloneElection(e))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].StartAt.After(result[j].StartAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.elections[id]
	if !ok {
		return common.ErrorNotFound
	}
	e.Status = status
	return nil
}

func (r *MemoryRepository) UpdateDetails(ctx context.Context, upd *models.Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.elections[upd.ID]
	if !ok {
		return common.ErrorNotFound
	}
	e.Title = upd.Title
	e.Description = upd.Description
	e.StartAt = upd.StartAt
	e.EndAt = upd.EndAt
	e.Status = upd.Status
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.elections[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.elections, id)
	return nil
}

func (r *MemoryRepository) IncrementCounters(ctx context.Context, electionID, candidateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.elections[electionID]
	if !ok {
		return common.ErrorNotFound
	}
	for _, p := range e.Positions {
		for _, c := range p.Candidates {
			if c.ID == candidateID {
				c.Votes++
				e.TotalVotes++
				return nil
			}
		}
	}
	return common.ErrorNotFound
}

func cloneElection(e *models.Election) *models.Election {
	cp := *e
	cp.Positions = make([]*models.Position, len(e.Positions))
	for i, p := range e.Positions {
		pc := *p
		pc.Candidates = make([]*models.Candidate, len(p.Candidates))
		for j, c := range p.Candidates {
			cc := *c
			cc.Campaign.Achievements = append([]string(nil), c.Campaign.Achievements...)
			cc.Campaign.Promises = append([]string(nil), c.Campaign.Promises...)
			if c.Campaign.Social != nil {
				cc.Campaign.Social = make(map[string]string, len(c.Campaign.Social))
				for k, v := range c.Campaign.Social {
					cc.Campaign.Social[k] = v
				}
			}
			pc.Candidates[j] = &cc
		}
		cp.Positions[i] = &pc
	}
	return &cp
}
