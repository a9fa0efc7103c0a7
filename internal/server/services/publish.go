package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/evote/internal/server/models"
)

// ResultsStorageKey is the object key of an election's results snapshot.
func ResultsStorageKey(electionID string) string {
	return fmt.Sprintf("elections/%s/results.json", electionID)
}

// PublishService writes result snapshots to object storage and records
// where they went.
type PublishService struct {
	deps  Deps
	tally *TallyService
	store ObjectStore
	ttl   time.Duration
}

func NewPublishService(deps Deps, tally *TallyService, store ObjectStore, ttl time.Duration) *PublishService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("module", "publish")
	return &PublishService{deps: deps, tally: tally, store: store, ttl: ttl}
}

// Publish computes the election's results, uploads them as JSON and
// returns the publication record with a presigned download URL.
func (s *PublishService) Publish(ctx context.Context, electionID string) (*models.Publication, string, error) {
	res, err := s.tally.ComputeResults(ctx, electionID)
	if err != nil {
		return nil, "", err
	}

	body, err := json.Marshal(res)
	if err != nil {
		return nil, "", fmt.Errorf("error encoding results: %w", err)
	}

	key := ResultsStorageKey(res.ID)
	if err := s.store.Put(ctx, key, body, "application/json"); err != nil {
		s.deps.Log.Error(ctx, "results upload failed", "election_id", res.ID, "error", err)
		return nil, "", fmt.Errorf("error uploading results: %w", err)
	}

	pub := &models.Publication{
		ElectionID:  res.ID,
		StorageKey:  key,
		TotalVotes:  res.TotalVotes,
		PublishedAt: s.deps.Clock.Now(),
	}
	if err := s.deps.RepoManager.Publications(s.deps.Tx.Conn()).CreateOrUpdate(ctx, pub); err != nil {
		return nil, "", fmt.Errorf("error recording publication: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("error presigning results url: %w", err)
	}

	s.deps.Log.Info(ctx, "results published", "election_id", res.ID, "key", key)
	return pub, url, nil
}

// Latest returns the last publication of the election with a fresh URL.
func (s *PublishService) Latest(ctx context.Context, electionID string) (*models.Publication, string, error) {
	pub, err := s.deps.RepoManager.Publications(s.deps.Tx.Conn()).GetByElectionID(ctx, electionID)
	if err != nil {
		return nil, "", err
	}
	url, err := s.store.PresignGet(ctx, pub.StorageKey, s.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("error presigning results url: %w", err)
	}
	return pub, url, nil
}
