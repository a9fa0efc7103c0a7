package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/cryptox"
	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/repositories/elections"
	"github.com/dmitrijs2005/evote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/evote/internal/server/repositories/votes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCast_SinglePosition(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	el := e.createActive(t, singlePositionInput())

	code, err := e.voting.Cast(ctx, CastRequest{
		ElectionID:  el.ID,
		VoterID:     "voter-1",
		CandidateID: "A",
		Meta:        models.ClientMeta{IP: "10.0.0.1", UserAgent: "cli"},
	})
	require.NoError(t, err)
	assert.True(t, cryptox.IsVerificationCode(code))

	stored, err := e.repos.Votes(nil).ListByElection(ctx, el.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	v := stored[0]
	assert.Equal(t, el.Positions[0].ID, v.PositionID)
	assert.Equal(t, code, v.VerificationCode)
	assert.Equal(t, duringVote, v.CastAt)
	assert.Equal(t, "10.0.0.1", v.IP)
	assert.Equal(t, "cli", v.UserAgent)

	counted, err := e.repos.Elections(nil).Get(ctx, el.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counted.TotalVotes)
	assert.Equal(t, int64(1), counted.Positions[0].Candidates[0].Votes)
	assert.Equal(t, models.StatusActive, counted.Status)
}

func TestCast_BallotDecryptsToChosenCandidate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	el := e.createActive(t, singlePositionInput())
	e.cast(t, el.ID, "voter-1", "", "B")

	stored, err := e.repos.Elections(nil).Get(ctx, el.ID)
	require.NoError(t, err)
	ballots, err := e.repos.Votes(nil).ListByElection(ctx, el.ID)
	require.NoError(t, err)

	b, err := cryptox.DecryptBallot(ballots[0].EncryptedBallot, stored.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, "B", b.CandidateID)
}

func TestCast_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("election not found", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.voting.Cast(ctx, CastRequest{ElectionID: "ghost", VoterID: "v", CandidateID: "A"})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("upcoming election is closed", func(t *testing.T) {
		e := newEnv(t)
		el, err := e.elections.Create(ctx, singlePositionInput())
		require.NoError(t, err)
		_, err = e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", CandidateID: "A"})
		assert.ErrorIs(t, err, common.ErrVotingClosed)
	})

	t.Run("completed election is closed", func(t *testing.T) {
		e := newEnv(t)
		el := e.createActive(t, singlePositionInput())
		e.clock.T = endAt
		_, err := e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", CandidateID: "A"})
		assert.ErrorIs(t, err, common.ErrVotingClosed)

		stored, err := e.repos.Elections(nil).Get(ctx, el.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, stored.Status)
	})

	t.Run("start instant is open", func(t *testing.T) {
		e := newEnv(t)
		el := e.createActive(t, singlePositionInput())
		e.clock.T = startAt
		e.cast(t, el.ID, "v", "", "A")
	})

	t.Run("unknown candidate in single position", func(t *testing.T) {
		e := newEnv(t)
		el := e.createActive(t, singlePositionInput())
		_, err := e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", CandidateID: "Z"})
		assert.ErrorIs(t, err, common.ErrInvalidCandidate)
	})

	t.Run("unknown candidate without position", func(t *testing.T) {
		e := newEnv(t)
		el := e.createActive(t, multiPositionInput())
		_, err := e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", CandidateID: "Z"})
		assert.ErrorIs(t, err, common.ErrInvalidCandidate)
	})

	t.Run("candidate of another position", func(t *testing.T) {
		e := newEnv(t)
		el := e.createActive(t, multiPositionInput())
		_, err := e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", PositionID: "president", CandidateID: "C"})
		assert.ErrorIs(t, err, common.ErrInvalidCandidate)
	})

	t.Run("unknown position", func(t *testing.T) {
		e := newEnv(t)
		el := e.createActive(t, multiPositionInput())
		_, err := e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", PositionID: "mayor", CandidateID: "A"})
		assert.ErrorIs(t, err, common.ErrInvalidCandidate)
	})

	t.Run("already voted is reported before invalid candidate", func(t *testing.T) {
		e := newEnv(t)
		el := e.createActive(t, singlePositionInput())
		e.cast(t, el.ID, "v", "", "A")

		_, err := e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", CandidateID: "B"})
		assert.ErrorIs(t, err, common.ErrAlreadyVoted)

		_, err = e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", PositionID: "president", CandidateID: "Z"})
		assert.ErrorIs(t, err, common.ErrAlreadyVoted)
	})
}

func TestCast_MultiPosition(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	el := e.createActive(t, multiPositionInput())

	e.cast(t, el.ID, "v", "president", "A")
	// Position resolved from the candidate.
	e.cast(t, el.ID, "v", "", "D")

	_, err := e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", CandidateID: "E"})
	assert.ErrorIs(t, err, common.ErrAlreadyVoted)

	_, err = e.voting.Cast(ctx, CastRequest{ElectionID: el.ID, VoterID: "v", PositionID: "treasurer", CandidateID: "C"})
	assert.ErrorIs(t, err, common.ErrAlreadyVoted)

	e.cast(t, el.ID, "other", "treasurer", "C")

	stored, err := e.repos.Votes(nil).ListByElection(ctx, el.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestCast_ConcurrentSameVoter(t *testing.T) {
	e := newEnv(t)
	el := e.createActive(t, singlePositionInput())

	const attempts = 10
	var wg sync.WaitGroup
	var succeeded, duplicates atomic.Int32
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			candidate := "A"
			if i%2 == 1 {
				candidate = "B"
			}
			_, err := e.voting.Cast(context.Background(), CastRequest{ElectionID: el.ID, VoterID: "racer", CandidateID: candidate})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, common.ErrAlreadyVoted):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(attempts-1), duplicates.Load())

	stored, err := e.repos.Votes(nil).ListByElection(context.Background(), el.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

// collidingVotes rejects the first n inserts with a code collision.
type collidingVotes struct {
	votes.Repository
	remaining atomic.Int32
	calls     atomic.Int32
}

func (c *collidingVotes) Create(ctx context.Context, v *models.Vote) error {
	c.calls.Add(1)
	if c.remaining.Add(-1) >= 0 {
		return votes.ErrDuplicateCode
	}
	return c.Repository.Create(ctx, v)
}

type collidingManager struct {
	*repomanager.MemoryRepositoryManager
	votes *collidingVotes
}

func (m *collidingManager) Votes(dbx.DBTX) votes.Repository { return m.votes }

func newCollidingEnv(t *testing.T, collisions int32) (*env, *collidingVotes) {
	t.Helper()
	e := newEnv(t)
	cv := &collidingVotes{Repository: e.repos.Votes(nil)}
	cv.remaining.Store(collisions)
	e.deps.RepoManager = &collidingManager{MemoryRepositoryManager: e.repos, votes: cv}
	e.voting = NewVotingService(e.deps)
	return e, cv
}

func TestCast_RetriesOnCodeCollision(t *testing.T) {
	e, cv := newCollidingEnv(t, 2)
	el := e.createActive(t, singlePositionInput())

	code := e.cast(t, el.ID, "v", "", "A")
	assert.True(t, cryptox.IsVerificationCode(code))
	assert.Equal(t, int32(3), cv.calls.Load())
}

func TestCast_GivesUpAfterMaxAttempts(t *testing.T) {
	e, cv := newCollidingEnv(t, 100)
	el := e.createActive(t, singlePositionInput())

	_, err := e.voting.Cast(context.Background(), CastRequest{ElectionID: el.ID, VoterID: "v", CandidateID: "A"})
	require.ErrorIs(t, err, votes.ErrDuplicateCode)
	assert.Equal(t, int32(maxCastAttempts), cv.calls.Load())

	stored, err := e.repos.Votes(nil).ListByElection(context.Background(), el.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

// brokenElections fails status and counter writes.
type brokenElections struct {
	elections.Repository
	statusWrites atomic.Int32
	failCounters bool
}

func (b *brokenElections) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	b.statusWrites.Add(1)
	return errors.New("current transaction is aborted")
}

func (b *brokenElections) IncrementCounters(ctx context.Context, electionID, candidateID string) error {
	if b.failCounters {
		return errors.New("counter update failed")
	}
	return b.Repository.IncrementCounters(ctx, electionID, candidateID)
}

type brokenElectionsManager struct {
	*repomanager.MemoryRepositoryManager
	elections *brokenElections
}

func (m *brokenElectionsManager) Elections(dbx.DBTX) elections.Repository { return m.elections }

func newBrokenElectionsEnv(t *testing.T, failCounters bool) (*env, *brokenElections) {
	t.Helper()
	e := newEnv(t)
	be := &brokenElections{Repository: e.repos.Elections(nil), failCounters: failCounters}
	e.voting = NewVotingService(Deps{
		Tx:          e.deps.Tx,
		RepoManager: &brokenElectionsManager{MemoryRepositoryManager: e.repos, elections: be},
		Clock:       e.clock,
	})
	return e, be
}

func TestCast_DoesNotWriteStatusInsideTx(t *testing.T) {
	e, be := newBrokenElectionsEnv(t, false)
	el := e.createActive(t, singlePositionInput())

	code := e.cast(t, el.ID, "v1", "", "A")
	assert.True(t, cryptox.IsVerificationCode(code))
	assert.Zero(t, be.statusWrites.Load())

	e.clock.T = afterVote
	_, err := e.voting.Cast(context.Background(), CastRequest{ElectionID: el.ID, VoterID: "v2", CandidateID: "A"})
	require.ErrorIs(t, err, common.ErrVotingClosed)
	assert.Zero(t, be.statusWrites.Load())
}

func TestCast_CounterFailureKeepsVote(t *testing.T) {
	e, _ := newBrokenElectionsEnv(t, true)
	el := e.createActive(t, singlePositionInput())

	code := e.cast(t, el.ID, "v1", "", "B")
	assert.True(t, cryptox.IsVerificationCode(code))

	stored, err := e.repos.Votes(nil).ListByElection(context.Background(), el.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, code, stored[0].VerificationCode)

	res, err := e.tally.ComputeResults(context.Background(), el.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", res.Positions[0].Winner.CandidateID)
}
