package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/evote/internal/timex"
	"github.com/stretchr/testify/require"
)

var (
	t0         = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	startAt    = t0.Add(time.Hour)
	endAt      = t0.Add(3 * time.Hour)
	duringVote = t0.Add(2 * time.Hour)
	afterVote  = t0.Add(4 * time.Hour)

	longBio    = strings.Repeat("b", MinBioLength)
	longAgenda = strings.Repeat("a", MinAgendaLength)
)

type env struct {
	clock     *timex.FixedClock
	repos     *repomanager.MemoryRepositoryManager
	deps      Deps
	elections *ElectionService
	voting    *VotingService
	tally     *TallyService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clock := &timex.FixedClock{T: t0}
	repos := repomanager.NewMemoryRepositoryManager()
	deps := Deps{Tx: dbx.NoTx{}, RepoManager: repos, Clock: clock}
	return &env{
		clock:     clock,
		repos:     repos,
		deps:      deps,
		elections: NewElectionService(deps, nil),
		voting:    NewVotingService(deps),
		tally:     NewTallyService(deps, nil),
	}
}

func candidate(key, name string) CandidateInput {
	return CandidateInput{Key: key, Name: name, Bio: longBio, Agenda: longAgenda, Symbol: "*"}
}

func singlePositionInput() CreateElectionInput {
	return CreateElectionInput{
		Title:     "Student council",
		StartAt:   startAt,
		EndAt:     endAt,
		CreatorID: "admin-1",
		Positions: []PositionInput{{
			Key:   "president",
			Title: "President",
			Candidates: []CandidateInput{
				candidate("A", "Alice"),
				candidate("B", "Bob"),
			},
		}},
	}
}

func multiPositionInput() CreateElectionInput {
	in := singlePositionInput()
	in.Positions = append(in.Positions, PositionInput{
		Key:   "treasurer",
		Title: "Treasurer",
		Candidates: []CandidateInput{
			candidate("C", "Carol"),
			candidate("D", "Dave"),
			candidate("E", "Eve"),
		},
	}, PositionInput{Key: "secretary", Title: "Secretary"})
	return in
}

// createActive creates the election and moves the clock into its window.
func (e *env) createActive(t *testing.T, in CreateElectionInput) *models.Election {
	t.Helper()
	el, err := e.elections.Create(context.Background(), in)
	require.NoError(t, err)
	e.clock.T = duringVote
	return el
}

func (e *env) cast(t *testing.T, electionID, voter, position, candidate string) string {
	t.Helper()
	code, err := e.voting.Cast(context.Background(), CastRequest{
		ElectionID: electionID, VoterID: voter, PositionID: position, CandidateID: candidate,
	})
	require.NoError(t, err)
	return code
}
