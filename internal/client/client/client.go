package client

import (
	"context"

	"github.com/dmitrijs2005/evote/internal/api"
)

// Client is the CLI's view of the election service.
type Client interface {
	Close() error
	SetToken(token string)
	Ping(ctx context.Context) error

	RegisterUser(ctx context.Context, email, role string, verified bool) (*api.User, string, error)

	CreateElection(ctx context.Context, req *api.CreateElectionRequest) (*api.Election, error)
	UpdateElection(ctx context.Context, req *api.UpdateElectionRequest) (*api.Election, error)
	DeleteElection(ctx context.Context, id string) error
	ListElections(ctx context.Context) ([]*api.Election, error)
	GetElection(ctx context.Context, id string) (*api.Election, error)

	CastVote(ctx context.Context, electionID, positionID, candidateID string) (string, error)
	GetResults(ctx context.Context, electionID string) (*api.Results, error)
	VerifyVote(ctx context.Context, code string) (*api.VerifyVoteResponse, error)
	PublishResults(ctx context.Context, electionID string) (*api.PublishResultsResponse, error)
}
