package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/client/client"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) *client.Repositories {
	t.Helper()
	repos, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "receipts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	token  string
	closed bool

	PingErr error

	RegisterResult *api.User
	RegisterToken string
	RegisterErr   error

	Election    *api.Election
	ElectionErr error
	Elections   []*api.Election

	LastCreate *api.CreateElectionRequest
	LastUpdate *api.UpdateElectionRequest
	LastDelete string

	CastCode string
	CastErr  error
	LastCast [3]string

	Results *api.Results

	Verify    *api.VerifyVoteResponse
	VerifyErr error

	Publish    *api.PublishResultsResponse
	PublishErr error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error          { f.closed = true; return nil }
func (f *fakeClient) SetToken(token string) { f.token = token }
func (f *fakeClient) Ping(ctx context.Context) error {
	return f.PingErr
}
func (f *fakeClient) RegisterUser(ctx context.Context, email, role string, verified bool) (*api.User, string, error) {
	return f.RegisterResult, f.RegisterToken, f.RegisterErr
}
func (f *fakeClient) CreateElection(ctx context.Context, req *api.CreateElectionRequest) (*api.Election, error) {
	f.LastCreate = req
	return f.Election, f.ElectionErr
}
func (f *fakeClient) UpdateElection(ctx context.Context, req *api.UpdateElectionRequest) (*api.Election, error) {
	f.LastUpdate = req
	return f.Election, f.ElectionErr
}
func (f *fakeClient) DeleteElection(ctx context.Context, id string) error {
	f.LastDelete = id
	return f.ElectionErr
}
func (f *fakeClient) ListElections(ctx context.Context) ([]*api.Election, error) {
	return f.Elections, f.ElectionErr
}
func (f *fakeClient) GetElection(ctx context.Context, id string) (*api.Election, error) {
	return f.Election, f.ElectionErr
}
func (f *fakeClient) CastVote(ctx context.Context, electionID, positionID, candidateID string) (string, error) {
	f.LastCast = [3]string{electionID, positionID, candidateID}
	return f.CastCode, f.CastErr
}
func (f *fakeClient) GetResults(ctx context.Context, electionID string) (*api.Results, error) {
	return f.Results, nil
}
func (f *fakeClient) VerifyVote(ctx context.Context, code string) (*api.VerifyVoteResponse, error) {
	return f.Verify, f.VerifyErr
}
func (f *fakeClient) PublishResults(ctx context.Context, electionID string) (*api.PublishResultsResponse, error) {
	return f.Publish, f.PublishErr
}
