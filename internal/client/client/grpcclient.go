package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	userAgent   = "evote-cli"
	pingTimeout = 5 * time.Second
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.ElectionServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetToken replaces the token sent with subsequent calls.
func (s *GRPCClient) SetToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if t := s.token(); t != "" {
		ctx = withAccessToken(ctx, t)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewElectionClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUserAgent(userAgent),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewElectionServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// RegisterUser creates an account and returns it with an access token
// issued for it.
func (s *GRPCClient) RegisterUser(ctx context.Context, email, role string, verified bool) (*api.User, string, error) {
	resp, err := s.client.RegisterUser(ctx, &api.RegisterUserRequest{Email: email, Role: role, Verified: verified})
	if err != nil {
		return nil, "", s.mapError(err)
	}
	return resp.User, resp.AccessToken, nil
}

func (s *GRPCClient) CreateElection(ctx context.Context, req *api.CreateElectionRequest) (*api.Election, error) {
	resp, err := s.client.CreateElection(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Election, nil
}

func (s *GRPCClient) UpdateElection(ctx context.Context, req *api.UpdateElectionRequest) (*api.Election, error) {
	resp, err := s.client.UpdateElection(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Election, nil
}

func (s *GRPCClient) DeleteElection(ctx context.Context, id string) error {
	_, err := s.client.DeleteElection(ctx, &api.DeleteElectionRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) ListElections(ctx context.Context) ([]*api.Election, error) {
	resp, err := s.client.ListElections(ctx, &api.ListElectionsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Elections, nil
}

func (s *GRPCClient) GetElection(ctx context.Context, id string) (*api.Election, error) {
	resp, err := s.client.GetElection(ctx, &api.GetElectionRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Election, nil
}

// CastVote returns the verification code of the stored ballot.
func (s *GRPCClient) CastVote(ctx context.Context, electionID, positionID, candidateID string) (string, error) {
	resp, err := s.client.CastVote(ctx, &api.CastVoteRequest{
		ElectionID:  electionID,
		PositionID:  positionID,
		CandidateID: candidateID,
	})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.VerificationCode, nil
}

func (s *GRPCClient) GetResults(ctx context.Context, electionID string) (*api.Results, error) {
	resp, err := s.client.GetResults(ctx, &api.GetResultsRequest{ElectionID: electionID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Results, nil
}

func (s *GRPCClient) VerifyVote(ctx context.Context, code string) (*api.VerifyVoteResponse, error) {
	resp, err := s.client.VerifyVote(ctx, &api.VerifyVoteRequest{Code: code})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) PublishResults(ctx context.Context, electionID string) (*api.PublishResultsResponse, error) {
	resp, err := s.client.PublishResults(ctx, &api.PublishResultsRequest{ElectionID: electionID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	default:
		return errors.New(st.Message())
	}
}
