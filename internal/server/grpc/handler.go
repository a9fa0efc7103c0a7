package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// sentinelCodes maps domain errors whose own text is safe to return.
var sentinelCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrInvalidCandidate, codes.InvalidArgument},
	{common.ErrBallotTooLarge, codes.InvalidArgument},
	{common.ErrVotingClosed, codes.FailedPrecondition},
	{common.ErrAlreadyVoted, codes.FailedPrecondition},
	{common.ErrElectionLocked, codes.FailedPrecondition},
	{common.ErrVoterNotEligible, codes.FailedPrecondition},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrForbidden, codes.PermissionDenied},
	{common.ErrCryptoSetup, codes.Internal},
}

// toStatus converts a service error into a gRPC status. Unknown errors are
// logged and reported as a bare internal error.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrorValidation) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, common.ErrConstraintViolation) {
		return status.Error(codes.AlreadyExists, err.Error())
	}
	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			if sc.code == codes.Internal {
				s.logger.Error(ctx, "request failed", "error", err.Error())
			}
			return status.Error(sc.code, sc.err.Error())
		}
	}
	s.logger.Error(ctx, "request failed", "error", err.Error())
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func clientMeta(ctx context.Context) models.ClientMeta {
	var m models.ClientMeta
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		m.IP = p.Addr.String()
		if host, _, err := net.SplitHostPort(m.IP); err == nil {
			m.IP = host
		}
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.UserAgentHeaderName); len(values) > 0 {
			m.UserAgent = values[0]
		}
	}
	return m
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *api.RegisterUserRequest) (*api.RegisterUserResponse, error) {

	s.logger.Info(ctx, "Registration request", "role", req.Role)

	u, err := s.svc.Users.Register(ctx, req.Email, req.Role, req.Verified)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	token, err := s.svc.Users.IssueToken(ctx, u.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RegisterUserResponse{User: userToAPI(u), AccessToken: token}, nil

}

func (s *GRPCServer) CreateElection(ctx context.Context, req *api.CreateElectionRequest) (*api.ElectionResponse, error) {

	p, _ := PrincipalFromContext(ctx)

	e, err := s.svc.Elections.Create(ctx, createInputFromAPI(req, p.UserID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Election created", "election_id", e.ID, "creator_id", p.UserID)
	return &api.ElectionResponse{Election: electionToAPI(e)}, nil

}

func (s *GRPCServer) GetElection(ctx context.Context, req *api.GetElectionRequest) (*api.ElectionResponse, error) {

	e, err := s.svc.Elections.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ElectionResponse{Election: electionToAPI(e)}, nil

}

func (s *GRPCServer) ListElections(ctx context.Context, req *api.ListElectionsRequest) (*api.ListElectionsResponse, error) {

	list, err := s.svc.Elections.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]*api.Election, 0, len(list))
	for _, e := range list {
		out = append(out, electionToAPI(e))
	}

	return &api.ListElectionsResponse{Elections: out}, nil

}

func (s *GRPCServer) UpdateElection(ctx context.Context, req *api.UpdateElectionRequest) (*api.ElectionResponse, error) {

	e, err := s.svc.Elections.UpdateDetails(ctx, services.UpdateElectionInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ElectionResponse{Election: electionToAPI(e)}, nil

}

func (s *GRPCServer) DeleteElection(ctx context.Context, req *api.DeleteElectionRequest) (*api.DeleteElectionResponse, error) {

	if err := s.svc.Elections.Delete(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Election deleted", "election_id", req.ID)
	return &api.DeleteElectionResponse{}, nil

}

func (s *GRPCServer) CastVote(ctx context.Context, req *api.CastVoteRequest) (*api.CastVoteResponse, error) {

	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}

	code, err := s.svc.Voting.Cast(ctx, services.CastRequest{
		ElectionID:  req.ElectionID,
		VoterID:     p.UserID,
		PositionID:  req.PositionID,
		CandidateID: req.CandidateID,
		Meta:        clientMeta(ctx),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.notifyVoter(ctx, p.UserID, code)

	return &api.CastVoteResponse{VerificationCode: code}, nil

}

// notifyVoter sends the receipt code to the voter. Failures do not affect
// the cast vote.
func (s *GRPCServer) notifyVoter(ctx context.Context, userID, code string) {
	u, err := s.svc.Users.Get(ctx, userID)
	if err != nil {
		s.logger.Warn(ctx, "voter lookup for notification failed", "user_id", userID, "error", err.Error())
		return
	}
	if err := s.svc.Notifier.SendVerification(ctx, u.Email, code); err != nil {
		s.logger.Warn(ctx, "verification notification failed", "user_id", userID, "error", err.Error())
	}
}

func (s *GRPCServer) GetResults(ctx context.Context, req *api.GetResultsRequest) (*api.GetResultsResponse, error) {

	r, err := s.svc.Tally.ComputeResults(ctx, req.ElectionID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.GetResultsResponse{Results: resultsToAPI(r)}, nil

}

func (s *GRPCServer) VerifyVote(ctx context.Context, req *api.VerifyVoteRequest) (*api.VerifyVoteResponse, error) {

	v, err := s.svc.Tally.Verify(ctx, req.Code)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.VerifyVoteResponse{Verified: v.Verified, ElectionID: v.ElectionID, Timestamp: v.Timestamp}, nil

}

func (s *GRPCServer) PublishResults(ctx context.Context, req *api.PublishResultsRequest) (*api.PublishResultsResponse, error) {

	pub, url, err := s.svc.Publisher.Publish(ctx, req.ElectionID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.PublishResultsResponse{
		StorageKey:  pub.StorageKey,
		URL:         url,
		TotalVotes:  pub.TotalVotes,
		PublishedAt: pub.PublishedAt,
	}, nil

}
