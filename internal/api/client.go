package api

import (
	"context"

	"google.golang.org/grpc"
)

// ElectionServiceClient is the client API for the election service.
type ElectionServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	CreateElection(ctx context.Context, in *CreateElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error)
	GetElection(ctx context.Context, in *GetElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error)
	ListElections(ctx context.Context, in *ListElectionsRequest, opts ...grpc.CallOption) (*ListElectionsResponse, error)
	UpdateElection(ctx context.Context, in *UpdateElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error)
	DeleteElection(ctx context.Context, in *DeleteElectionRequest, opts ...grpc.CallOption) (*DeleteElectionResponse, error)
	CastVote(ctx context.Context, in *CastVoteRequest, opts ...grpc.CallOption) (*CastVoteResponse, error)
	GetResults(ctx context.Context, in *GetResultsRequest, opts ...grpc.CallOption) (*GetResultsResponse, error)
	VerifyVote(ctx context.Context, in *VerifyVoteRequest, opts ...grpc.CallOption) (*VerifyVoteResponse, error)
	PublishResults(ctx context.Context, in *PublishResultsRequest, opts ...grpc.CallOption) (*PublishResultsResponse, error)
}

type electionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewElectionServiceClient returns a client that sends every call with the
// JSON content subtype.
func NewElectionServiceClient(cc grpc.ClientConnInterface) ElectionServiceClient {
	return &electionServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, ElectionService_Ping_FullMethodName, in, opts)
}

func (c *electionServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, ElectionService_RegisterUser_FullMethodName, in, opts)
}

func (c *electionServiceClient) CreateElection(ctx context.Context, in *CreateElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error) {
	return invoke[ElectionResponse](ctx, c.cc, ElectionService_CreateElection_FullMethodName, in, opts)
}

func (c *electionServiceClient) GetElection(ctx context.Context, in *GetElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error) {
	return invoke[ElectionResponse](ctx, c.cc, ElectionService_GetElection_FullMethodName, in, opts)
}

func (c *electionServiceClient) ListElections(ctx context.Context, in *ListElectionsRequest, opts ...grpc.CallOption) (*ListElectionsResponse, error) {
	return invoke[ListElectionsResponse](ctx, c.cc, ElectionService_ListElections_FullMethodName, in, opts)
}

func (c *electionServiceClient) UpdateElection(ctx context.Context, in *UpdateElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error) {
	return invoke[ElectionResponse](ctx, c.cc, ElectionService_UpdateElection_FullMethodName, in, opts)
}

func (c *electionServiceClient) DeleteElection(ctx context.Context, in *DeleteElectionRequest, opts ...grpc.CallOption) (*DeleteElectionResponse, error) {
	return invoke[DeleteElectionResponse](ctx, c.cc, ElectionService_DeleteElection_FullMethodName, in, opts)
}

func (c *electionServiceClient) CastVote(ctx context.Context, in *CastVoteRequest, opts ...grpc.CallOption) (*CastVoteResponse, error) {
	return invoke[CastVoteResponse](ctx, c.cc, ElectionService_CastVote_FullMethodName, in, opts)
}

func (c *electionServiceClient) GetResults(ctx context.Context, in *GetResultsRequest, opts ...grpc.CallOption) (*GetResultsResponse, error) {
	return invoke[GetResultsResponse](ctx, c.cc, ElectionService_GetResults_FullMethodName, in, opts)
}

func (c *electionServiceClient) VerifyVote(ctx context.Context, in *VerifyVoteRequest, opts ...grpc.CallOption) (*VerifyVoteResponse, error) {
	return invoke[VerifyVoteResponse](ctx, c.cc, ElectionService_VerifyVote_FullMethodName, in, opts)
}

func (c *electionServiceClient) PublishResults(ctx context.Context, in *PublishResultsRequest, opts ...grpc.CallOption) (*PublishResultsResponse, error) {
	return invoke[PublishResultsResponse](ctx, c.cc, ElectionService_PublishResults_FullMethodName, in, opts)
}
