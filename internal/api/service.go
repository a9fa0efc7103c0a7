package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "evote.v1.ElectionService"

const (
	ElectionService_Ping_FullMethodName           = "/evote.v1.ElectionService/Ping"
	ElectionService_RegisterUser_FullMethodName   = "/evote.v1.ElectionService/RegisterUser"
	ElectionService_CreateElection_FullMethodName = "/evote.v1.ElectionService/CreateElection"
	ElectionService_GetElection_FullMethodName    = "/evote.v1.ElectionService/GetElection"
	ElectionService_ListElections_FullMethodName  = "/evote.v1.ElectionService/ListElections"
	ElectionService_UpdateElection_FullMethodName = "/evote.v1.ElectionService/UpdateElection"
	ElectionService_DeleteElection_FullMethodName = "/evote.v1.ElectionService/DeleteElection"
	ElectionService_CastVote_FullMethodName       = "/evote.v1.ElectionService/CastVote"
	ElectionService_GetResults_FullMethodName     = "/evote.v1.ElectionService/GetResults"
	ElectionService_VerifyVote_FullMethodName     = "/evote.v1.ElectionService/VerifyVote"
	ElectionService_PublishResults_FullMethodName = "/evote.v1.ElectionService/PublishResults"
)

// ElectionServiceServer is the server API for the election service.
type ElectionServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	CreateElection(context.Context, *CreateElectionRequest) (*ElectionResponse, error)
	GetElection(context.Context, *GetElectionRequest) (*ElectionResponse, error)
	ListElections(context.Context, *ListElectionsRequest) (*ListElectionsResponse, error)
	UpdateElection(context.Context, *UpdateElectionRequest) (*ElectionResponse, error)
	DeleteElection(context.Context, *DeleteElectionRequest) (*DeleteElectionResponse, error)
	CastVote(context.Context, *CastVoteRequest) (*CastVoteResponse, error)
	GetResults(context.Context, *GetResultsRequest) (*GetResultsResponse, error)
	VerifyVote(context.Context, *VerifyVoteRequest) (*VerifyVoteResponse, error)
	PublishResults(context.Context, *PublishResultsRequest) (*PublishResultsResponse, error)
}

// UnimplementedElectionServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedElectionServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedElectionServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedElectionServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, unimplemented("RegisterUser")
}
func (UnimplementedElectionServiceServer) CreateElection(context.Context, *CreateElectionRequest) (*ElectionResponse, error) {
	return nil, unimplemented("CreateElection")
}
func (UnimplementedElectionServiceServer) GetElection(context.Context, *GetElectionRequest) (*ElectionResponse, error) {
	return nil, unimplemented("GetElection")
}
func (UnimplementedElectionServiceServer) ListElections(context.Context, *ListElectionsRequest) (*ListElectionsResponse, error) {
	return nil, unimplemented("ListElections")
}
func (UnimplementedElectionServiceServer) UpdateElection(context.Context, *UpdateElectionRequest) (*ElectionResponse, error) {
	return nil, unimplemented("UpdateElection")
}
func (UnimplementedElectionServiceServer) DeleteElection(context.Context, *DeleteElectionRequest) (*DeleteElectionResponse, error) {
	return nil, unimplemented("DeleteElection")
}
func (UnimplementedElectionServiceServer) CastVote(context.Context, *CastVoteRequest) (*CastVoteResponse, error) {
	return nil, unimplemented("CastVote")
}
func (UnimplementedElectionServiceServer) GetResults(context.Context, *GetResultsRequest) (*GetResultsResponse, error) {
	return nil, unimplemented("GetResults")
}
func (UnimplementedElectionServiceServer) VerifyVote(context.Context, *VerifyVoteRequest) (*VerifyVoteResponse, error) {
	return nil, unimplemented("VerifyVote")
}
func (UnimplementedElectionServiceServer) PublishResults(context.Context, *PublishResultsRequest) (*PublishResultsResponse, error) {
	return nil, unimplemented("PublishResults")
}

// unary adapts a typed server method to a grpc.MethodDesc, decoding the
// request and routing it through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(ElectionServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ElectionServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ElectionServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ElectionService_ServiceDesc is the grpc.ServiceDesc for the election
// service.
var ElectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ElectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", ElectionServiceServer.Ping),
		unary("RegisterUser", ElectionServiceServer.RegisterUser),
		unary("CreateElection", ElectionServiceServer.CreateElection),
		unary("GetElection", ElectionServiceServer.GetElection),
		unary("ListElections", ElectionServiceServer.ListElections),
		unary("UpdateElection", ElectionServiceServer.UpdateElection),
		unary("DeleteElection", ElectionServiceServer.DeleteElection),
		unary("CastVote", ElectionServiceServer.CastVote),
		unary("GetResults", ElectionServiceServer.GetResults),
		unary("VerifyVote", ElectionServiceServer.VerifyVote),
		unary("PublishResults", ElectionServiceServer.PublishResults),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "evote/v1/election_service",
}

func RegisterElectionServiceServer(s grpc.ServiceRegistrar, srv ElectionServiceServer) {
	s.RegisterService(&ElectionService_ServiceDesc, srv)
}
