package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/logging"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/services"
	"google.golang.org/grpc"
)

type ElectionManager interface {
	Create(ctx context.Context, in services.CreateElectionInput) (*models.Election, error)
	Get(ctx context.Context, id string) (*models.Election, error)
	List(ctx context.Context) ([]*models.Election, error)
	UpdateDetails(ctx context.Context, in services.UpdateElectionInput) (*models.Election, error)
	Delete(ctx context.Context, id string) error
}

type VoteCaster interface {
	Cast(ctx context.Context, req services.CastRequest) (string, error)
}

type ResultsProvider interface {
	ComputeResults(ctx context.Context, electionID string) (*models.Results, error)
	Verify(ctx context.Context, code string) (*models.Verification, error)
}

type ResultsPublisher interface {
	Publish(ctx context.Context, electionID string) (*models.Publication, string, error)
}

type UserDirectory interface {
	Register(ctx context.Context, email, role string, verified bool) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	CheckEligible(ctx context.Context, id string) error
	IssueToken(ctx context.Context, id string) (string, error)
}

// Services groups the collaborators the gRPC server exposes.
type Services struct {
	Elections ElectionManager
	Voting    VoteCaster
	Tally     ResultsProvider
	Publisher ResultsPublisher
	Users     UserDirectory
	Notifier  services.Notifier
}

type GRPCServer struct {
	api.UnimplementedElectionServiceServer
	address   string
	svc       Services
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) (*GRPCServer, error) {
	l = l.With("module", "grpc_server")
	if svc.Notifier == nil {
		svc.Notifier = services.NewLogNotifier(l)
	}
	return &GRPCServer{
		address:   a,
		logger:    l,
		svc:       svc,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterElectionServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
