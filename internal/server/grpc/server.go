// Package grpc serves linkify.v1.LinkifyService.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/linkify/internal/logging"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	pb.UnimplementedLinkifyServiceServer
	address      string
	transactions *services.TransactionService
	queries      *services.QueryService
	auth         *services.AuthService
	faucet       *services.FaucetService
	snapshots    *services.SnapshotService
	logger       logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, svc services.Services) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		transactions: svc.Transactions,
		queries:      svc.Queries,
		auth:         svc.Auth,
		faucet:       svc.Faucet,
		snapshots:    svc.Snapshots,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterLinkifyServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
