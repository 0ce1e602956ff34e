package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/server/views"
	"github.com/dmitrijs2005/linkify/internal/transaction"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func parsePubkey(field, s string) (address.Pubkey, error) {
	p, err := address.Parse(s)
	if err != nil {
		return address.Pubkey{}, fmt.Errorf("%w: %s: %v", common.ErrInvalidInput, field, err)
	}
	return p, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.TokenResponse, error) {
	identity, err := parsePubkey("identity", req.Identity)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	tokens, err := s.auth.Login(ctx, identity, req.Timestamp, req.Signature)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.TokenResponse, error) {
	tokens, err := s.auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SubmitTransaction(ctx context.Context, req *pb.SubmitTransactionRequest) (*pb.Receipt, error) {
	tx, err := transaction.Decode(req.Transaction)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	receipt, err := s.transactions.Submit(ctx, tx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return views.Receipt(receipt), nil
}

func (s *GRPCServer) GetReceipt(ctx context.Context, req *pb.GetReceiptRequest) (*pb.Receipt, error) {
	receipt, err := s.queries.Receipt(ctx, req.Signature)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return views.Receipt(receipt), nil
}

func (s *GRPCServer) ListReceipts(ctx context.Context, req *pb.ListReceiptsRequest) (*pb.ListReceiptsResponse, error) {
	signer, err := parsePubkey("signer", req.Signer)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	receipts, err := s.queries.Receipts(ctx, signer, int(req.Limit))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ListReceiptsResponse{Receipts: views.Receipts(receipts)}, nil
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.BalanceResponse, error) {
	identity, err := parsePubkey("identity", req.Identity)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	lamports, err := s.queries.Balance(ctx, identity)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.BalanceResponse{Identity: identity.String(), Lamports: lamports}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.User, error) {
	identity, err := parsePubkey("identity", req.Identity)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	user, err := s.queries.User(ctx, identity)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return views.User(s.queries.UserAddress(identity), user), nil
}

func (s *GRPCServer) GetConnection(ctx context.Context, req *pb.GetConnectionRequest) (*pb.Connection, error) {
	if req.Address != "" {
		addr, err := parsePubkey("address", req.Address)
		if err != nil {
			return nil, s.toStatus(ctx, err)
		}
		conn, err := s.queries.Connection(ctx, addr)
		if err != nil {
			return nil, s.toStatus(ctx, err)
		}
		return views.Connection(conn), nil
	}

	acceptor, err := parsePubkey("acceptor", req.Acceptor)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	conn, err := s.queries.ConnectionByTracker(ctx, acceptor, req.Tracker)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return views.Connection(conn), nil
}

func (s *GRPCServer) ListConnections(ctx context.Context, req *pb.ListConnectionsRequest) (*pb.ListConnectionsResponse, error) {
	acceptor, err := parsePubkey("acceptor", req.Acceptor)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	page, err := s.queries.Connections(ctx, acceptor, req.From, int(req.Limit))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return views.Connections(page), nil
}

func (s *GRPCServer) Airdrop(ctx context.Context, req *pb.AirdropRequest) (*pb.Receipt, error) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}
	receipt, err := s.faucet.Airdrop(ctx, identity, req.Lamports)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return views.Receipt(receipt), nil
}

func (s *GRPCServer) ExportSnapshot(ctx context.Context, req *pb.ExportSnapshotRequest) (*pb.Snapshot, error) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}
	snap, err := s.snapshots.Export(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.PermissionDenied, err.Error())
		}
		return nil, s.toStatus(ctx, err)
	}
	return views.Snapshot(snap), nil
}
