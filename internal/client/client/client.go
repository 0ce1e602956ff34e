package client

import (
	"context"
	"crypto/ed25519"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/transaction"
)

// Client is what the CLI needs from the server. GRPCClient implements it.
type Client interface {
	Close() error
	SetSession(session models.Session)
	OnRefresh(fn func(models.Session))
	Ping(ctx context.Context) error
	Login(ctx context.Context, priv ed25519.PrivateKey) (models.Session, error)
	Submit(ctx context.Context, tx *transaction.Transaction) (*pb.Receipt, error)
	Receipt(ctx context.Context, signature string) (*pb.Receipt, error)
	Receipts(ctx context.Context, signer address.Pubkey, limit int32) ([]*pb.Receipt, error)
	Balance(ctx context.Context, identity address.Pubkey) (uint64, error)
	User(ctx context.Context, identity address.Pubkey) (*pb.User, error)
	Connection(ctx context.Context, addr address.Pubkey) (*pb.Connection, error)
	ConnectionByTracker(ctx context.Context, acceptor address.Pubkey, tracker uint32) (*pb.Connection, error)
	Connections(ctx context.Context, acceptor address.Pubkey, from, limit uint32) (*pb.ListConnectionsResponse, error)
	Airdrop(ctx context.Context, lamports uint64) (*pb.Receipt, error)
	ExportSnapshot(ctx context.Context) (*pb.Snapshot, error)
}

var _ Client = (*GRPCClient)(nil)
