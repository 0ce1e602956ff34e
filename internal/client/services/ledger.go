package services

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/client"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/linkify"
	"github.com/dmitrijs2005/linkify/internal/netx"
	pb "github.com/dmitrijs2005/linkify/internal/proto"
	"github.com/dmitrijs2005/linkify/internal/transaction"
)

// LedgerService signs and submits ledger instructions and runs read-only
// queries.
type LedgerService struct {
	keys   Keys
	client client.Client
	http   *http.Client
}

func NewLedgerService(keys Keys, c client.Client) *LedgerService {
	return &LedgerService{keys: keys, client: c}
}

// Signer names a key and the passphrase that unlocks it.
type Signer struct {
	Name       string
	Passphrase []byte
}

func (s *LedgerService) sign(ctx context.Context, signer Signer, build func(priv ed25519.PrivateKey, self address.Pubkey) (*transaction.Transaction, error)) (*pb.Receipt, error) {
	priv, err := s.keys.Unlock(ctx, signer.Name, signer.Passphrase)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(priv)

	self, err := address.FromBytes(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	tx, err := build(priv, self)
	if err != nil {
		return nil, err
	}
	return s.client.Submit(ctx, tx)
}

func (s *LedgerService) CreateUser(ctx context.Context, signer Signer, name string) (*pb.Receipt, error) {
	if err := linkify.ValidateName(name); err != nil {
		return nil, err
	}
	return s.sign(ctx, signer, func(priv ed25519.PrivateKey, _ address.Pubkey) (*transaction.Transaction, error) {
		return transaction.NewCreateUser(priv, name), nil
	})
}

func (s *LedgerService) Request(ctx context.Context, signer Signer, acceptor address.Pubkey, stake uint64) (*pb.Receipt, error) {
	return s.sign(ctx, signer, func(priv ed25519.PrivateKey, _ address.Pubkey) (*transaction.Transaction, error) {
		return transaction.NewRequest(priv, acceptor, stake), nil
	})
}

// Accept, Reject and Withdraw read the connection first to fill in the
// counterparty; the program still checks every party against the stored
// account.
func (s *LedgerService) Accept(ctx context.Context, signer Signer, connAddr address.Pubkey) (*pb.Receipt, error) {
	conn, err := s.connectionParties(ctx, connAddr)
	if err != nil {
		return nil, err
	}
	return s.sign(ctx, signer, func(priv ed25519.PrivateKey, _ address.Pubkey) (*transaction.Transaction, error) {
		return transaction.NewAccept(priv, conn.requester, connAddr), nil
	})
}

func (s *LedgerService) Reject(ctx context.Context, signer Signer, connAddr address.Pubkey) (*pb.Receipt, error) {
	conn, err := s.connectionParties(ctx, connAddr)
	if err != nil {
		return nil, err
	}
	return s.sign(ctx, signer, func(priv ed25519.PrivateKey, _ address.Pubkey) (*transaction.Transaction, error) {
		return transaction.NewReject(priv, conn.requester, connAddr), nil
	})
}

func (s *LedgerService) Withdraw(ctx context.Context, signer Signer, connAddr address.Pubkey) (*pb.Receipt, error) {
	conn, err := s.connectionParties(ctx, connAddr)
	if err != nil {
		return nil, err
	}
	return s.sign(ctx, signer, func(priv ed25519.PrivateKey, self address.Pubkey) (*transaction.Transaction, error) {
		counterparty := conn.requester
		if self == conn.requester {
			counterparty = conn.acceptor
		}
		return transaction.NewWithdraw(priv, counterparty, connAddr), nil
	})
}

type parties struct {
	requester address.Pubkey
	acceptor  address.Pubkey
}

func (s *LedgerService) connectionParties(ctx context.Context, connAddr address.Pubkey) (*parties, error) {
	conn, err := s.client.Connection(ctx, connAddr)
	if err != nil {
		return nil, err
	}
	requester, err := address.Parse(conn.Requester)
	if err != nil {
		return nil, fmt.Errorf("%w: requester: %v", common.ErrDeserialization, err)
	}
	acceptor, err := address.Parse(conn.Acceptor)
	if err != nil {
		return nil, fmt.Errorf("%w: acceptor: %v", common.ErrDeserialization, err)
	}
	return &parties{requester: requester, acceptor: acceptor}, nil
}

// Identity returns the public key stored under name.
func (s *LedgerService) Identity(ctx context.Context, name string) (address.Pubkey, error) {
	key, err := s.keys.Get(ctx, name)
	if err != nil {
		return address.Zero, err
	}
	return key.Pubkey, nil
}

func (s *LedgerService) Airdrop(ctx context.Context, lamports uint64) (*pb.Receipt, error) {
	return s.client.Airdrop(ctx, lamports)
}

func (s *LedgerService) Balance(ctx context.Context, identity address.Pubkey) (uint64, error) {
	return s.client.Balance(ctx, identity)
}

func (s *LedgerService) User(ctx context.Context, identity address.Pubkey) (*pb.User, error) {
	return s.client.User(ctx, identity)
}

func (s *LedgerService) Connection(ctx context.Context, addr address.Pubkey) (*pb.Connection, error) {
	return s.client.Connection(ctx, addr)
}

func (s *LedgerService) ConnectionByTracker(ctx context.Context, acceptor address.Pubkey, tracker uint32) (*pb.Connection, error) {
	return s.client.ConnectionByTracker(ctx, acceptor, tracker)
}

func (s *LedgerService) Connections(ctx context.Context, acceptor address.Pubkey, from, limit uint32) (*pb.ListConnectionsResponse, error) {
	return s.client.Connections(ctx, acceptor, from, limit)
}

func (s *LedgerService) Receipt(ctx context.Context, signature string) (*pb.Receipt, error) {
	return s.client.Receipt(ctx, signature)
}

func (s *LedgerService) Receipts(ctx context.Context, signer address.Pubkey, limit int32) ([]*pb.Receipt, error) {
	return s.client.Receipts(ctx, signer, limit)
}

// ExportSnapshot asks the server for a snapshot. With download set it also
// fetches the object and checks it against the reported checksum.
func (s *LedgerService) ExportSnapshot(ctx context.Context, download bool) (*pb.Snapshot, []byte, error) {
	snap, err := s.client.ExportSnapshot(ctx)
	if err != nil || !download {
		return snap, nil, err
	}

	data, err := netx.Download(ctx, s.http, snap.Url)
	if err != nil {
		return snap, nil, err
	}
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != snap.Checksum {
		return snap, nil, fmt.Errorf("%w: snapshot checksum %s, expected %s", common.ErrDeserialization, got, snap.Checksum)
	}
	return snap, data, nil
}
