package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/dbx"
	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/linkify"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
)

// ConnectionView is a connection account together with where it lives.
type ConnectionView struct {
	Address address.Pubkey
	*linkify.ConnectionAccount
}

// QueryService answers read-only questions about the ledger.
type QueryService struct {
	repomanager repomanager.RepositoryManager
	program     *linkify.Program
}

func NewQueryService(m repomanager.RepositoryManager, program *linkify.Program) *QueryService {
	return &QueryService{repomanager: m, program: program}
}

func (s *QueryService) read(ctx context.Context, fn func(ctx context.Context, bank ledger.Bank, repos repomanager.Repositories) error) error {
	return s.repomanager.WithTx(ctx, dbx.ReadOnly, func(ctx context.Context, repos repomanager.Repositories) error {
		return fn(ctx, repos.AccountReader(), repos)
	})
}

// Balance returns the wallet balance of identity. No wallet means zero.
func (s *QueryService) Balance(ctx context.Context, identity address.Pubkey) (uint64, error) {
	var lamports uint64
	err := s.read(ctx, func(ctx context.Context, bank ledger.Bank, _ repomanager.Repositories) error {
		var err error
		lamports, err = ledger.Balance(ctx, bank, identity)
		return err
	})
	return lamports, err
}

func (s *QueryService) User(ctx context.Context, identity address.Pubkey) (*linkify.UserAccount, error) {
	var user *linkify.UserAccount
	err := s.read(ctx, func(ctx context.Context, bank ledger.Bank, _ repomanager.Repositories) error {
		var err error
		user, err = s.program.User(ctx, bank, identity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *QueryService) Connection(ctx context.Context, addr address.Pubkey) (*ConnectionView, error) {
	var view *ConnectionView
	err := s.read(ctx, func(ctx context.Context, bank ledger.Bank, _ repomanager.Repositories) error {
		conn, err := s.program.Connection(ctx, bank, addr)
		if err != nil {
			return err
		}
		view = &ConnectionView{Address: addr, ConnectionAccount: conn}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ConnectionByTracker looks up the seq-th request received by acceptor.
func (s *QueryService) ConnectionByTracker(ctx context.Context, acceptor address.Pubkey, seq uint32) (*ConnectionView, error) {
	return s.Connection(ctx, s.program.ConnectionAddress(acceptor, seq))
}

const (
	DefaultConnectionPage = 50
	MaxConnectionPage     = 200
)

// ConnectionPage is one window of the trackers of an acceptor. Next is the
// tracker to continue from; Total is how many requests were ever received.
type ConnectionPage struct {
	Connections []*ConnectionView
	Next        uint32
	Total       uint32
}

// Connections lists the connections of acceptor that are still open, in
// tracker order, scanning at most limit trackers starting at from. Rejected
// and withdrawn ones are gone from the ledger and are skipped, so a page may
// hold fewer than limit entries.
func (s *QueryService) Connections(ctx context.Context, acceptor address.Pubkey, from uint32, limit int) (*ConnectionPage, error) {
	if limit <= 0 {
		limit = DefaultConnectionPage
	}
	if limit > MaxConnectionPage {
		limit = MaxConnectionPage
	}
	page := &ConnectionPage{}
	err := s.read(ctx, func(ctx context.Context, bank ledger.Bank, _ repomanager.Repositories) error {
		user, err := s.program.User(ctx, bank, acceptor)
		if err != nil {
			return err
		}
		page.Total = user.RequestsReceived
		end := min(uint64(from)+uint64(limit), uint64(user.RequestsReceived))
		page.Next = max(from, uint32(end))
		for seq := uint64(from); seq < end; seq++ {
			addr := s.program.ConnectionAddress(acceptor, uint32(seq))
			conn, err := s.program.Connection(ctx, bank, addr)
			if errors.Is(err, common.ErrAccountNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			page.Connections = append(page.Connections, &ConnectionView{Address: addr, ConnectionAccount: conn})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *QueryService) Receipt(ctx context.Context, signature string) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.read(ctx, func(ctx context.Context, _ ledger.Bank, repos repomanager.Repositories) error {
		var err error
		receipt, err = repos.Transactions().Get(ctx, signature)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Receipts returns up to limit receipts of signer, newest first.
func (s *QueryService) Receipts(ctx context.Context, signer address.Pubkey, limit int) ([]*models.Receipt, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var out []*models.Receipt
	err := s.read(ctx, func(ctx context.Context, _ ledger.Bank, repos repomanager.Repositories) error {
		var err error
		out, err = repos.Transactions().ListBySigner(ctx, signer.String(), limit)
		return err
	})
	return out, err
}

// UserAddress is where the profile of identity lives.
func (s *QueryService) UserAddress(identity address.Pubkey) address.Pubkey {
	return s.program.UserAddress(identity)
}
