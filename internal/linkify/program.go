// Package linkify implements the connection protocol: user profiles,
// staked connection requests and their escrow.
//
// Every operation takes the ledger.Bank of one atomic unit and performs all
// of its reads and writes through it. An error from any step aborts the
// operation; the executor discards whatever was staged.
package linkify

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/ledger"
)

// DefaultProgramID namespaces derived addresses when no other id is configured.
var DefaultProgramID = address.MustParse("53Yz1VtkvMmp3ASE6gcL1dYBQAvXHTAvUJzHEFL8icgM")

type Program struct {
	id address.Pubkey
}

func NewProgram(id address.Pubkey) *Program {
	return &Program{id: id}
}

func (p *Program) ID() address.Pubkey {
	return p.id
}

// UserAddress returns the profile address of owner.
func (p *Program) UserAddress(owner address.Pubkey) address.Pubkey {
	addr, _ := address.UserAddress(p.id, owner)
	return addr
}

// ConnectionAddress returns the address of the seq-th request to acceptor.
func (p *Program) ConnectionAddress(acceptor address.Pubkey, seq uint32) address.Pubkey {
	addr, _ := address.ConnectionAddress(p.id, acceptor, seq)
	return addr
}

// CreateUser registers the profile of signer.
func (p *Program) CreateUser(ctx context.Context, bank ledger.Bank, signer address.Pubkey, name string) (*UserAccount, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	user := &UserAccount{Owner: signer, Name: name}
	acc := &ledger.Account{Address: p.UserAddress(signer), Data: user.Marshal()}
	if err := bank.Create(ctx, acc); err != nil {
		return nil, err
	}
	return user, nil
}

// RequestConnection opens a Pending connection from requester to acceptor
// and escrows stake from the requester's wallet.
func (p *Program) RequestConnection(ctx context.Context, bank ledger.Bank, requester, acceptor address.Pubkey, stake uint64) (address.Pubkey, *ConnectionAccount, error) {
	if requester == acceptor {
		return address.Zero, nil, fmt.Errorf("%w: cannot request a connection to yourself", common.ErrInvalidInput)
	}
	reqAcc, reqUser, err := p.loadUser(ctx, bank, requester)
	if err != nil {
		return address.Zero, nil, err
	}
	accAcc, accUser, err := p.loadUser(ctx, bank, acceptor)
	if err != nil {
		return address.Zero, nil, err
	}
	if reqUser.RequestsSent == math.MaxUint32 || accUser.RequestsReceived == math.MaxUint32 {
		return address.Zero, nil, fmt.Errorf("%w: request counter exhausted", common.ErrInvalidState)
	}

	seq := accUser.RequestsReceived
	conn := &ConnectionAccount{
		Requester:      requester,
		Acceptor:       acceptor,
		Tracker:        seq,
		StakeRequester: stake,
	}
	escrow := &ledger.Account{Address: p.ConnectionAddress(acceptor, seq)}
	if err := deposit(ctx, bank, requester, escrow, stake); err != nil {
		return address.Zero, nil, err
	}
	escrow.Data = conn.Marshal()
	if err := bank.Create(ctx, escrow); err != nil {
		return address.Zero, nil, err
	}

	reqUser.RequestsSent++
	accUser.RequestsReceived++
	reqAcc.Data = reqUser.Marshal()
	accAcc.Data = accUser.Marshal()
	if err := bank.Update(ctx, reqAcc); err != nil {
		return address.Zero, nil, err
	}
	if err := bank.Update(ctx, accAcc); err != nil {
		return address.Zero, nil, err
	}
	return escrow.Address, conn, nil
}

// AcceptConnection matches the requester's stake and marks the connection
// Connected. Only the stored acceptor may accept.
func (p *Program) AcceptConnection(ctx context.Context, bank ledger.Bank, signer, requester, connAddr address.Pubkey) (*ConnectionAccount, error) {
	acc, conn, err := p.loadConnection(ctx, bank, connAddr)
	if err != nil {
		return nil, err
	}
	if signer != conn.Acceptor {
		return nil, fmt.Errorf("%w: only the acceptor may accept", common.ErrUnauthorized)
	}
	if requester != conn.Requester {
		return nil, fmt.Errorf("%w: requester %s", common.ErrIdentityMismatch, requester)
	}
	if conn.Connected {
		return nil, fmt.Errorf("%w: connection already accepted", common.ErrInvalidState)
	}
	if err := deposit(ctx, bank, signer, acc, conn.StakeRequester); err != nil {
		return nil, err
	}
	conn.StakeAcceptor = conn.StakeRequester
	conn.Connected = true
	acc.Data = conn.Marshal()
	if err := bank.Update(ctx, acc); err != nil {
		return nil, err
	}
	return conn, nil
}

// RejectConnection refunds the requester and closes a Pending connection.
// Only the stored acceptor may reject.
func (p *Program) RejectConnection(ctx context.Context, bank ledger.Bank, signer, counterparty, connAddr address.Pubkey) (*ConnectionAccount, error) {
	acc, conn, err := p.loadConnection(ctx, bank, connAddr)
	if err != nil {
		return nil, err
	}
	if signer != conn.Acceptor {
		return nil, fmt.Errorf("%w: only the acceptor may reject", common.ErrUnauthorized)
	}
	if counterparty != conn.Requester {
		return nil, fmt.Errorf("%w: requester %s", common.ErrIdentityMismatch, counterparty)
	}
	if conn.Connected {
		return nil, fmt.Errorf("%w: connection already accepted", common.ErrInvalidState)
	}
	if err := release(ctx, bank, acc, conn.Requester, conn.StakeRequester); err != nil {
		return nil, err
	}
	if err := closeAccount(ctx, bank, acc); err != nil {
		return nil, err
	}
	return conn, nil
}

// WithdrawStake returns each party its own stake and closes a Connected
// connection. Either party may withdraw.
func (p *Program) WithdrawStake(ctx context.Context, bank ledger.Bank, signer, counterparty, connAddr address.Pubkey) (*ConnectionAccount, error) {
	acc, conn, err := p.loadConnection(ctx, bank, connAddr)
	if err != nil {
		return nil, err
	}
	var other address.Pubkey
	switch signer {
	case conn.Requester:
		other = conn.Acceptor
	case conn.Acceptor:
		other = conn.Requester
	default:
		return nil, fmt.Errorf("%w: signer is not a party to this connection", common.ErrUnauthorized)
	}
	if counterparty != other {
		return nil, fmt.Errorf("%w: counterparty %s", common.ErrIdentityMismatch, counterparty)
	}
	if !conn.Connected {
		return nil, fmt.Errorf("%w: connection is still pending", common.ErrInvalidState)
	}
	if err := release(ctx, bank, acc, conn.Requester, conn.StakeRequester); err != nil {
		return nil, err
	}
	if err := release(ctx, bank, acc, conn.Acceptor, conn.StakeAcceptor); err != nil {
		return nil, err
	}
	if err := closeAccount(ctx, bank, acc); err != nil {
		return nil, err
	}
	return conn, nil
}

// User reads the profile of owner.
func (p *Program) User(ctx context.Context, bank ledger.Bank, owner address.Pubkey) (*UserAccount, error) {
	_, user, err := p.loadUser(ctx, bank, owner)
	return user, err
}

// Connection reads the connection stored at addr.
func (p *Program) Connection(ctx context.Context, bank ledger.Bank, addr address.Pubkey) (*ConnectionAccount, error) {
	_, conn, err := p.loadConnection(ctx, bank, addr)
	return conn, err
}

func (p *Program) loadUser(ctx context.Context, bank ledger.Bank, owner address.Pubkey) (*ledger.Account, *UserAccount, error) {
	acc, err := bank.Get(ctx, p.UserAddress(owner))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: user %s", err, owner)
	}
	user, err := UnmarshalUser(acc.Data)
	if err != nil {
		return nil, nil, err
	}
	if user.Owner != owner {
		return nil, nil, fmt.Errorf("%w: profile at %s belongs to %s", common.ErrIdentityMismatch, acc.Address, user.Owner)
	}
	return acc, user, nil
}

// loadConnection decodes the connection at addr and checks that addr is the
// address its stored acceptor and tracker derive to, and that the escrow
// holds the recorded stakes.
func (p *Program) loadConnection(ctx context.Context, bank ledger.Bank, addr address.Pubkey) (*ledger.Account, *ConnectionAccount, error) {
	acc, err := bank.Get(ctx, addr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: connection %s", err, addr)
	}
	conn, err := UnmarshalConnection(acc.Data)
	if err != nil {
		return nil, nil, err
	}
	if p.ConnectionAddress(conn.Acceptor, conn.Tracker) != addr {
		return nil, nil, fmt.Errorf("%w: %s is not a connection address of this program", common.ErrInvalidInput, addr)
	}
	if err := checkCustody(acc, conn); err != nil {
		return nil, nil, err
	}
	return acc, conn, nil
}
