// Package ledger defines the account store that protocol operations run
// against and an in-memory executor for it.
//
// An operation receives a Bank for the duration of one atomic unit. Every
// read it makes must go through that Bank, so that the executor can lock or
// stage the accounts it touches: either all writes commit or none do.
package ledger

import (
	"context"

	"github.com/dmitrijs2005/linkify/internal/address"
)

// Account is a ledger entry. Wallets carry only lamports; program accounts
// carry serialized data and hold escrowed lamports.
type Account struct {
	Address  address.Pubkey
	Lamports uint64
	Data     []byte
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	c := &Account{Address: a.Address, Lamports: a.Lamports}
	if a.Data != nil {
		c.Data = append([]byte(nil), a.Data...)
	}
	return c
}

// Bank is the view of the ledger inside one atomic operation.
type Bank interface {
	// Get returns the account at addr or common.ErrAccountNotFound.
	Get(ctx context.Context, addr address.Pubkey) (*Account, error)
	// Create inserts a new account or fails with common.ErrAccountAlreadyExists.
	Create(ctx context.Context, acc *Account) error
	// Update overwrites lamports and data of an existing account.
	Update(ctx context.Context, acc *Account) error
	// Delete removes the account. Callers drain its lamports first.
	Delete(ctx context.Context, addr address.Pubkey) error
}

// Store is a Bank that can also enumerate its accounts in address order.
type Store interface {
	Bank
	List(ctx context.Context) ([]*Account, error)
}

// Executor runs fn as one atomic unit.
type Executor interface {
	Execute(ctx context.Context, fn func(ctx context.Context, bank Bank) error) error
}
