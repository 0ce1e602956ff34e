package linkify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/transaction"
)

// Result describes the program account an instruction created or changed.
type Result struct {
	Account address.Pubkey
	// Closed is set when the instruction removed Account from the ledger.
	Closed bool
}

// Execute runs ix on behalf of signer. The signature has already been checked
// by the caller.
func (p *Program) Execute(ctx context.Context, bank ledger.Bank, signer address.Pubkey, ix transaction.Instruction) (Result, error) {
	switch ix.Kind {
	case transaction.KindCreateUser:
		if _, err := p.CreateUser(ctx, bank, signer, ix.Name); err != nil {
			return Result{}, err
		}
		return Result{Account: p.UserAddress(signer)}, nil

	case transaction.KindRequestConnection:
		addr, _, err := p.RequestConnection(ctx, bank, signer, ix.Counterparty, ix.Stake)
		if err != nil {
			return Result{}, err
		}
		return Result{Account: addr}, nil

	case transaction.KindAcceptConnection:
		if _, err := p.AcceptConnection(ctx, bank, signer, ix.Counterparty, ix.Connection); err != nil {
			return Result{}, err
		}
		return Result{Account: ix.Connection}, nil

	case transaction.KindRejectConnection:
		if _, err := p.RejectConnection(ctx, bank, signer, ix.Counterparty, ix.Connection); err != nil {
			return Result{}, err
		}
		return Result{Account: ix.Connection, Closed: true}, nil

	case transaction.KindWithdrawStake:
		if _, err := p.WithdrawStake(ctx, bank, signer, ix.Counterparty, ix.Connection); err != nil {
			return Result{}, err
		}
		return Result{Account: ix.Connection, Closed: true}, nil
	}
	return Result{}, fmt.Errorf("%w: unsupported instruction %s", common.ErrInvalidInput, ix.Kind)
}
