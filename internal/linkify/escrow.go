package linkify

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/ledger"
)

// deposit moves amount from the wallet of from into the escrow account acc.
// acc is updated in memory only; the caller persists it.
func deposit(ctx context.Context, bank ledger.Bank, from address.Pubkey, acc *ledger.Account, amount uint64) error {
	if acc.Lamports > math.MaxUint64-amount {
		return fmt.Errorf("%w: escrow overflow", common.ErrInvalidInput)
	}
	if err := ledger.Debit(ctx, bank, from, amount); err != nil {
		return err
	}
	acc.Lamports += amount
	return nil
}

// release moves amount out of escrow account acc into the wallet of to.
func release(ctx context.Context, bank ledger.Bank, acc *ledger.Account, to address.Pubkey, amount uint64) error {
	if acc.Lamports < amount {
		return fmt.Errorf("%w: escrow %s holds %d, releasing %d", common.ErrInvalidState, acc.Address, acc.Lamports, amount)
	}
	acc.Lamports -= amount
	if amount == 0 {
		return nil
	}
	return ledger.Credit(ctx, bank, to, amount)
}

// checkCustody verifies that the escrow holds exactly the recorded stakes.
func checkCustody(acc *ledger.Account, conn *ConnectionAccount) error {
	if acc.Lamports != conn.Escrowed() {
		return fmt.Errorf("%w: escrow %s holds %d, stakes sum to %d", common.ErrInvalidState, acc.Address, acc.Lamports, conn.Escrowed())
	}
	return nil
}

// closeAccount removes a drained escrow account.
func closeAccount(ctx context.Context, bank ledger.Bank, acc *ledger.Account) error {
	if acc.Lamports != 0 {
		return fmt.Errorf("%w: closing %s with %d lamports left", common.ErrInvalidState, acc.Address, acc.Lamports)
	}
	return bank.Delete(ctx, acc.Address)
}
