package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
)

// Credit adds lamports to the wallet at addr, opening it if needed.
func Credit(ctx context.Context, bank Bank, addr address.Pubkey, lamports uint64) error {
	acc, err := bank.Get(ctx, addr)
	if errors.Is(err, common.ErrAccountNotFound) {
		return bank.Create(ctx, &Account{Address: addr, Lamports: lamports})
	}
	if err != nil {
		return err
	}
	if acc.Lamports > math.MaxUint64-lamports {
		return fmt.Errorf("%w: balance overflow for %s", common.ErrInvalidInput, addr)
	}
	acc.Lamports += lamports
	return bank.Update(ctx, acc)
}

// Debit removes lamports from the wallet at addr. A missing wallet has a zero
// balance.
func Debit(ctx context.Context, bank Bank, addr address.Pubkey, lamports uint64) error {
	acc, err := bank.Get(ctx, addr)
	if errors.Is(err, common.ErrAccountNotFound) {
		if lamports == 0 {
			return nil
		}
		return fmt.Errorf("%w: %s has no wallet", common.ErrInsufficientFunds, addr)
	}
	if err != nil {
		return err
	}
	if acc.Lamports < lamports {
		return fmt.Errorf("%w: %s holds %d, needs %d", common.ErrInsufficientFunds, addr, acc.Lamports, lamports)
	}
	acc.Lamports -= lamports
	return bank.Update(ctx, acc)
}

// Balance returns the lamports held at addr, zero when nothing is there.
func Balance(ctx context.Context, bank Bank, addr address.Pubkey) (uint64, error) {
	acc, err := bank.Get(ctx, addr)
	if errors.Is(err, common.ErrAccountNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}
