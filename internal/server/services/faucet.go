package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/amount"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/dbx"
	"github.com/dmitrijs2005/linkify/internal/ledger"
	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// FaucetService mints lamports into wallets on development ledgers.
type FaucetService struct {
	repomanager repomanager.RepositoryManager
	limit       uint64
	log         logging.Logger
}

func NewFaucetService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) (*FaucetService, error) {
	limit, err := amount.Parse(cfg.FaucetLimit)
	if err != nil {
		return nil, fmt.Errorf("faucet limit: %w", err)
	}
	return &FaucetService{repomanager: m, limit: limit, log: log.With("module", "faucet")}, nil
}

// Airdrop credits lamports to the wallet of identity and records a receipt
// of kind airdrop.
func (s *FaucetService) Airdrop(ctx context.Context, identity address.Pubkey, lamports uint64) (*models.Receipt, error) {
	if s.limit == 0 {
		return nil, common.ErrFaucetDisabled
	}
	if lamports > s.limit {
		return nil, fmt.Errorf("%w: limit is %s", common.ErrFaucetDisabled, amount.Format(s.limit))
	}
	if lamports == 0 {
		return nil, fmt.Errorf("%w: zero airdrop", common.ErrInvalidInput)
	}

	receipt := &models.Receipt{
		ID:        uuid.NewString(),
		Signature: "airdrop:" + uuid.NewString(),
		Signer:    identity.String(),
		Kind:      models.KindAirdrop,
		Account:   identity.String(),
		Status:    models.ReceiptStatusOK,
	}
	err := s.repomanager.WithTx(ctx, dbx.Serializable, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := ledger.Credit(ctx, repos.Accounts(), identity, lamports); err != nil {
			return err
		}
		return repos.Transactions().Create(ctx, receipt)
	})
	if err != nil {
		if dbx.IsRetryable(err) {
			return nil, common.ErrConflict
		}
		if errors.Is(err, common.ErrInvalidInput) {
			return nil, err
		}
		s.log.Error(ctx, "airdrop failed", "identity", identity.String(), "error", err)
		return nil, common.ErrorInternal
	}
	s.log.Info(ctx, "airdrop", "identity", identity.String(), "lamports", lamports)
	return receipt, nil
}
